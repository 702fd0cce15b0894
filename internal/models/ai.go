package models

// RemindCommand is one reminder proposed by the AI. Who is already a
// formatted string ("me", "@john", "#general").
type RemindCommand struct {
	Who  string `json:"who"`
	What string `json:"what"`
	When string `json:"when"`
}

// AIResponse is a parsed model reply. Confidence applies to the whole batch.
type AIResponse struct {
	Commands    []RemindCommand `json:"commands"`
	Confidence  float64         `json:"confidence"`
	RawResponse string          `json:"raw_response"`
}

// ConfidenceLevel buckets a confidence score for display
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// LowConfidenceThreshold is the score below which results should be double-checked
const LowConfidenceThreshold = 0.7

// Level returns the display bucket for the response confidence
func (r *AIResponse) Level() ConfidenceLevel {
	switch {
	case r.Confidence >= 0.8:
		return ConfidenceHigh
	case r.Confidence >= 0.6:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// IsLowConfidence reports whether the user should review the interpretation
func (r *AIResponse) IsLowConfidence() bool {
	return r.Confidence < LowConfidenceThreshold
}

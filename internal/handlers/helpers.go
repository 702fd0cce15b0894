package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/staticWagomU/slack-remind-generator/internal/models"
	"github.com/staticWagomU/slack-remind-generator/internal/services/ai"
	"github.com/staticWagomU/slack-remind-generator/internal/validation"
)

// maxErrorMessageRunes caps error messages sent to clients
const maxErrorMessageRunes = 200

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]any{
		"success":   true,
		"data":      data,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// sanitizeErrorMessage truncates messages on a rune boundary
func sanitizeErrorMessage(message string) string {
	if utf8.RuneCountInString(message) <= maxErrorMessageRunes {
		return message
	}
	runes := []rune(message)
	return string(runes[:maxErrorMessageRunes]) + "..."
}

// respondJSONError sends an error JSON response with sanitized error messages
func respondJSONError(w http.ResponseWriter, status int, errorType, message string) {
	respondCodedError(w, status, errorType, message, "")
}

// respondCodedError adds the machine-readable error code to the envelope
func respondCodedError(w http.ResponseWriter, status int, errorType, message string, code models.ErrorCode) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]any{
		"success":   false,
		"error":     errorType,
		"message":   sanitizeErrorMessage(message),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if code != "" {
		response["code"] = code
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// AIErrorStatus maps an error code to the HTTP status returned to clients
func AIErrorStatus(err *models.AIError) int {
	switch err.Code {
	case models.CodeAPIKeyMissing:
		return http.StatusPreconditionFailed
	case models.CodeInvalidInput:
		return http.StatusBadRequest
	case models.CodeParseError:
		return http.StatusBadGateway
	case models.CodeNetworkError:
		return http.StatusGatewayTimeout
	case models.CodeMaxRetriesExceeded:
		return http.StatusServiceUnavailable
	case models.CodeAPIError:
		if err.StatusCode == http.StatusTooManyRequests {
			return http.StatusTooManyRequests
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondAIError classifies err and sends it with its code. The user-facing
// message is sent; upstream details are not.
func respondAIError(w http.ResponseWriter, err error) {
	aiErr := ai.ClassifyError(err)
	status := AIErrorStatus(aiErr)
	message := aiErr.Message
	if message == "" {
		message = string(aiErr.Code)
	}
	respondCodedError(w, status, http.StatusText(status), message, aiErr.Code)
}

// decodeJSON decodes and validates the request body into dst. It writes the
// error response itself and returns false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesErr):
			respondJSONError(w, http.StatusRequestEntityTooLarge, "Request Entity Too Large",
				fmt.Sprintf("Request body exceeds maximum size of %d bytes", maxBytesErr.Limit))
		case errors.Is(err, io.EOF):
			respondCodedError(w, http.StatusBadRequest, "Bad Request", "Request body is required", models.CodeInvalidInput)
		default:
			respondCodedError(w, http.StatusBadRequest, "Bad Request", "Invalid request body", models.CodeInvalidInput)
		}
		return false
	}

	if err := validation.Validate.Struct(dst); err != nil {
		respondCodedError(w, http.StatusBadRequest, "Bad Request", validation.Message(err), models.CodeInvalidInput)
		return false
	}
	return true
}

// NotFound answers unknown routes with the JSON error envelope
func NotFound(w http.ResponseWriter, r *http.Request) {
	respondJSONError(w, http.StatusNotFound, "Not Found", "No route for "+r.URL.Path)
}

// MethodNotAllowed answers known routes called with the wrong method
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondJSONError(w, http.StatusMethodNotAllowed, "Method Not Allowed", r.Method+" is not supported on "+r.URL.Path)
}

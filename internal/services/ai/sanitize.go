package ai

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"
)

type contextKey string

const requestIDContextKey contextKey = "request_id"

// RequestIDContextKey returns the context key for request ID
func RequestIDContextKey() contextKey {
	return requestIDContextKey
}

// WithRequestID returns a copy of ctx carrying id for log correlation
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, id)
}

// ExtractRequestID returns the request ID stored by WithRequestID, or ""
func ExtractRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDContextKey).(string); ok {
		return id
	}
	return ""
}

const (
	// MaxPreviewLength caps previews in normal logs, in runes
	MaxPreviewLength = 200
	// MaxDebugPreviewLength caps previews when full logging is on, in runes
	MaxDebugPreviewLength = 10000
	// RedactedValue is the value used to replace sensitive data
	RedactedValue = "[REDACTED]"
)

// SanitizeAPIKey keeps the first and last four characters of a key.
// Keys of eight characters or fewer are fully redacted.
func SanitizeAPIKey(apiKey string) string {
	if apiKey == "" {
		return ""
	}
	if len(apiKey) <= 8 {
		return RedactedValue
	}
	return apiKey[:4] + RedactedValue + apiKey[len(apiKey)-4:]
}

// SanitizePrompt returns a log-safe preview of user input
func SanitizePrompt(prompt string, fullLog bool) string {
	return preview(prompt, fullLog)
}

// SanitizeResponse returns a log-safe preview of model output
func SanitizeResponse(response string, fullLog bool) string {
	return preview(response, fullLog)
}

func preview(s string, fullLog bool) string {
	if s == "" {
		return ""
	}
	limit := MaxPreviewLength
	if fullLog {
		limit = MaxDebugPreviewLength
	}
	return TruncateString(stripControl(s), limit)
}

// stripControl drops invalid UTF-8 and control characters other than
// tab, newline and carriage return.
func stripControl(s string) string {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			return r
		}
		return -1
	}, s)
}

// TruncateString cuts s to maxRunes runes, appending "..." when shortened.
// Multi-byte characters are never split.
func TruncateString(s string, maxRunes int) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxRunes]) + "..."
}

package models

import (
	"fmt"
)

// ErrorCode classifies a failure in the AI pipeline and its collaborators
type ErrorCode string

const (
	CodeAPIKeyMissing      ErrorCode = "API_KEY_MISSING"
	CodeAPIError           ErrorCode = "API_ERROR"
	CodeParseError         ErrorCode = "PARSE_ERROR"
	CodeNetworkError       ErrorCode = "NETWORK_ERROR"
	CodeInvalidInput       ErrorCode = "INVALID_INPUT"
	CodeMaxRetriesExceeded ErrorCode = "MAX_RETRIES_EXCEEDED"
)

// Sentinels for errors.Is; matching is by code only.
var (
	ErrAPIKeyMissing      = &AIError{Code: CodeAPIKeyMissing}
	ErrAPI                = &AIError{Code: CodeAPIError}
	ErrParse              = &AIError{Code: CodeParseError}
	ErrNetwork            = &AIError{Code: CodeNetworkError}
	ErrInvalidInput       = &AIError{Code: CodeInvalidInput}
	ErrMaxRetriesExceeded = &AIError{Code: CodeMaxRetriesExceeded}
)

// AIError is the single error type surfaced by the AI pipeline. StatusCode is
// set for API_ERROR failures that carried an HTTP status.
type AIError struct {
	Code       ErrorCode
	Message    string
	StatusCode int
	Details    string
	Err        error
}

// NewAIError creates an error with the given code and message
func NewAIError(code ErrorCode, message string) *AIError {
	return &AIError{Code: code, Message: message}
}

func (e *AIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Code)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d): %s", e.Code, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

// Unwrap returns the underlying cause, if any
func (e *AIError) Unwrap() error {
	return e.Err
}

// Is matches another *AIError with the same code
func (e *AIError) Is(target error) bool {
	t, ok := target.(*AIError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithDetails returns a copy of e carrying details
func (e *AIError) WithDetails(details string) *AIError {
	cp := *e
	cp.Details = details
	return &cp
}

package middleware

import (
	"net/http"
	"time"
)

const (
	// DefaultRequestTimeout covers a full AI pipeline run: three calls plus
	// 1s and 2s of backoff.
	DefaultRequestTimeout = 2 * time.Minute

	timeoutBody = `{"success":false,"error":"Service Unavailable","message":"Request timed out"}`
)

// Timeout cancels the request context after timeout and answers 503 with a JSON body
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	return func(next http.Handler) http.Handler {
		// TimeoutHandler derives the deadline context itself
		return http.TimeoutHandler(next, timeout, timeoutBody)
	}
}

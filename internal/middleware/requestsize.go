package middleware

import (
	"fmt"
	"net/http"
)

const (
	// DefaultMaxRequestSize is the default maximum request body size. Reminder
	// requests are a few hundred bytes; 64KB leaves room for long messages.
	DefaultMaxRequestSize int64 = 64 << 10
)

// MaxRequestSize limits the size of request bodies
func MaxRequestSize(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxRequestSize
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Reject early when Content-Length already says too much
			if r.ContentLength > maxBytes {
				respondErrorJSON(w, r, http.StatusRequestEntityTooLarge, "Request Entity Too Large",
					fmt.Sprintf("Request body exceeds maximum size of %d bytes", maxBytes), nil)
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"
	"github.com/staticWagomU/slack-remind-generator/internal/services/ai"
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-ID"

var validRequestID = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

// RequestID propagates a caller-supplied X-Request-ID or assigns a new UUID.
// The id is stored where the AI pipeline and log lines pick it up.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if !validRequestID.MatchString(id) {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(ai.WithRequestID(r.Context(), id)))
	})
}

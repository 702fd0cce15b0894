package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/staticWagomU/slack-remind-generator/internal/services/ai"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "caller id kept", incoming: "abc-123_x.y", keep: true},
		{name: "missing id generated", incoming: ""},
		{name: "unsafe id replaced", incoming: "bad id\nwith newline"},
		{name: "overlong id replaced", incoming: string(make([]byte, 65))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var seen string
			handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = ai.ExtractRequestID(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			header := w.Header().Get(RequestIDHeader)
			if header != seen {
				t.Errorf("header %q != context %q", header, seen)
			}
			if tt.keep {
				if seen != tt.incoming {
					t.Errorf("request id = %q, want %q", seen, tt.incoming)
				}
				return
			}
			if _, err := uuid.Parse(seen); err != nil {
				t.Errorf("generated id %q is not a UUID: %v", seen, err)
			}
		})
	}
}

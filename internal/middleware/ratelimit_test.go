package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestRateLimit_MemoryStore(t *testing.T) {
	t.Parallel()

	mw, err := RateLimit("2-M", nil, zap.NewNop())
	if err != nil {
		t.Fatalf("RateLimit() error = %v", err)
	}
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	call := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/ai/commands", nil)
		req.RemoteAddr = ip + ":5000"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	for i := 0; i < 2; i++ {
		if w := call("203.0.113.1"); w.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i+1, w.Code)
		}
	}

	w := call("203.0.113.1")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("third request status = %d, want 429", w.Code)
	}
	if w.Header().Get("Content-Type") != "application/json" {
		t.Errorf("429 Content-Type = %q", w.Header().Get("Content-Type"))
	}
	if w.Header().Get("X-RateLimit-Limit") != "2" {
		t.Errorf("X-RateLimit-Limit = %q", w.Header().Get("X-RateLimit-Limit"))
	}

	if w := call("203.0.113.2"); w.Code != http.StatusOK {
		t.Errorf("other client status = %d, want 200", w.Code)
	}
}

func TestRateLimit_InvalidRate(t *testing.T) {
	t.Parallel()

	if _, err := RateLimit("lots", nil, nil); err == nil {
		t.Error("expected error for malformed rate")
	}
}

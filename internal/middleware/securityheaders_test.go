package middleware

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	t.Run("plain http", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		SecurityHeaders(true)(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		for k, v := range apiSecurityHeaders {
			if got := w.Header().Get(k); got != v {
				t.Errorf("%s = %q, want %q", k, got, v)
			}
		}
		if w.Header().Get("Strict-Transport-Security") != "" {
			t.Error("HSTS must not be sent over plain HTTP")
		}
	})

	t.Run("tls with hsts", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.TLS = &tls.ConnectionState{}
		w := httptest.NewRecorder()
		SecurityHeaders(true)(next).ServeHTTP(w, req)
		if w.Header().Get("Strict-Transport-Security") == "" {
			t.Error("expected HSTS header over TLS")
		}
	})

	t.Run("tls without hsts", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.TLS = &tls.ConnectionState{}
		w := httptest.NewRecorder()
		SecurityHeaders(false)(next).ServeHTTP(w, req)
		if w.Header().Get("Strict-Transport-Security") != "" {
			t.Error("HSTS disabled but header sent")
		}
	})
}

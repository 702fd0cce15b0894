package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestAudit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		method  string
		path    string
		status  int
		wantMsg string
	}{
		{name: "key set", method: http.MethodPut, path: KeyPath, status: http.StatusNoContent, wantMsg: "api_key_changed"},
		{name: "key cleared", method: http.MethodDelete, path: KeyPath + "/", status: http.StatusNoContent, wantMsg: "api_key_changed"},
		{name: "key read", method: http.MethodGet, path: KeyPath, status: http.StatusOK},
		{name: "rate limited", method: http.MethodPost, path: "/api/v1/ai/commands", status: http.StatusTooManyRequests, wantMsg: "rate_limit_violation"},
		{name: "ordinary", method: http.MethodPost, path: "/api/v1/commands", status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			core, logs := observer.New(zap.InfoLevel)
			handler := Audit(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.RemoteAddr = "198.51.100.7:4000"
			handler.ServeHTTP(httptest.NewRecorder(), req)

			if tt.wantMsg == "" {
				if logs.Len() != 0 {
					t.Errorf("unexpected audit logs: %v", logs.All())
				}
				return
			}
			entries := logs.FilterMessage(tt.wantMsg).All()
			if len(entries) != 1 {
				t.Fatalf("want one %s log, got %v", tt.wantMsg, logs.All())
			}
			if ip := entries[0].ContextMap()["ip"]; ip != "198.51.100.7" {
				t.Errorf("ip = %v", ip)
			}
		})
	}
}

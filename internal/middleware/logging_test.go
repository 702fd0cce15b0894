package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogging(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		method        string
		path          string
		handlerStatus int
		body          string
	}{
		{name: "GET request", method: http.MethodGet, path: "/healthz", handlerStatus: http.StatusOK, body: "ok"},
		{name: "POST request", method: http.MethodPost, path: "/api/v1/jobs", handlerStatus: http.StatusAccepted, body: "{}"},
		{name: "404 request", method: http.MethodGet, path: "/missing", handlerStatus: http.StatusNotFound},
		{name: "implicit 200", method: http.MethodGet, path: "/version", handlerStatus: 0, body: "v"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			core, logs := observer.New(zap.InfoLevel)
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.handlerStatus != 0 {
					w.WriteHeader(tt.handlerStatus)
				}
				_, _ = w.Write([]byte(tt.body))
			})

			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set(RequestIDHeader, "req-123")
			w := httptest.NewRecorder()

			RequestID(Logging(zap.New(core))(handler)).ServeHTTP(w, req)

			entries := logs.FilterMessage("http_request").All()
			if len(entries) != 1 {
				t.Fatalf("Expected 1 http_request log, got %d", len(entries))
			}
			fields := entries[0].ContextMap()

			wantStatus := tt.handlerStatus
			if wantStatus == 0 {
				wantStatus = http.StatusOK
			}
			if fields["status_code"] != int64(wantStatus) {
				t.Errorf("status_code = %v, want %d", fields["status_code"], wantStatus)
			}
			if fields["method"] != tt.method || fields["path"] != tt.path {
				t.Errorf("method/path = %v %v", fields["method"], fields["path"])
			}
			if fields["bytes"] != int64(len(tt.body)) {
				t.Errorf("bytes = %v, want %d", fields["bytes"], len(tt.body))
			}
			if fields["request_id"] != "req-123" {
				t.Errorf("request_id = %v", fields["request_id"])
			}
		})
	}
}

func TestResponseWriter_FirstStatusWins(t *testing.T) {
	t.Parallel()

	rw := &responseWriter{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}
	rw.WriteHeader(http.StatusTeapot)
	rw.WriteHeader(http.StatusInternalServerError)

	if rw.statusCode != http.StatusTeapot {
		t.Errorf("statusCode = %d, want %d", rw.statusCode, http.StatusTeapot)
	}
}

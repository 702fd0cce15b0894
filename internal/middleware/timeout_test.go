package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestTimeout(t *testing.T) {
	t.Parallel()

	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	w := httptest.NewRecorder()
	Timeout(10*time.Millisecond)(slow).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/commands", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"success":false`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestTimeout_FastHandler(t *testing.T) {
	t.Parallel()

	fast := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	w := httptest.NewRecorder()
	Timeout(0)(fast).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", w.Code)
	}
}

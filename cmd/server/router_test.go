package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/staticWagomU/slack-remind-generator/api/openapi"
	"github.com/staticWagomU/slack-remind-generator/internal/businessday"
	"github.com/staticWagomU/slack-remind-generator/internal/handlers"
	"github.com/staticWagomU/slack-remind-generator/internal/keystore"
	"github.com/staticWagomU/slack-remind-generator/internal/middleware"
	"github.com/staticWagomU/slack-remind-generator/internal/models"
	"github.com/staticWagomU/slack-remind-generator/internal/timeconv"
	"go.uber.org/zap"
)

const testOrigin = "http://localhost:5173"

type stubGenerator struct{}

func (stubGenerator) Generate(ctx context.Context, input string) (*models.AIResponse, error) {
	return &models.AIResponse{
		Commands:   []models.RemindCommand{{Who: "me", What: "日報を書く", When: "at 6pm every weekday"}},
		Confidence: 0.9,
	}, nil
}

func newTestRouter(t *testing.T, rate string) http.Handler {
	t.Helper()
	logger := zap.NewNop()

	limit, err := middleware.RateLimit(rate, nil, logger)
	if err != nil {
		t.Fatalf("RateLimit() error = %v", err)
	}

	return newRouter(routerDeps{
		logger:         logger,
		allowedOrigins: []string{testOrigin},
		health:         handlers.NewHealthChecker("test"),
		openAPI:        handlers.NewOpenAPIHandler(openapi.Spec),
		time:           handlers.NewTimeHandler(timeconv.New(), businessday.NewCalculator(businessday.DefaultCalendar()), time.UTC),
		commands:       handlers.NewCommandHandler(),
		ai:             handlers.NewAIHandler(keystore.NewMemoryStore(), stubGenerator{}, logger),
		rateLimit:      limit,
	})
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func postJSON(target, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t, "100-S")

	w := serve(r, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if w.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("missing request id header")
	}
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing security headers")
	}
}

func TestRouter_OpenAPI(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t, "100-S")

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/openapi.json", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var doc map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if _, ok := doc["paths"]; !ok {
		t.Error("document has no paths")
	}
}

func TestRouter_NotFound(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t, "100-S")

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"success":false`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestRouter_Preflight(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t, "100-S")

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/commands", nil)
	req.Header.Set("Origin", testOrigin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := serve(r, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != testOrigin {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestRouter_GenerateCommand(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t, "100-S")

	body := `{"who":{"type":"me"},"what":"会議","when":"at 9am tomorrow"}`
	w := serve(r, postJSON("/api/v1/commands", body))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `/remind me \"会議\" at 9am tomorrow`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestRouter_ContentTypeEnforced(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t, "100-S")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/commands", strings.NewReader("who=me"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if w := serve(r, req); w.Code != http.StatusUnsupportedMediaType {
		t.Errorf("status = %d, want 415", w.Code)
	}
}

func TestRouter_RateLimitOnlyOnConversions(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t, "1-M")

	first := serve(r, postJSON("/api/v1/ai/commands", `{"input":"毎朝9時に日報"}`))
	if first.Code != http.StatusOK {
		t.Fatalf("first status = %d, body = %s", first.Code, first.Body.String())
	}
	second := serve(r, postJSON("/api/v1/ai/commands", `{"input":"毎朝9時に日報"}`))
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("second status = %d, want 429", second.Code)
	}

	for i := 0; i < 3; i++ {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/ai/key", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("key status = %d, want 200", w.Code)
		}
	}
}

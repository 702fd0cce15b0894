package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/gorilla/mux"
)

// checkTimeout bounds each dependency check in extended mode
const checkTimeout = 5 * time.Second

// CheckFunc reports the health of one dependency
type CheckFunc func(ctx context.Context) error

type namedCheck struct {
	name  string
	check CheckFunc
}

// HealthChecker handles health check requests
type HealthChecker struct {
	version string
	checks  []namedCheck
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(version string) *HealthChecker {
	return &HealthChecker{version: version}
}

// AddCheck registers a dependency probed by ?mode=extended
func (h *HealthChecker) AddCheck(name string, check CheckFunc) *HealthChecker {
	h.checks = append(h.checks, namedCheck{name: name, check: check})
	return h
}

// RegisterRoutes registers /healthz and /version
func (h *HealthChecker) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/healthz", h.HealthCheck).Methods(http.MethodGet)
	r.HandleFunc("/version", h.Version).Methods(http.MethodGet)
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthCheck handles the /healthz endpoint
func (h *HealthChecker) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	statusCode := http.StatusOK

	if r.URL.Query().Get("mode") == "extended" {
		checks := make(map[string]string, len(h.checks))
		for _, c := range h.checks {
			if err := h.run(r.Context(), c.check); err != nil {
				response.Status = "unhealthy"
				checks[c.name] = "unhealthy: " + err.Error()
				continue
			}
			checks[c.name] = "healthy"
		}
		response.Checks = checks
		if response.Status == "unhealthy" {
			statusCode = http.StatusServiceUnavailable
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(response)
}

func (h *HealthChecker) run(ctx context.Context, check CheckFunc) error {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	return check(ctx)
}

// CheckNames lists registered checks in sorted order
func (h *HealthChecker) CheckNames() []string {
	names := make([]string, 0, len(h.checks))
	for _, c := range h.checks {
		names = append(names, c.name)
	}
	sort.Strings(names)
	return names
}

// Version handles the /version endpoint
func (h *HealthChecker) Version(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

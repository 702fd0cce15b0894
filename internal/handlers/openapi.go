package handlers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"gopkg.in/yaml.v3"
)

// OpenAPIHandler serves the API description in YAML and JSON
type OpenAPIHandler struct {
	spec []byte

	once    sync.Once
	jsonDoc []byte
	jsonErr error
}

// NewOpenAPIHandler creates a handler for the given YAML document
func NewOpenAPIHandler(spec []byte) *OpenAPIHandler {
	return &OpenAPIHandler{spec: spec}
}

// RegisterRoutes registers OpenAPI routes
func (h *OpenAPIHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/v1/openapi.yaml", h.ServeYAML).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/openapi.json", h.ServeJSON).Methods(http.MethodGet)
}

// ServeYAML serves the OpenAPI spec in YAML format
func (h *OpenAPIHandler) ServeYAML(w http.ResponseWriter, r *http.Request) {
	if len(h.spec) == 0 {
		respondJSONError(w, http.StatusNotFound, "Not Found", "OpenAPI specification not found")
		return
	}
	w.Header().Set("Content-Type", "application/x-yaml")
	_, _ = w.Write(h.spec)
}

// ServeJSON serves the OpenAPI spec in JSON format. The conversion runs once.
func (h *OpenAPIHandler) ServeJSON(w http.ResponseWriter, r *http.Request) {
	if len(h.spec) == 0 {
		respondJSONError(w, http.StatusNotFound, "Not Found", "OpenAPI specification not found")
		return
	}

	h.once.Do(func() {
		var doc map[string]any
		if h.jsonErr = yaml.Unmarshal(h.spec, &doc); h.jsonErr != nil {
			return
		}
		h.jsonDoc, h.jsonErr = json.Marshal(doc)
	})
	if h.jsonErr != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to parse OpenAPI specification")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(h.jsonDoc)
}

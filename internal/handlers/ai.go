package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/staticWagomU/slack-remind-generator/internal/command"
	"github.com/staticWagomU/slack-remind-generator/internal/keystore"
	logpkg "github.com/staticWagomU/slack-remind-generator/internal/logger"
	"github.com/staticWagomU/slack-remind-generator/internal/models"
	"github.com/staticWagomU/slack-remind-generator/internal/queue"
	"github.com/staticWagomU/slack-remind-generator/internal/results"
	"github.com/staticWagomU/slack-remind-generator/internal/services/ai"
	"go.uber.org/zap"
)

// Generator produces reminder commands from free text
type Generator interface {
	Generate(ctx context.Context, input string) (*models.AIResponse, error)
}

// AIHandler serves the API key settings and AI conversion endpoints
type AIHandler struct {
	keys      keystore.Store
	generator Generator
	jobs      queue.Enqueuer
	results   results.Store
	jobTTL    time.Duration
	logger    *zap.Logger
}

// NewAIHandler creates a handler for synchronous conversions. Use WithJobs
// to enable the asynchronous endpoints.
func NewAIHandler(keys keystore.Store, generator Generator, logger *zap.Logger) *AIHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AIHandler{keys: keys, generator: generator, logger: logger}
}

// WithJobs enables POST/GET /ai/jobs. Accepted jobs expire unprocessed after ttl.
func (h *AIHandler) WithJobs(jobs queue.Enqueuer, store results.Store, ttl time.Duration) *AIHandler {
	h.jobs = jobs
	h.results = store
	h.jobTTL = ttl
	return h
}

// RegisterKeyRoutes registers the key settings routes on the /ai router
func (h *AIHandler) RegisterKeyRoutes(r *mux.Router) {
	r.HandleFunc("/key", h.GetKey).Methods(http.MethodGet)
	r.HandleFunc("/key", h.SaveKey).Methods(http.MethodPut)
	r.HandleFunc("/key", h.ClearKey).Methods(http.MethodDelete)
}

// RegisterConversionRoutes registers the conversion routes. These call the
// LLM and are expected to sit behind the rate limiter.
func (h *AIHandler) RegisterConversionRoutes(r *mux.Router) {
	r.HandleFunc("/commands", h.ConvertCommands).Methods(http.MethodPost)
	r.HandleFunc("/jobs", h.CreateJob).Methods(http.MethodPost)
	r.HandleFunc("/jobs/{id}", h.GetJob).Methods(http.MethodGet)
}

// SaveKeyRequest carries a new API key
type SaveKeyRequest struct {
	APIKey string `json:"api_key" validate:"max=512"`
}

// SaveKey handles PUT /ai/key
func (h *AIHandler) SaveKey(w http.ResponseWriter, r *http.Request) {
	var req SaveKeyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.keys.Save(r.Context(), req.APIKey); err != nil {
		h.respondStoreError(w, r, "api_key_save_failed", err)
		return
	}
	h.GetKey(w, r)
}

// GetKey handles GET /ai/key. The key itself is never returned.
func (h *AIHandler) GetKey(w http.ResponseWriter, r *http.Request) {
	status, err := keystore.GetStatus(r.Context(), h.keys)
	if err != nil {
		h.respondStoreError(w, r, "api_key_read_failed", err)
		return
	}
	respondJSON(w, http.StatusOK, status)
}

// ClearKey handles DELETE /ai/key
func (h *AIHandler) ClearKey(w http.ResponseWriter, r *http.Request) {
	if err := h.keys.Clear(r.Context()); err != nil {
		h.respondStoreError(w, r, "api_key_clear_failed", err)
		return
	}
	respondJSON(w, http.StatusOK, keystore.Status{})
}

func (h *AIHandler) respondStoreError(w http.ResponseWriter, r *http.Request, event string, err error) {
	var aiErr *models.AIError
	if errors.As(err, &aiErr) {
		respondAIError(w, aiErr)
		return
	}
	h.logger.Error(event,
		zap.String("error", logpkg.SanitizeError(err)),
		zap.String("request_id", ai.ExtractRequestID(r.Context())),
	)
	respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to access key storage")
}

// ConvertCommandsRequest carries free text to turn into reminders
type ConvertCommandsRequest struct {
	Input string `json:"input" validate:"max=2000"`
}

// ConvertCommandsResponse is the AI proposal plus rendered commands
type ConvertCommandsResponse struct {
	Commands        []models.RemindCommand `json:"commands"`
	CommandStrings  []string               `json:"command_strings"`
	Confidence      float64                `json:"confidence"`
	ConfidenceLevel models.ConfidenceLevel `json:"confidence_level"`
	LowConfidence   bool                   `json:"low_confidence"`
}

// ConvertCommands handles POST /ai/commands
func (h *AIHandler) ConvertCommands(w http.ResponseWriter, r *http.Request) {
	var req ConvertCommandsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.generator.Generate(r.Context(), req.Input)
	if err != nil {
		respondAIError(w, err)
		return
	}

	commands := resp.Commands
	if commands == nil {
		commands = []models.RemindCommand{}
	}
	respondJSON(w, http.StatusOK, ConvertCommandsResponse{
		Commands:        commands,
		CommandStrings:  command.FromAIResponse(resp),
		Confidence:      resp.Confidence,
		ConfidenceLevel: resp.Level(),
		LowConfidence:   resp.IsLowConfidence(),
	})
}

// JobAcceptedResponse is returned for an enqueued conversion
type JobAcceptedResponse struct {
	JobID  uuid.UUID      `json:"job_id"`
	Status results.Status `json:"status"`
}

// CreateJob handles POST /ai/jobs
func (h *AIHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	if h.jobs == nil || h.results == nil {
		respondJSONError(w, http.StatusServiceUnavailable, "Service Unavailable", "Asynchronous conversion is not enabled")
		return
	}

	var req ConvertCommandsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	input := strings.TrimSpace(req.Input)
	if input == "" {
		respondAIError(w, models.NewAIError(models.CodeInvalidInput, ai.MsgEmptyInput))
		return
	}

	ctx := r.Context()
	job := queue.NewConversionJob(input, h.jobTTL)
	job.RequestID = ai.ExtractRequestID(ctx)

	if err := h.results.Put(ctx, results.Pending(job.ID)); err != nil {
		h.logger.Error("job_result_init_failed", zap.String("job_id", job.ID.String()), zap.Error(err))
		respondJSONError(w, http.StatusServiceUnavailable, "Service Unavailable", "Failed to accept job")
		return
	}
	if err := h.jobs.Enqueue(ctx, job); err != nil {
		h.logger.Error("job_enqueue_failed", zap.String("job_id", job.ID.String()), zap.Error(err))
		respondJSONError(w, http.StatusServiceUnavailable, "Service Unavailable", "Failed to accept job")
		return
	}

	h.logger.Info("job_enqueued",
		zap.String("job_id", job.ID.String()),
		zap.String("request_id", job.RequestID),
	)
	w.Header().Set("Location", "/api/v1/ai/jobs/"+job.ID.String())
	respondJSON(w, http.StatusAccepted, JobAcceptedResponse{JobID: job.ID, Status: results.StatusPending})
}

// GetJob handles GET /ai/jobs/{id}
func (h *AIHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	if h.results == nil {
		respondJSONError(w, http.StatusServiceUnavailable, "Service Unavailable", "Asynchronous conversion is not enabled")
		return
	}

	jobID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondCodedError(w, http.StatusBadRequest, "Bad Request", "Invalid job ID", models.CodeInvalidInput)
		return
	}

	result, err := h.results.Get(r.Context(), jobID)
	if errors.Is(err, results.ErrNotFound) {
		respondJSONError(w, http.StatusNotFound, "Not Found", "Job not found or expired")
		return
	}
	if err != nil {
		h.logger.Error("job_result_read_failed", zap.String("job_id", jobID.String()), zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to read job result")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

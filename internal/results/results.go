// Package results keeps the outcome of asynchronous AI conversions in redis
// until the client polls for them or the TTL runs out.
package results

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/staticWagomU/slack-remind-generator/internal/models"
)

// Status of a conversion job
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"

	// KeyPrefix namespaces result keys in redis
	KeyPrefix = "slack-remind:result:"
)

// ErrNotFound is returned for unknown or expired job ids
var ErrNotFound = errors.New("result not found")

// ErrorInfo is the failure reported to the client
type ErrorInfo struct {
	Code    models.ErrorCode `json:"code"`
	Message string           `json:"message"`
}

// Result is one job's outcome
type Result struct {
	JobID           uuid.UUID              `json:"job_id"`
	Status          Status                 `json:"status"`
	Commands        []models.RemindCommand `json:"commands,omitempty"`
	CommandStrings  []string               `json:"command_strings,omitempty"`
	Confidence      float64                `json:"confidence,omitempty"`
	ConfidenceLevel models.ConfidenceLevel `json:"confidence_level,omitempty"`
	Error           *ErrorInfo             `json:"error,omitempty"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// Pending returns the placeholder stored when a job is accepted
func Pending(jobID uuid.UUID) *Result {
	return &Result{JobID: jobID, Status: StatusPending, UpdatedAt: time.Now().UTC()}
}

// Completed builds a successful result
func Completed(jobID uuid.UUID, resp *models.AIResponse, commands []string) *Result {
	return &Result{
		JobID:           jobID,
		Status:          StatusCompleted,
		Commands:        resp.Commands,
		CommandStrings:  commands,
		Confidence:      resp.Confidence,
		ConfidenceLevel: resp.Level(),
		UpdatedAt:       time.Now().UTC(),
	}
}

// Failed builds a failed result. Errors outside the AIError taxonomy are
// reported as API_ERROR.
func Failed(jobID uuid.UUID, err error) *Result {
	info := &ErrorInfo{Code: models.CodeAPIError, Message: err.Error()}
	var aiErr *models.AIError
	if errors.As(err, &aiErr) {
		info.Code = aiErr.Code
		info.Message = aiErr.Message
		if info.Message == "" {
			info.Message = string(aiErr.Code)
		}
	}
	return &Result{JobID: jobID, Status: StatusFailed, Error: info, UpdatedAt: time.Now().UTC()}
}

// Store persists results
type Store interface {
	Put(ctx context.Context, result *Result) error
	Get(ctx context.Context, jobID uuid.UUID) (*Result, error)
	HealthCheck(ctx context.Context) error
}

// RedisStore keeps each result as a JSON string with a TTL
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisStore returns a store writing entries that expire after ttl (0 = never)
func NewRedisStore(client redis.UniversalClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func key(jobID uuid.UUID) string {
	return KeyPrefix + jobID.String()
}

// Put stores result, replacing any previous state for the job
func (s *RedisStore) Put(ctx context.Context, result *Result) error {
	body, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := s.client.Set(ctx, key(result.JobID), body, s.ttl).Err(); err != nil {
		return fmt.Errorf("store result %s: %w", result.JobID, err)
	}
	return nil
}

// Get returns ErrNotFound once the entry has expired
func (s *RedisStore) Get(ctx context.Context, jobID uuid.UUID) (*Result, error) {
	body, err := s.client.Get(ctx, key(jobID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load result %s: %w", jobID, err)
	}
	var result Result
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode result %s: %w", jobID, err)
	}
	return &result, nil
}

// HealthCheck pings redis
func (s *RedisStore) HealthCheck(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

var _ Store = (*RedisStore)(nil)

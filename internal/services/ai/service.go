// Package ai turns free-text reminder requests into structured /remind
// commands through an LLM chat-completion API.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/staticWagomU/slack-remind-generator/internal/models"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "github.com/staticWagomU/slack-remind-generator/internal/services/ai"

// KeySource supplies the API key. ok is false when no key is configured.
type KeySource interface {
	Read(ctx context.Context) (key string, ok bool, err error)
}

// Service runs the request pipeline: key check, completion with retries,
// JSON parsing.
type Service struct {
	provider  Provider
	keys      KeySource
	policy    RetryPolicy
	logger    *zap.Logger
	debugMode bool
	tracer    trace.Tracer
}

// NewService creates a pipeline over provider. The key is read from keys on
// every Generate call.
func NewService(provider Provider, keys KeySource, policy RetryPolicy, logger *zap.Logger, debugMode bool) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		provider:  provider,
		keys:      keys,
		policy:    policy.withDefaults(),
		logger:    logger,
		debugMode: debugMode,
		tracer:    otel.Tracer(tracerName),
	}
}

// Generate converts input into reminder commands. Every failure is a
// *models.AIError.
func (s *Service) Generate(ctx context.Context, input string) (*models.AIResponse, error) {
	apiKey, err := s.apiKey(ctx)
	if err != nil {
		return nil, err
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return nil, models.NewAIError(models.CodeInvalidInput, MsgEmptyInput)
	}

	req := Completion{APIKey: apiKey, SystemPrompt: SystemPrompt, UserInput: input}

	var lastErr *models.AIError
	for attempt := 0; attempt < s.policy.MaxAttempts; attempt++ {
		if attempt > 0 {
			delay := s.policy.Backoff(attempt - 1)
			s.logger.Info("ai_retry_scheduled",
				zap.Int("attempt", attempt+1),
				zap.Int("max_attempts", s.policy.MaxAttempts),
				zap.Duration("delay", delay),
				zap.String("code", string(lastErr.Code)),
				zap.Int("status_code", lastErr.StatusCode),
				zap.String("request_id", ExtractRequestID(ctx)),
			)
			if err := s.policy.Sleep(ctx, delay); err != nil {
				return nil, models.NewAIError(models.CodeMaxRetriesExceeded, MsgMaxRetriesExceeded).WithDetails(err.Error())
			}
		}

		content, err := s.attempt(ctx, req, attempt)
		if err == nil {
			return parseResponse(content)
		}

		aiErr := ClassifyError(err)
		if !s.policy.Retryable(aiErr) || ctx.Err() != nil {
			return nil, aiErr
		}
		lastErr = aiErr
	}

	if lastErr != nil {
		s.logger.Warn("ai_retries_exhausted",
			zap.Int("attempts", s.policy.MaxAttempts),
			zap.String("code", string(lastErr.Code)),
			zap.Int("status_code", lastErr.StatusCode),
		)
		return nil, lastErr
	}
	return nil, models.NewAIError(models.CodeMaxRetriesExceeded, MsgMaxRetriesExceeded)
}

func (s *Service) apiKey(ctx context.Context) (string, error) {
	if s.keys == nil {
		return "", models.NewAIError(models.CodeAPIKeyMissing, MsgAPIKeyMissing)
	}
	key, ok, err := s.keys.Read(ctx)
	if err != nil {
		return "", &models.AIError{Code: models.CodeAPIKeyMissing, Message: MsgAPIKeyMissing, Details: err.Error(), Err: err}
	}
	if !ok || strings.TrimSpace(key) == "" {
		return "", models.NewAIError(models.CodeAPIKeyMissing, MsgAPIKeyMissing)
	}
	return strings.TrimSpace(key), nil
}

func (s *Service) attempt(ctx context.Context, req Completion, attempt int) (string, error) {
	ctx, span := s.tracer.Start(ctx, "ai.chat_completion",
		trace.WithAttributes(
			attribute.Int("ai.attempt", attempt+1),
			attribute.String("ai.model", s.provider.Model()),
		),
	)
	defer span.End()

	content, err := s.provider.Complete(ctx, req)
	if err != nil {
		aiErr := ClassifyError(err)
		span.SetAttributes(
			attribute.String("ai.error_code", string(aiErr.Code)),
			attribute.Int("http.status_code", aiErr.StatusCode),
		)
		span.SetStatus(codes.Error, aiErr.Message)
		return "", err
	}
	span.SetAttributes(attribute.Int("ai.response_length", len(content)))
	return content, nil
}

type completionPayload struct {
	Commands   []models.RemindCommand `json:"commands"`
	Confidence float64                `json:"confidence"`
}

// parseResponse builds an AIResponse from the model's JSON reply. Missing
// commands become an empty list and missing confidence becomes 0.
func parseResponse(content string) (*models.AIResponse, error) {
	if strings.TrimSpace(content) == "" {
		return nil, models.NewAIError(models.CodeParseError, MsgEmptyResponse)
	}

	var payload completionPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		var syntaxErr *json.SyntaxError
		details := err.Error()
		if errors.As(err, &syntaxErr) {
			details = "invalid JSON at offset " + strconv.FormatInt(syntaxErr.Offset, 10)
		}
		return nil, &models.AIError{Code: models.CodeAPIError, Message: err.Error(), Details: details, Err: err}
	}

	if payload.Commands == nil {
		payload.Commands = []models.RemindCommand{}
	}
	return &models.AIResponse{
		Commands:    payload.Commands,
		Confidence:  payload.Confidence,
		RawResponse: content,
	}, nil
}

package ai

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"github.com/staticWagomU/slack-remind-generator/internal/models"
	"go.uber.org/zap"
)

const (
	// DefaultOpenAIModel is the default model to use
	DefaultOpenAIModel = "gpt-4o-mini"
	// DefaultOpenAIBaseURL is the default OpenAI API base URL
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	// DefaultTemperature keeps answers close to deterministic
	DefaultTemperature = 0.3
	// DefaultTimeout is the default timeout for API calls
	DefaultTimeout = 30 * time.Second

	// ErrNoChoicesInResponse is returned when the API response has no choices
	ErrNoChoicesInResponse = "no choices in response"
)

// OpenAIProvider implements Provider using OpenAI's chat completions API
type OpenAIProvider struct {
	client      openai.Client
	model       string
	temperature float64
	logger      *zap.Logger
	debugMode   bool
}

// OpenAIConfig configures an OpenAIProvider
type OpenAIConfig struct {
	BaseURL     string
	Model       string
	Temperature *float64 // nil means DefaultTemperature
	HTTPClient  *http.Client
}

// NewOpenAIProvider creates a provider with default settings
func NewOpenAIProvider(model string) *OpenAIProvider {
	return NewOpenAIProviderWithLogger(OpenAIConfig{Model: model}, nil, false)
}

// NewOpenAIProviderWithLogger creates a new OpenAI provider with logger support.
// The SDK's own retries are disabled; Service applies RetryPolicy instead.
func NewOpenAIProviderWithLogger(cfg OpenAIConfig, logger *zap.Logger, debugMode bool) *OpenAIProvider {
	if cfg.Model == "" {
		cfg.Model = DefaultOpenAIModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultOpenAIBaseURL
	}
	temperature := DefaultTemperature
	if cfg.Temperature != nil {
		temperature = *cfg.Temperature
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}

	client := openai.NewClient(
		option.WithBaseURL(cfg.BaseURL),
		option.WithHTTPClient(cfg.HTTPClient),
		option.WithMaxRetries(0),
	)

	return &OpenAIProvider{
		client:      client,
		model:       cfg.Model,
		temperature: temperature,
		logger:      logger,
		debugMode:   debugMode,
	}
}

// Model returns the configured model name
func (p *OpenAIProvider) Model() string {
	return p.model
}

// Complete sends one chat-completion request in JSON-object mode
func (p *OpenAIProvider) Complete(ctx context.Context, req Completion) (string, error) {
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(req.SystemPrompt),
		openai.UserMessage(req.UserInput),
	}
	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(p.model),
		Messages: messages,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
		Temperature: openai.Float(p.temperature),
	}

	requestID := ExtractRequestID(ctx)
	if p.logger != nil && p.debugMode {
		p.logger.Debug("llm_api_request",
			zap.String("operation", "generate_commands"),
			zap.String("model", p.model),
			zap.String("api_key", SanitizeAPIKey(req.APIKey)),
			zap.Int("prompt_length", len(req.UserInput)),
			zap.Int("message_count", len(messages)),
			zap.String("prompt_preview", SanitizePrompt(req.UserInput, true)),
			zap.String("request_id", requestID),
		)
	}

	start := time.Now()
	resp, err := p.client.Chat.Completions.New(ctx, params, option.WithAPIKey(req.APIKey))
	latency := time.Since(start)
	if err != nil {
		if p.logger != nil && p.debugMode {
			p.logger.Debug("llm_api_error",
				zap.String("operation", "generate_commands"),
				zap.String("model", p.model),
				zap.Error(err),
				zap.String("request_id", requestID),
				zap.Int64("latency_ms", latency.Milliseconds()),
			)
		}
		return "", fmt.Errorf("failed to generate commands: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", models.NewAIError(models.CodeParseError, MsgEmptyResponse).WithDetails(ErrNoChoicesInResponse)
	}
	content := resp.Choices[0].Message.Content

	if p.logger != nil && p.debugMode {
		p.logger.Debug("llm_api_response",
			zap.String("operation", "generate_commands"),
			zap.String("model", p.model),
			zap.Int("response_length", len(content)),
			zap.String("response_preview", SanitizeResponse(content, true)),
			zap.String("request_id", requestID),
			zap.Int64("latency_ms", latency.Milliseconds()),
		)
	}

	return content, nil
}

// RegisterOpenAI registers the OpenAI provider with the registry.
// Recognised settings: model, base_url, temperature.
func RegisterOpenAI(registry *ProviderRegistry, logger *zap.Logger, debugMode bool) {
	registry.Register(ProviderOpenAI, func(config map[string]string) (Provider, error) {
		cfg := OpenAIConfig{
			Model:   config["model"],
			BaseURL: config["base_url"],
		}
		if t := config["temperature"]; t != "" {
			v, err := strconv.ParseFloat(t, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid openai temperature %q: %w", t, err)
			}
			cfg.Temperature = &v
		}
		return NewOpenAIProviderWithLogger(cfg, logger, debugMode), nil
	})
}

package ai

import (
	"strconv"
	"time"

	"go.uber.org/zap"
)

// ProviderOpenAI is the registry name of the OpenAI provider
const ProviderOpenAI = "openai"

// Settings selects a provider and tunes the retry policy
type Settings struct {
	Provider    string
	Model       string
	BaseURL     string
	Temperature float64
	MaxAttempts int
	BackoffBase time.Duration
}

// NewProvider resolves s.Provider through a registry holding the built-in providers
func NewProvider(s Settings, logger *zap.Logger, debugMode bool) (Provider, error) {
	name := s.Provider
	if name == "" {
		name = ProviderOpenAI
	}

	registry := NewProviderRegistry()
	RegisterOpenAI(registry, logger, debugMode)

	return registry.GetProvider(name, map[string]string{
		"model":       s.Model,
		"base_url":    s.BaseURL,
		"temperature": strconv.FormatFloat(s.Temperature, 'f', -1, 64),
	})
}

// RetryPolicy is DefaultRetryPolicy with the configured attempts and backoff base
func (s Settings) RetryPolicy() RetryPolicy {
	policy := DefaultRetryPolicy()
	if s.MaxAttempts > 0 {
		policy.MaxAttempts = s.MaxAttempts
	}
	if s.BackoffBase > 0 {
		policy.Backoff = ExponentialBackoff(s.BackoffBase)
	}
	return policy
}

// NewServiceFromSettings builds the provider and wraps it in a Service
func NewServiceFromSettings(s Settings, keys KeySource, logger *zap.Logger, debugMode bool) (*Service, error) {
	provider, err := NewProvider(s, logger, debugMode)
	if err != nil {
		return nil, err
	}
	return NewService(provider, keys, s.RetryPolicy(), logger, debugMode), nil
}

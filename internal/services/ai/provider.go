package ai

import (
	"context"
	"sort"
	"strings"
)

// Completion is one chat-completion request
type Completion struct {
	APIKey       string
	SystemPrompt string
	UserInput    string
}

// Provider sends a single chat-completion request and returns the content of
// the first choice. Retrying is the caller's job.
type Provider interface {
	Complete(ctx context.Context, req Completion) (string, error)
	Model() string
}

// ProviderFactory builds a provider from string settings. Unknown keys are ignored.
type ProviderFactory func(settings map[string]string) (Provider, error)

// ProviderRegistry maps provider names, matched case-insensitively, to factories
type ProviderRegistry struct {
	factories map[string]ProviderFactory
}

// NewProviderRegistry returns an empty registry
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{factories: make(map[string]ProviderFactory)}
}

// Register adds factory under name, replacing an earlier registration
func (r *ProviderRegistry) Register(name string, factory ProviderFactory) {
	r.factories[strings.ToLower(name)] = factory
}

// Names lists the registered providers in order
func (r *ProviderRegistry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetProvider builds the provider registered as name
func (r *ProviderRegistry) GetProvider(name string, settings map[string]string) (Provider, error) {
	factory, ok := r.factories[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, &ErrProviderNotFound{Name: name, Available: r.Names()}
	}
	return factory(settings)
}

// ErrProviderNotFound reports an AI_PROVIDER value nothing is registered for
type ErrProviderNotFound struct {
	Name      string
	Available []string
}

func (e *ErrProviderNotFound) Error() string {
	msg := "AI provider not found: " + e.Name
	if len(e.Available) > 0 {
		msg += " (available: " + strings.Join(e.Available, ", ") + ")"
	}
	return msg
}

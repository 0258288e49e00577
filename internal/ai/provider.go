package ai

import (
	"context"
	"fmt"

	"cvforge/internal/config"
)

// Request carries one prompt pair to a provider. Each implementation
// formats the pair the way its API expects; there is no shared template.
type Request struct {
	System string
	User   string
}

// Provider sends a prompt to one LLM backend and returns the raw text.
// The implementation is selected once, at configuration-load time.
type Provider interface {
	Name() string
	Model() string
	Generate(ctx context.Context, req Request) (string, error)
}

// ProviderError describes a failed provider call: missing or rejected
// credentials, quota exhaustion, network failure, or a malformed reply.
// Calls are single-attempt; the error surfaces to the user as-is.
type ProviderError struct {
	Provider string
	Status   int // HTTP status, when one was received
	Message  string
	Cause    error
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (HTTP %d)", e.Provider, e.Message, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Cause }

// New returns the provider selected by cfg.Provider.
func New(cfg *config.Config) (Provider, error) {
	switch cfg.Provider {
	case config.ProviderAnthropic:
		return NewAnthropic(cfg), nil
	case config.ProviderOpenAI:
		return NewOpenAI(cfg), nil
	case config.ProviderOllama:
		return NewOllama(cfg), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

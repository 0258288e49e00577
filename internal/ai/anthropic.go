package ai

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"cvforge/internal/config"
)

// AnthropicProvider drafts documents through the Anthropic Messages API.
type AnthropicProvider struct {
	client      anthropic.Client
	model       string
	maxTokens   int
	temperature float64
	key         string
}

var _ Provider = (*AnthropicProvider)(nil)

// NewAnthropic builds the provider from cfg. Extra request options are a
// test seam for pointing the client at a local server.
func NewAnthropic(cfg *config.Config, opts ...option.RequestOption) *AnthropicProvider {
	key := cfg.AnthropicKey()
	clientOpts := append([]option.RequestOption{option.WithAPIKey(key)}, opts...)
	return &AnthropicProvider{
		client:      anthropic.NewClient(clientOpts...),
		model:       cfg.Anthropic.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		key:         key,
	}
}

func (p *AnthropicProvider) Name() string  { return config.ProviderAnthropic }
func (p *AnthropicProvider) Model() string { return p.model }

// Generate sends the system prompt as a system block and the user prompt
// as a single user message.
func (p *AnthropicProvider) Generate(ctx context.Context, req Request) (string, error) {
	if p.key == "" {
		return "", &ProviderError{
			Provider: p.Name(),
			Message:  "API key not configured (set anthropic.api_key or ANTHROPIC_API_KEY)",
		}
	}

	msg, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(p.model),
		MaxTokens:   int64(p.maxTokens),
		Temperature: anthropic.Float(p.temperature),
		System: []anthropic.TextBlockParam{
			{Text: req.System},
		},
		Messages: []anthropic.MessageParam{{
			Role: anthropic.MessageParamRoleUser,
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: req.User},
			}},
		}},
	})
	if err != nil {
		return "", &ProviderError{
			Provider: p.Name(),
			Status:   anthropicStatus(err),
			Message:  "message request failed",
			Cause:    err,
		}
	}

	var out strings.Builder
	for _, block := range msg.Content {
		out.WriteString(block.AsText().Text)
	}
	if out.Len() == 0 {
		return "", &ProviderError{Provider: p.Name(), Message: "empty response"}
	}
	return out.String(), nil
}

func anthropicStatus(err error) int {
	var apierr *anthropic.Error
	if errors.As(err, &apierr) {
		return apierr.StatusCode
	}
	return 0
}

package ai

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"

	"cvforge/internal/config"
)

// OpenAIProvider drafts documents through the OpenAI chat completions API.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float64
	key         string
}

var _ Provider = (*OpenAIProvider)(nil)

// NewOpenAI builds the provider from cfg.
func NewOpenAI(cfg *config.Config) *OpenAIProvider {
	return newOpenAI(cfg, "")
}

// newOpenAI accepts a base URL override so tests can target a local server.
func newOpenAI(cfg *config.Config, baseURL string) *OpenAIProvider {
	key := cfg.OpenAIKey()
	clientCfg := openai.DefaultConfig(key)
	if baseURL != "" {
		clientCfg.BaseURL = baseURL
	}
	return &OpenAIProvider{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.OpenAI.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		key:         key,
	}
}

func (p *OpenAIProvider) Name() string  { return config.ProviderOpenAI }
func (p *OpenAIProvider) Model() string { return p.model }

// Generate sends the system prompt as a system-role message ahead of the
// user message.
func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (string, error) {
	if p.key == "" {
		return "", &ProviderError{
			Provider: p.Name(),
			Message:  "API key not configured (set openai.api_key or OPENAI_API_KEY)",
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		MaxTokens:   p.maxTokens,
		Temperature: float32(p.temperature),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
	})
	if err != nil {
		return "", &ProviderError{
			Provider: p.Name(),
			Status:   openaiStatus(err),
			Message:  "chat completion failed",
			Cause:    err,
		}
	}
	if len(resp.Choices) == 0 {
		return "", &ProviderError{Provider: p.Name(), Message: "no choices in response"}
	}
	return resp.Choices[0].Message.Content, nil
}

func openaiStatus(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cvforge/internal/config"
)

// OllamaProvider talks to a local Ollama runtime over its HTTP API. No API
// key involved; generation never leaves the user's machine.
type OllamaProvider struct {
	baseURL     string
	model       string
	temperature float64
	httpClient  *http.Client
}

var _ Provider = (*OllamaProvider)(nil)

// Local models on CPU can take a while on a 4000-token draft.
const ollamaTimeout = 120 * time.Second

// NewOllama builds the provider from cfg.
func NewOllama(cfg *config.Config) *OllamaProvider {
	return &OllamaProvider{
		baseURL:     strings.TrimRight(cfg.Ollama.URL, "/"),
		model:       cfg.Ollama.Model,
		temperature: cfg.Temperature,
		httpClient:  &http.Client{Timeout: ollamaTimeout},
	}
}

func (p *OllamaProvider) Name() string  { return config.ProviderOllama }
func (p *OllamaProvider) Model() string { return p.model }

// generateRequest mirrors the Ollama /api/generate request body.
type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
}

// generateResponse mirrors the relevant fields of the Ollama response.
type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// Generate folds the system prompt into Ollama's single prompt field,
// separated from the user prompt by a blank line.
func (p *OllamaProvider) Generate(ctx context.Context, req Request) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:   p.model,
		Prompt:  req.System + "\n\n" + req.User,
		Stream:  false,
		Options: generateOptions{Temperature: p.temperature},
	})
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create generate request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", &ProviderError{
			Provider: p.Name(),
			Message:  "cannot reach Ollama (is it running?)",
			Cause:    err,
		}
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Message: "read response", Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &ProviderError{
			Provider: p.Name(),
			Status:   resp.StatusCode,
			Message:  strings.TrimSpace(string(respBytes)),
		}
	}

	var genResp generateResponse
	if err := json.Unmarshal(respBytes, &genResp); err != nil {
		return "", &ProviderError{Provider: p.Name(), Message: "parse response", Cause: err}
	}
	if genResp.Error != "" {
		return "", &ProviderError{Provider: p.Name(), Message: genResp.Error}
	}
	return genResp.Response, nil
}

// tagsResponse mirrors the relevant fields of the Ollama /api/tags response.
type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// ListModels returns the model names the local runtime has pulled, for the
// config editor's model picker.
func (p *OllamaProvider) ListModels(ctx context.Context) ([]string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("create tags request: %w", err)
	}

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, &ProviderError{
			Provider: p.Name(),
			Message:  "cannot reach Ollama (is it running?)",
			Cause:    err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{Provider: p.Name(), Status: resp.StatusCode, Message: "list models failed"}
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, &ProviderError{Provider: p.Name(), Message: "parse tags response", Cause: err}
	}

	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

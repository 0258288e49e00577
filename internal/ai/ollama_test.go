package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cvforge/internal/config"
)

func ollamaConfig(url string) *config.Config {
	cfg := config.Default()
	cfg.Provider = config.ProviderOllama
	cfg.Ollama.URL = url
	cfg.Ollama.Model = "llama3.2:latest"
	cfg.Temperature = 0.4
	return cfg
}

func TestOllamaGenerate_ConcatenatesPrompts(t *testing.T) {
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path = %q, want /api/generate", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(generateResponse{Response: "drafted text"})
	}))
	t.Cleanup(srv.Close)

	p := NewOllama(ollamaConfig(srv.URL))
	out, err := p.Generate(context.Background(), Request{System: "be helpful", User: "write a cv"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "drafted text" {
		t.Errorf("output = %q", out)
	}
	if got.Prompt != "be helpful\n\nwrite a cv" {
		t.Errorf("prompt = %q, want system and user joined by a blank line", got.Prompt)
	}
	if got.Model != "llama3.2:latest" {
		t.Errorf("model = %q", got.Model)
	}
	if got.Stream {
		t.Error("stream must be false")
	}
	if got.Options.Temperature != 0.4 {
		t.Errorf("temperature = %v, want 0.4", got.Options.Temperature)
	}
}

func TestOllamaGenerate_HTTPErrorIsProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `model "missing" not found`, http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	p := NewOllama(ollamaConfig(srv.URL))
	_, err := p.Generate(context.Background(), Request{User: "hi"})

	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ProviderError", err)
	}
	if perr.Status != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", perr.Status)
	}
	if perr.Provider != config.ProviderOllama {
		t.Errorf("Provider = %q", perr.Provider)
	}
}

func TestOllamaGenerate_UnreachableIsProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	p := NewOllama(ollamaConfig(srv.URL))
	_, err := p.Generate(context.Background(), Request{User: "hi"})

	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ProviderError", err)
	}
	if !strings.Contains(perr.Message, "reach") {
		t.Errorf("Message = %q, want a reachability hint", perr.Message)
	}
}

func TestOllamaGenerate_BodyErrorField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{Error: "out of memory"})
	}))
	t.Cleanup(srv.Close)

	p := NewOllama(ollamaConfig(srv.URL))
	_, err := p.Generate(context.Background(), Request{User: "hi"})

	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ProviderError", err)
	}
	if perr.Message != "out of memory" {
		t.Errorf("Message = %q", perr.Message)
	}
}

func TestOllamaListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("path = %q, want /api/tags", r.URL.Path)
		}
		w.Write([]byte(`{"models":[{"name":"llama3.2:latest"},{"name":"mistral:7b"}]}`))
	}))
	t.Cleanup(srv.Close)

	p := NewOllama(ollamaConfig(srv.URL))
	models, err := p.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels: %v", err)
	}
	if len(models) != 2 || models[0] != "llama3.2:latest" || models[1] != "mistral:7b" {
		t.Errorf("models = %v", models)
	}
}

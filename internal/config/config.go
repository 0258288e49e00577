package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Provider identifiers accepted in the config file and on --provider flags.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderOllama    = "ollama"
)

// Providers lists the known provider identifiers in display order.
var Providers = []string{ProviderAnthropic, ProviderOpenAI, ProviderOllama}

// Config is the root configuration for cvforge. One instance is loaded at
// startup and passed to components at construction; Save overwrites the
// file wholesale.
type Config struct {
	Provider    string          `yaml:"provider"`
	Anthropic   AnthropicConfig `yaml:"anthropic"`
	OpenAI      OpenAIConfig    `yaml:"openai"`
	Ollama      OllamaConfig    `yaml:"ollama"`
	MaxTokens   int             `yaml:"max_tokens"`
	Temperature float64         `yaml:"temperature"`
	ExportDir   string          `yaml:"export_dir"` // empty means current directory
}

// AnthropicConfig holds settings for the Anthropic backend.
type AnthropicConfig struct {
	APIKey string `yaml:"api_key"` // empty falls back to ANTHROPIC_API_KEY
	Model  string `yaml:"model"`
}

// OpenAIConfig holds settings for the OpenAI backend.
type OpenAIConfig struct {
	APIKey string `yaml:"api_key"` // empty falls back to OPENAI_API_KEY
	Model  string `yaml:"model"`
}

// OllamaConfig holds settings for the local Ollama runtime.
type OllamaConfig struct {
	URL   string `yaml:"url"`
	Model string `yaml:"model"`
}

// Default returns the configuration used when no file exists yet.
func Default() *Config {
	return &Config{
		Provider: ProviderAnthropic,
		Anthropic: AnthropicConfig{
			Model: "claude-sonnet-4-20250514",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4-turbo-preview",
		},
		Ollama: OllamaConfig{
			URL:   "http://localhost:11434",
			Model: "llama3.2:latest",
		},
		MaxTokens:   4000,
		Temperature: 0.7,
	}
}

// Dir returns the directory holding cvforge state files
// (config, profile, history, page cache).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cvforge"
	}
	return filepath.Join(home, ".config", "cvforge")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Load reads the YAML config at path. It never fails: a missing file yields
// defaults, and a corrupt file is moved aside to <path>.bak before defaults
// are returned, so the next Save starts clean. Missing keys keep their
// default values. Environment variable references in the file are expanded.
func Load(path string, logger *slog.Logger) *Config {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("config unreadable, using defaults", "path", path, "error", err)
		}
		return cfg
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		backup := path + ".bak"
		if renameErr := os.Rename(path, backup); renameErr != nil {
			logger.Warn("config corrupt and backup failed, using defaults", "path", path, "error", err)
		} else {
			logger.Warn("config corrupt, moved aside and using defaults", "path", path, "backup", backup, "error", err)
		}
		return Default()
	}

	cfg.normalize()
	return cfg
}

// Save writes cfg to path wholesale, creating parent directories as needed.
// The file is written via a temp file and rename, 0600 since it may carry
// API keys.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}

// normalize fills blanked-out values back in so a partially edited file
// still yields a usable configuration.
func (c *Config) normalize() {
	def := Default()
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	if c.Provider == "" {
		c.Provider = def.Provider
	}
	if c.Anthropic.Model == "" {
		c.Anthropic.Model = def.Anthropic.Model
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = def.OpenAI.Model
	}
	if c.Ollama.URL == "" {
		c.Ollama.URL = def.Ollama.URL
	}
	if c.Ollama.Model == "" {
		c.Ollama.Model = def.Ollama.Model
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = def.MaxTokens
	}
	if c.Temperature <= 0 {
		c.Temperature = def.Temperature
	}
}

// AnthropicKey returns the configured Anthropic key, falling back to the
// ANTHROPIC_API_KEY environment variable.
func (c *Config) AnthropicKey() string {
	if c.Anthropic.APIKey != "" {
		return c.Anthropic.APIKey
	}
	return os.Getenv("ANTHROPIC_API_KEY")
}

// OpenAIKey returns the configured OpenAI key, falling back to the
// OPENAI_API_KEY environment variable.
func (c *Config) OpenAIKey() string {
	if c.OpenAI.APIKey != "" {
		return c.OpenAI.APIKey
	}
	return os.Getenv("OPENAI_API_KEY")
}

// Validate checks the configuration for use with the selected provider.
// Load does not call this; it backs the check command and the config editor.
func Validate(cfg *Config) error {
	known := false
	for _, p := range Providers {
		if cfg.Provider == p {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("provider must be one of %s, got %q", strings.Join(Providers, ", "), cfg.Provider)
	}

	if cfg.MaxTokens < 1 || cfg.MaxTokens > 32768 {
		return fmt.Errorf("max_tokens must be between 1 and 32768, got %d", cfg.MaxTokens)
	}
	if cfg.Temperature < 0 || cfg.Temperature > 1 {
		return fmt.Errorf("temperature must be between 0 and 1, got %v", cfg.Temperature)
	}

	switch cfg.Provider {
	case ProviderAnthropic:
		if cfg.AnthropicKey() == "" {
			return fmt.Errorf("anthropic.api_key is required (or set ANTHROPIC_API_KEY)")
		}
	case ProviderOpenAI:
		if cfg.OpenAIKey() == "" {
			return fmt.Errorf("openai.api_key is required (or set OPENAI_API_KEY)")
		}
	case ProviderOllama:
		if cfg.Ollama.URL == "" {
			return fmt.Errorf("ollama.url is required")
		}
	}

	return nil
}

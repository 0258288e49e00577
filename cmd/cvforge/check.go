package main

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"cvforge/internal/ai"
	"cvforge/internal/config"
	"cvforge/internal/profile"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate configuration and provider access",
	Long:  "Checks that the config is usable with the selected provider. For Ollama this also verifies the server is reachable and the model is pulled.",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)
	cfg := loadConfig(logger)

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("config invalid: %w", err)
	}
	logger.Info("config valid",
		"path", configPath(),
		"provider", cfg.Provider,
		"export_dir", exportDir(cfg),
	)

	if cfg.Provider == config.ProviderOllama {
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		models, err := ai.NewOllama(cfg).ListModels(ctx)
		if err != nil {
			return fmt.Errorf("ollama unreachable at %s: %w", cfg.Ollama.URL, err)
		}
		logger.Info("ollama reachable", "url", cfg.Ollama.URL, "models", len(models))
		if !slices.Contains(models, cfg.Ollama.Model) {
			logger.Warn("configured model is not pulled", "model", cfg.Ollama.Model, "available", models)
		}
	}

	prof := profile.Load(profile.DefaultPath(), logger)
	if prof.Name == "" && prof.Experience == "" {
		logger.Warn("profile is empty, fill it in before generating", "path", profile.DefaultPath())
	} else {
		logger.Info("profile present", "name", prof.Name)
	}

	logger.Info("check complete")
	return nil
}

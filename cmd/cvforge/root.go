package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"cvforge/internal/ai"
	"cvforge/internal/config"
	"cvforge/internal/model"
	"cvforge/internal/pdf"
	"cvforge/internal/pipeline"
	"cvforge/internal/scrape"
	"cvforge/internal/ui"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "cvforge",
	Short: "Draft CVs and cover letters tailored to a job posting",
	Long:  "CVForge scrapes a job posting, drafts a tailored CV or cover letter with an AI provider, and exports it as PDF.",
	// Default to the interactive UI so that `cvforge` with no args opens the menu.
	RunE: runUI,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: CVFORGE_CONFIG env var or ~/.config/cvforge/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// configPath resolves the config file location.
// Priority: explicit flag > CVFORGE_CONFIG env var > default path.
func configPath() string {
	if cfgPath != "" {
		return cfgPath
	}
	if env := os.Getenv("CVFORGE_CONFIG"); env != "" {
		return env
	}
	return config.DefaultPath()
}

// loadConfig pulls in a .env file first so API key fallbacks and ${VAR}
// references in the config file resolve.
func loadConfig(logger *slog.Logger) *config.Config {
	_ = godotenv.Load()
	return config.Load(configPath(), logger)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

func historyPath() string {
	return filepath.Join(config.Dir(), "history.jsonl")
}

func exportDir(cfg *config.Config) string {
	if cfg.ExportDir != "" {
		return cfg.ExportDir
	}
	return "."
}

// newScraper builds the shared scraper. A broken page cache degrades to
// uncached scraping rather than blocking generation.
func newScraper(logger *slog.Logger) (*scrape.Scraper, func()) {
	cleanup := func() {}
	cache, err := scrape.NewPageCache(filepath.Join(config.Dir(), "cache.db"))
	if err != nil {
		logger.Warn("page cache unavailable, scraping without it", "error", err)
		cache = nil
	} else {
		if err := cache.Cleanup(7 * 24 * time.Hour); err != nil {
			logger.Warn("page cache cleanup failed", "error", err)
		}
		cleanup = func() { cache.Close() }
	}
	return scrape.New(cache, scrape.NewBrowserRenderer(logger), logger), cleanup
}

// newRunnerFactory lets the generate form switch providers per run without
// rebuilding the rest of the stack.
func newRunnerFactory(cfg *config.Config, scraper *scrape.Scraper, store model.HistoryStore, logger *slog.Logger) ui.RunnerFactory {
	return func(providerName string) (*pipeline.Runner, error) {
		runCfg := *cfg
		runCfg.Provider = providerName
		provider, err := ai.New(&runCfg)
		if err != nil {
			return nil, err
		}
		drafter := ai.NewDrafter(provider, logger)
		return pipeline.NewRunner(scraper, drafter, store, pdf.Export, logger), nil
	}
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"cvforge/internal/config"
	"cvforge/internal/history"
	"cvforge/internal/model"
	"cvforge/internal/profile"
	"cvforge/internal/scrape"
	"cvforge/internal/ui"
)

func runUI(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)
	cfg := loadConfig(logger)

	// Components running under the TUI get a discard logger; any log line
	// emitted while the alt screen is up corrupts the display.
	silent := slog.New(slog.NewTextHandler(io.Discard, nil))

	scraper, closeScraper := newScraper(silent)
	defer closeScraper()

	store := history.NewFileStore(historyPath(), silent)
	profPath := profile.DefaultPath()

	for {
		action, err := ui.RunMenu()
		if err != nil {
			return fmt.Errorf("menu: %w", err)
		}

		switch action {
		case ui.ActionQuit:
			return nil

		case ui.ActionGenerateCV:
			openGenerateForm(model.KindCV, cfg, scraper, store, profPath, silent)

		case ui.ActionGenerateCoverLetter:
			openGenerateForm(model.KindCoverLetter, cfg, scraper, store, profPath, silent)

		case ui.ActionEditProfile:
			prof := profile.Load(profPath, silent)
			updated, save, err := ui.RunProfileEditor(prof)
			if err != nil {
				fmt.Printf("Editor error: %v\n", err)
				continue
			}
			if save {
				if err := profile.Save(updated, profPath); err != nil {
					fmt.Printf("Saving profile: %v\n", err)
				}
			}

		case ui.ActionImportProfileURL:
			importProfileFromURL(profPath, silent)

		case ui.ActionImportProfilePDF:
			importProfileFromPDF(profPath, silent)

		case ui.ActionHistory:
			if err := ui.RunHistory(store, exportDir(cfg)); err != nil {
				fmt.Printf("History error: %v\n", err)
			}

		case ui.ActionSettings:
			updated, save, err := ui.RunSettings(cfg)
			if err != nil {
				fmt.Printf("Settings error: %v\n", err)
				continue
			}
			if save {
				if err := config.Save(updated, configPath()); err != nil {
					fmt.Printf("Saving config: %v\n", err)
				} else {
					cfg = updated
				}
			}
		}
	}
}

func openGenerateForm(kind model.DocKind, cfg *config.Config, scraper *scrape.Scraper, store model.HistoryStore, profPath string, logger *slog.Logger) {
	// Reload each time so profile edits made this session are picked up.
	prof := profile.Load(profPath, logger)
	session := ui.GenerateSession{
		Kind:      kind,
		Profile:   prof,
		Provider:  cfg.Provider,
		Providers: config.Providers,
		NewRunner: newRunnerFactory(cfg, scraper, store, logger),
		Scraper:   scraper,
		ExportDir: exportDir(cfg),
	}
	if err := ui.RunGenerateForm(session); err != nil {
		fmt.Printf("Generate error: %v\n", err)
	}
}

func importProfileFromURL(profPath string, logger *slog.Logger) {
	url, ok, err := ui.RunPrompt("Import profile from URL", "https://www.linkedin.com/in/...")
	if err != nil {
		fmt.Printf("Prompt error: %v\n", err)
		return
	}
	if !ok {
		return
	}

	importer := profile.NewImporter(logger)
	var imported model.Profile
	err = ui.RunSpinner("Importing profile", func(ctx context.Context) error {
		var impErr error
		imported, impErr = importer.ImportFromURL(ctx, url)
		return impErr
	})
	if err != nil {
		fmt.Printf("Import failed: %v\n", err)
		return
	}
	applyImport(imported, profPath, logger)
}

func importProfileFromPDF(profPath string, logger *slog.Logger) {
	path, ok, err := ui.RunPrompt("Import profile from resume PDF", "/path/to/resume.pdf")
	if err != nil {
		fmt.Printf("Prompt error: %v\n", err)
		return
	}
	if !ok {
		return
	}

	var imported model.Profile
	err = ui.RunSpinner("Reading resume", func(ctx context.Context) error {
		var impErr error
		imported, impErr = profile.ImportFromPDF(path)
		return impErr
	})
	if err != nil {
		fmt.Printf("Import failed: %v\n", err)
		return
	}
	applyImport(imported, profPath, logger)
}

// applyImport merges imported fields into the stored profile, never
// overwriting values the user already filled in.
func applyImport(imported model.Profile, profPath string, logger *slog.Logger) {
	cur := profile.Load(profPath, logger)
	merged := profile.Merge(cur, imported)
	if err := profile.Save(merged, profPath); err != nil {
		fmt.Printf("Saving profile: %v\n", err)
		return
	}
	fmt.Printf("Profile updated (name %q, role %q). Empty fields can be filled in the editor.\n",
		merged.Name, merged.JobRole)
}

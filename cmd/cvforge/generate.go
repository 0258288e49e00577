package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"cvforge/internal/ai"
	"cvforge/internal/history"
	"cvforge/internal/model"
	"cvforge/internal/pdf"
	"cvforge/internal/pipeline"
	"cvforge/internal/profile"
	"cvforge/internal/scrape"
)

var (
	genKind         string
	genJob          string
	genPDF          string
	genProvider     string
	genDryRun       bool
	genRole         string
	genSkills       string
	genCompany      string
	genPosition     string
	genAchievements string
	genMotivation   string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a CV or cover letter without the UI",
	Long:  "One-shot generation: reads the job posting from --job (URL, file path, or - for stdin), drafts with the configured provider, prints the result to stdout.",
	RunE:  runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVar(&genKind, "kind", "cv", "what to generate: cv or letter")
	generateCmd.Flags().StringVar(&genJob, "job", "", "job posting: URL, file path, or - for stdin")
	generateCmd.Flags().StringVar(&genPDF, "pdf", "", "also export the draft to this PDF path")
	generateCmd.Flags().StringVar(&genProvider, "provider", "", "override the configured provider for this run")
	generateCmd.Flags().BoolVar(&genDryRun, "dry-run", false, "do not record the draft in history")
	generateCmd.Flags().StringVar(&genRole, "role", "", "target role, overrides the profile value")
	generateCmd.Flags().StringVar(&genSkills, "skills", "", "skills to emphasize, overrides the profile value")
	generateCmd.Flags().StringVar(&genCompany, "company", "", "company name (cover letter)")
	generateCmd.Flags().StringVar(&genPosition, "position", "", "position title (cover letter)")
	generateCmd.Flags().StringVar(&genAchievements, "achievements", "", "achievements to highlight (cover letter)")
	generateCmd.Flags().StringVar(&genMotivation, "motivation", "", "why this company (cover letter)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)
	cfg := loadConfig(logger)
	if genProvider != "" {
		cfg.Provider = genProvider
	}

	var kind model.DocKind
	switch genKind {
	case "cv":
		kind = model.KindCV
	case "letter", "cover-letter":
		kind = model.KindCoverLetter
	default:
		return fmt.Errorf("unknown kind %q (want cv or letter)", genKind)
	}

	jobInput, err := resolveJobInput(genJob)
	if err != nil {
		return err
	}

	prof := profile.Load(profile.DefaultPath(), logger)
	if genRole != "" {
		prof.JobRole = genRole
	}
	if genSkills != "" {
		prof.Skills = genSkills
	}

	var store model.HistoryStore
	if genDryRun {
		logger.Info("dry-run mode enabled, draft will not be recorded")
		store = history.NewNopStore()
	} else {
		store = history.NewFileStore(historyPath(), logger)
	}

	scraper, closeScraper := newScraper(logger)
	defer closeScraper()

	provider, err := ai.New(cfg)
	if err != nil {
		return err
	}
	drafter := ai.NewDrafter(provider, logger)
	runner := pipeline.NewRunner(scraper, drafter, store, pdf.Export, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := runner.Run(ctx, pipeline.GenerateRequest{
		Kind:    kind,
		Profile: prof,
		Details: model.CoverLetterDetails{
			Company:      genCompany,
			Position:     genPosition,
			Achievements: genAchievements,
			Motivation:   genMotivation,
		},
		JobInput: jobInput,
		PDFPath:  genPDF,
	})
	if res == nil {
		return err
	}

	// Print the draft even when recording it failed; the text is the part
	// that must not be lost.
	fmt.Println(res.Record.Output)
	if res.Record.PDFPath != "" {
		logger.Info("exported pdf", "path", res.Record.PDFPath)
	}
	return err
}

// resolveJobInput turns the --job flag into pipeline input. URLs pass
// through for the scraper; anything else is read as a file, with - meaning
// stdin.
func resolveJobInput(arg string) (string, error) {
	switch {
	case arg == "":
		return "", fmt.Errorf("--job is required (URL, file path, or - for stdin)")
	case arg == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading job text from stdin: %w", err)
		}
		return string(data), nil
	}

	if url, ok := scrape.LooksLikeURL(arg); ok {
		return url, nil
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return "", fmt.Errorf("--job %q is neither a URL nor a readable file: %w", arg, err)
	}
	return string(data), nil
}

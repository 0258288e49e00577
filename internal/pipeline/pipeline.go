package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"cvforge/internal/ai"
	"cvforge/internal/extract"
	"cvforge/internal/model"
	"cvforge/internal/scrape"
)

// JobScraper resolves a URL or pasted description into job text.
type JobScraper interface {
	Scrape(ctx context.Context, input string) (*scrape.Result, error)
}

// ExportFunc writes a finished draft to a PDF at path.
type ExportFunc func(content, path string) error

// GenerateRequest describes one generation run.
type GenerateRequest struct {
	Kind    model.DocKind
	Profile model.Profile
	Details model.CoverLetterDetails // cover letters only

	// JobInput is a posting URL or pasted description. Empty means draft
	// from the profile alone.
	JobInput string

	// PDFPath, when set, exports the draft there after generation.
	PDFPath string
}

// GenerateResult is the outcome of a run.
type GenerateResult struct {
	Record model.GenerationRecord
	Fields extract.Fields
	Scrape *scrape.Result

	// ExportErr is set when the draft was generated and recorded but the
	// PDF could not be written.
	ExportErr error
}

// Runner owns the full generation pipeline for one document:
// resolve job text → extract fields → draft → export → record.
type Runner struct {
	scraper JobScraper
	drafter *ai.Drafter
	history model.HistoryStore
	export  ExportFunc
	logger  *slog.Logger
}

// NewRunner creates a runner wired with all its dependencies.
func NewRunner(
	scraper JobScraper,
	drafter *ai.Drafter,
	history model.HistoryStore,
	export ExportFunc,
	logger *slog.Logger,
) *Runner {
	return &Runner{
		scraper: scraper,
		drafter: drafter,
		history: history,
		export:  export,
		logger:  logger,
	}
}

// Run executes one generation. Scrape and draft failures abort before
// anything is persisted. An export failure does not: the record is still
// appended with an empty PDF path and the error is reported in the result.
// When appending to history fails, the result is returned alongside the
// error so the draft is not lost.
func (r *Runner) Run(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	result := &GenerateResult{}

	var jobText string
	if req.JobInput != "" {
		scraped, err := r.scraper.Scrape(ctx, req.JobInput)
		if err != nil {
			return nil, err
		}
		result.Scrape = scraped
		jobText = scraped.Text
		result.Fields = extract.Extract(jobText)
	}

	if req.Kind == model.KindCoverLetter {
		if req.Details.Company == "" {
			req.Details.Company = result.Fields.Company
		}
		if req.Details.Position == "" {
			req.Details.Position = result.Fields.Title
		}
	}

	var output string
	var err error
	switch req.Kind {
	case model.KindCoverLetter:
		output, err = r.drafter.DraftCoverLetter(ctx, req.Profile, req.Details, jobText)
	default:
		output, err = r.drafter.DraftCV(ctx, req.Profile, jobText)
	}
	if err != nil {
		return nil, err
	}

	provider := r.drafter.Provider()
	record := model.GenerationRecord{
		ID:        uuid.NewString(),
		Kind:      req.Kind,
		Provider:  provider.Name(),
		Model:     provider.Model(),
		Title:     recordTitle(req, result.Fields),
		Company:   recordCompany(req, result.Fields),
		JobText:   jobText,
		Output:    output,
		CreatedAt: time.Now().UTC(),
	}

	if req.PDFPath != "" {
		if exportErr := r.export(output, req.PDFPath); exportErr != nil {
			r.logger.Warn("pdf export failed, keeping draft", "path", req.PDFPath, "error", exportErr)
			result.ExportErr = exportErr
		} else {
			record.PDFPath = req.PDFPath
		}
	}

	result.Record = record
	if err := r.history.Append(record); err != nil {
		return result, fmt.Errorf("saving generation record: %w", err)
	}

	r.logger.Info("generated document",
		"kind", record.Kind,
		"provider", record.Provider,
		"model", record.Model,
		"chars", len(record.Output),
		"pdf", record.PDFPath,
	)
	return result, nil
}

func recordTitle(req GenerateRequest, fields extract.Fields) string {
	if req.Kind == model.KindCoverLetter {
		return req.Details.Position
	}
	if fields.Title != "" {
		return fields.Title
	}
	return req.Profile.JobRole
}

func recordCompany(req GenerateRequest, fields extract.Fields) string {
	if req.Kind == model.KindCoverLetter {
		return req.Details.Company
	}
	return fields.Company
}

package ai

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"cvforge/internal/model"
)

// Drafter renders the prompt templates and hands them to the active
// provider. One Drafter serves both document kinds.
type Drafter struct {
	provider Provider
	logger   *slog.Logger
}

// NewDrafter wires a drafter to the given provider.
func NewDrafter(provider Provider, logger *slog.Logger) *Drafter {
	return &Drafter{provider: provider, logger: logger}
}

// Provider exposes the backend this drafter generates with, for record
// keeping.
func (d *Drafter) Provider() Provider { return d.provider }

type cvPromptData struct {
	model.Profile
	JobText string
}

type coverLetterPromptData struct {
	Name         string
	Email        string
	Phone        string
	Company      string
	Position     string
	Achievements string
	Motivation   string
	JobText      string
}

// DraftCV generates a CV from the profile, tailored to jobText when one is
// given.
func (d *Drafter) DraftCV(ctx context.Context, p model.Profile, jobText string) (string, error) {
	if strings.TrimSpace(p.Name) == "" {
		return "", fmt.Errorf("name is required to draft a CV")
	}

	var buf bytes.Buffer
	if err := cvUserTemplate.Execute(&buf, cvPromptData{Profile: p, JobText: jobText}); err != nil {
		return "", fmt.Errorf("render cv prompt: %w", err)
	}

	d.logger.Info("drafting cv", "provider", d.provider.Name(), "model", d.provider.Model(), "prompt_bytes", buf.Len())
	out, err := d.provider.Generate(ctx, Request{System: cvSystemPrompt, User: buf.String()})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// DraftCoverLetter generates a cover letter for the given position.
func (d *Drafter) DraftCoverLetter(ctx context.Context, p model.Profile, details model.CoverLetterDetails, jobText string) (string, error) {
	if strings.TrimSpace(p.Name) == "" {
		return "", fmt.Errorf("name is required to draft a cover letter")
	}
	if strings.TrimSpace(details.Company) == "" || strings.TrimSpace(details.Position) == "" {
		return "", fmt.Errorf("company and position are required to draft a cover letter")
	}

	var buf bytes.Buffer
	data := coverLetterPromptData{
		Name:         p.Name,
		Email:        p.Email,
		Phone:        p.Phone,
		Company:      details.Company,
		Position:     details.Position,
		Achievements: details.Achievements,
		Motivation:   details.Motivation,
		JobText:      jobText,
	}
	if err := coverLetterUserTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render cover letter prompt: %w", err)
	}

	d.logger.Info("drafting cover letter", "provider", d.provider.Name(), "model", d.provider.Model(), "prompt_bytes", buf.Len())
	out, err := d.provider.Generate(ctx, Request{System: coverLetterSystemPrompt, User: buf.String()})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

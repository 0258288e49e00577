package ai

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"cvforge/internal/model"
)

// fakeProvider records the request it was handed and returns canned output.
type fakeProvider struct {
	got    Request
	output string
	err    error
}

func (f *fakeProvider) Name() string  { return "fake" }
func (f *fakeProvider) Model() string { return "fake-model" }

func (f *fakeProvider) Generate(_ context.Context, req Request) (string, error) {
	f.got = req
	return f.output, f.err
}

func testDrafter(p Provider) *Drafter {
	return NewDrafter(p, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testProfile() model.Profile {
	return model.Profile{
		Name:       "Ada Lovelace",
		Email:      "ada@example.com",
		Phone:      "+44 20 1234 5678",
		JobRole:    "Staff Engineer",
		Summary:    "Engineer with a focus on reliability.",
		Education:  "BSc Mathematics, University of London",
		Experience: "Analyst Engine Ltd, 2018-2025",
		Skills:     "Go, SQL",
	}
}

func TestDraftCV_RendersProfileIntoPrompt(t *testing.T) {
	fake := &fakeProvider{output: "  CV DRAFT  "}
	d := testDrafter(fake)

	out, err := d.DraftCV(context.Background(), testProfile(), "We need a Go engineer.")
	if err != nil {
		t.Fatalf("DraftCV: %v", err)
	}
	if out != "CV DRAFT" {
		t.Errorf("output = %q, want trimmed draft", out)
	}

	if fake.got.System != cvSystemPrompt {
		t.Error("system prompt should be the CV system prompt")
	}
	for _, want := range []string{
		"Name: Ada Lovelace",
		"Email: ada@example.com",
		"**Target Role:** Staff Engineer",
		"BSc Mathematics",
		"Job Description to tailor towards:",
		"We need a Go engineer.",
	} {
		if !strings.Contains(fake.got.User, want) {
			t.Errorf("user prompt missing %q", want)
		}
	}
}

func TestDraftCV_OmitsJobSectionWhenEmpty(t *testing.T) {
	fake := &fakeProvider{output: "draft"}
	d := testDrafter(fake)

	if _, err := d.DraftCV(context.Background(), testProfile(), ""); err != nil {
		t.Fatalf("DraftCV: %v", err)
	}
	if strings.Contains(fake.got.User, "Job Description to tailor towards") {
		t.Error("job section should be omitted without job text")
	}
}

func TestDraftCV_RequiresName(t *testing.T) {
	d := testDrafter(&fakeProvider{})
	_, err := d.DraftCV(context.Background(), model.Profile{Name: "   "}, "")
	if err == nil {
		t.Fatal("expected an error for missing name")
	}
	var perr *ProviderError
	if errors.As(err, &perr) {
		t.Error("missing input must not be a ProviderError")
	}
}

func TestDraftCoverLetter_RendersDetails(t *testing.T) {
	fake := &fakeProvider{output: "letter"}
	d := testDrafter(fake)

	details := model.CoverLetterDetails{
		Company:      "Acme",
		Position:     "Platform Engineer",
		Achievements: "Cut deploy time by 80%",
		Motivation:   "I admire the robots.",
	}
	out, err := d.DraftCoverLetter(context.Background(), testProfile(), details, "")
	if err != nil {
		t.Fatalf("DraftCoverLetter: %v", err)
	}
	if out != "letter" {
		t.Errorf("output = %q", out)
	}
	if fake.got.System != coverLetterSystemPrompt {
		t.Error("system prompt should be the cover letter system prompt")
	}
	if !strings.Contains(fake.got.User, "**Target Position:** Platform Engineer at Acme") {
		t.Errorf("user prompt missing target position line:\n%s", fake.got.User)
	}
	if !strings.Contains(fake.got.User, "Cut deploy time by 80%") {
		t.Error("user prompt missing achievements")
	}
}

func TestDraftCoverLetter_RequiresCompanyAndPosition(t *testing.T) {
	d := testDrafter(&fakeProvider{})
	_, err := d.DraftCoverLetter(context.Background(), testProfile(), model.CoverLetterDetails{Position: "Engineer"}, "")
	if err == nil {
		t.Fatal("expected an error for missing company")
	}
}

func TestDraft_ProviderErrorPassesThrough(t *testing.T) {
	wantErr := &ProviderError{Provider: "fake", Status: 429, Message: "quota exhausted"}
	d := testDrafter(&fakeProvider{err: wantErr})

	_, err := d.DraftCV(context.Background(), testProfile(), "")
	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ProviderError", err)
	}
	if perr.Status != 429 {
		t.Errorf("Status = %d, want 429", perr.Status)
	}
}

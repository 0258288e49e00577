package profile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleResume = `Jane Doe
Senior Platform Engineer
jane.doe@example.com | +49 170 1234567 | Berlin

Professional Summary:
Engineer with eight years of experience running cloud infrastructure.

Experience
Acme Corp, Staff Engineer (2021-2026)
Led the migration to Kubernetes.

Education
BSc Computer Science, Example University

Skills
Go, Kubernetes, Postgres, Terraform

Certifications
CKA`

func TestParseResumeText(t *testing.T) {
	p := ParseResumeText(sampleResume)

	if p.Name != "Jane Doe" {
		t.Errorf("expected name Jane Doe, got %q", p.Name)
	}
	if p.JobRole != "Senior Platform Engineer" {
		t.Errorf("expected role, got %q", p.JobRole)
	}
	if p.Email != "jane.doe@example.com" {
		t.Errorf("expected email, got %q", p.Email)
	}
	if p.Phone == "" {
		t.Error("expected phone to be extracted")
	}
	if !strings.Contains(p.Summary, "eight years") {
		t.Errorf("expected summary section, got %q", p.Summary)
	}
	if !strings.Contains(p.Experience, "Acme Corp") {
		t.Errorf("expected experience section, got %q", p.Experience)
	}
	if !strings.Contains(p.Education, "Example University") {
		t.Errorf("expected education section, got %q", p.Education)
	}
	if p.Skills != "Go, Kubernetes, Postgres, Terraform" {
		t.Errorf("expected skills line, got %q", p.Skills)
	}
	if p.Certifications != "CKA" {
		t.Errorf("expected certifications, got %q", p.Certifications)
	}
}

func TestParseResumeText_NoSections(t *testing.T) {
	p := ParseResumeText("John Smith\nBackend Developer\njohn@example.com")

	if p.Name != "John Smith" {
		t.Errorf("expected name, got %q", p.Name)
	}
	if p.JobRole != "Backend Developer" {
		t.Errorf("expected role, got %q", p.JobRole)
	}
	if p.Summary != "" || p.Experience != "" {
		t.Errorf("expected empty sections, got summary %q experience %q", p.Summary, p.Experience)
	}
}

func TestParseResumeText_ContactLineIsNotAName(t *testing.T) {
	p := ParseResumeText("jane.doe@example.com\nJane Doe\nEngineer")

	if p.Name != "Jane Doe" {
		t.Errorf("expected name on second line, got %q", p.Name)
	}
}

func TestImportFromPDF_MissingFile(t *testing.T) {
	if _, err := ImportFromPDF(filepath.Join(t.TempDir(), "absent.pdf")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestImportFromPDF_NotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.pdf")
	if err := os.WriteFile(path, []byte("plain text, not a pdf"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := ImportFromPDF(path); err == nil {
		t.Fatal("expected error for non-PDF content")
	}
}

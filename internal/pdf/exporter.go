package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"cvforge/internal/model"
)

// ExportError describes a failed PDF export.
type ExportError struct {
	Path  string
	Cause error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("exporting pdf to %s: %v", e.Path, e.Cause)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}

// Export writes content to an A4 PDF at path. Lines wrapped in ** render as
// bold section headers, everything else as body text. Other markdown
// markers pass through untouched.
func Export(content, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &ExportError{Path: path, Cause: err}
		}
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(true, 15)
	doc.AddPage()
	doc.SetFont("Helvetica", "", 11)

	// The core fonts are latin-1; translate so names with accents survive.
	tr := doc.UnicodeTranslatorFromDescriptor("")

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "**") && strings.HasSuffix(trimmed, "**") {
			doc.SetFont("Helvetica", "B", 12)
			doc.MultiCell(0, 6, tr(strings.Trim(trimmed, "* ")), "", "", false)
			doc.SetFont("Helvetica", "", 11)
			continue
		}
		doc.MultiCell(0, 5, tr(line), "", "", false)
	}

	if err := doc.OutputFileAndClose(path); err != nil {
		return &ExportError{Path: path, Cause: err}
	}
	return nil
}

// DefaultFilename builds the export filename for a document, e.g.
// CV_Jane_Doe_20260821_143000.pdf.
func DefaultFilename(kind model.DocKind, name string, now time.Time) string {
	base := "CV"
	if kind == model.KindCoverLetter {
		base = "Cover_Letter"
	}
	if strings.TrimSpace(name) == "" {
		name = "user"
	}
	name = strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
	return fmt.Sprintf("%s_%s_%s.pdf", base, name, now.Format("20060102_150405"))
}

package model

import "time"

// DocKind is the kind of document a generation run produces.
type DocKind string

const (
	KindCV          DocKind = "cv"
	KindCoverLetter DocKind = "cover_letter"
)

// Label returns the human-readable name shown in the UI and history view.
func (k DocKind) Label() string {
	if k == KindCoverLetter {
		return "Cover Letter"
	}
	return "CV"
}

// GenerationRecord is one persisted history entry for a generation run.
// Records are append-only; they are never mutated after creation.
type GenerationRecord struct {
	ID        string    `json:"id"`
	Kind      DocKind   `json:"kind"`
	Provider  string    `json:"provider"`
	Model     string    `json:"model"`
	Title     string    `json:"title,omitempty"`   // target role / position
	Company   string    `json:"company,omitempty"` // hiring company, when known
	JobText   string    `json:"job_text,omitempty"`
	Output    string    `json:"output"`
	PDFPath   string    `json:"pdf_path,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile holds the applicant details fed into every draft.
type Profile struct {
	Name           string `yaml:"name"`
	Email          string `yaml:"email"`
	Phone          string `yaml:"phone"`
	JobRole        string `yaml:"job_role"` // target role or industry
	Summary        string `yaml:"summary"`
	Education      string `yaml:"education"`
	Experience     string `yaml:"experience"`
	Skills         string `yaml:"skills"`
	Certifications string `yaml:"certifications"`
}

// CoverLetterDetails are the inputs a cover letter needs beyond the profile.
// Form-level state, never persisted.
type CoverLetterDetails struct {
	Company      string
	Position     string
	Achievements string
	Motivation   string
}

// HistoryStore persists generation records in insertion order.
type HistoryStore interface {
	Append(rec GenerationRecord) error
	List() ([]GenerationRecord, error)
	Clear() error
}

package profile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"

	"cvforge/internal/model"
)

// ImportFromPDF reads a resume PDF and maps its text onto a profile.
func ImportFromPDF(path string) (model.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Profile{}, fmt.Errorf("reading resume: %w", err)
	}

	text, err := pdfText(data)
	if err != nil {
		return model.Profile{}, fmt.Errorf("extracting text from %s: %w", path, err)
	}
	if strings.TrimSpace(text) == "" {
		return model.Profile{}, errors.New("resume contains no extractable text (scanned image?)")
	}

	return ParseResumeText(text), nil
}

func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Resume section headers mapped to profile fields. Matching is
// case-insensitive with a trailing colon ignored.
var resumeSections = map[string][]string{
	"summary":        {"summary", "professional summary", "about", "about me", "profile"},
	"education":      {"education"},
	"experience":     {"experience", "work experience", "professional experience", "employment", "employment history"},
	"skills":         {"skills", "technical skills", "core skills"},
	"certifications": {"certifications", "certificates", "licenses", "licenses & certifications"},
}

// ParseResumeText applies layout heuristics to plain resume text: contact
// details by regex, name and role from the top lines, section bodies by
// their headers. Anything it cannot place stays empty.
func ParseResumeText(text string) model.Profile {
	var p model.Profile

	if m := emailRe.FindString(text); m != "" {
		p.Email = m
	}
	if m := phoneRe.FindString(text); m != "" {
		p.Phone = strings.TrimSpace(m)
	}

	lines := nonEmptyLines(text)
	p.Name, p.JobRole = nameAndRole(lines)

	sections := splitSections(lines)
	p.Summary = strings.Join(sections["summary"], "\n")
	p.Education = strings.Join(sections["education"], "\n")
	p.Experience = strings.Join(sections["experience"], "\n")
	p.Skills = strings.Join(sections["skills"], "\n")
	p.Certifications = strings.Join(sections["certifications"], "\n")

	return p
}

// nameAndRole looks at the first few lines for a short personal name and,
// right after it, a short role line. Lines with digits or an @ are contact
// rows, not names.
func nameAndRole(lines []string) (name, role string) {
	limit := len(lines)
	if limit > 5 {
		limit = 5
	}
	for i := 0; i < limit; i++ {
		line := lines[i]
		if !looksLikeName(line) {
			continue
		}
		name = line
		if i+1 < len(lines) {
			next := lines[i+1]
			if _, isHeader := sectionFor(next); !isHeader && len(next) < 60 &&
				!strings.ContainsAny(next, "@0123456789") {
				role = next
			}
		}
		return name, role
	}
	return "", ""
}

func looksLikeName(line string) bool {
	if len(line) >= 60 || strings.ContainsRune(line, '@') {
		return false
	}
	for _, r := range line {
		if unicode.IsDigit(r) {
			return false
		}
	}
	words := len(strings.Fields(line))
	return words >= 2 && words <= 4
}

func splitSections(lines []string) map[string][]string {
	sections := make(map[string][]string)
	current := ""
	for _, line := range lines {
		if key, ok := sectionFor(line); ok {
			current = key
			continue
		}
		if current != "" {
			sections[current] = append(sections[current], line)
		}
	}
	return sections
}

func sectionFor(line string) (string, bool) {
	norm := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(line), ":"))
	for key, aliases := range resumeSections {
		for _, alias := range aliases {
			if norm == alias {
				return key, true
			}
		}
	}
	return "", false
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

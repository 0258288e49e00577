package extract

import (
	"strings"
	"unicode/utf8"
)

// Fields holds the structured pieces recoverable from raw job-description
// text. Extraction is best-effort: fields that cannot be found stay empty,
// never guessed.
type Fields struct {
	Title        string
	Company      string
	Requirements []string
	Raw          string
}

// minInputLen keeps fragments like a bare URL or a couple of words from
// producing bogus fields.
const minInputLen = 30

// requirementWindow bounds how far past a section keyword requirement lines
// are collected.
const requirementWindow = 500

var titleKeywords = []string{"position:", "role:", "title:", "job title:"}

var requirementKeywords = []string{
	"required skills:",
	"skills:",
	"requirements:",
	"qualifications:",
	"technical skills:",
	"must have:",
}

// Extract derives Fields from unstructured job-description text. It always
// succeeds; inputs too short to carry structure yield only Raw.
func Extract(text string) Fields {
	f := Fields{Raw: text}
	if len(strings.TrimSpace(text)) < minInputLen {
		return f
	}

	lines := strings.Split(text, "\n")
	f.Company = findCompany(lines)
	f.Title = findTitle(lines)
	f.Requirements = findRequirements(text)
	return f
}

// findCompany scans the first ten lines for an explicit "company:" label,
// then for short "<role> at <company>" phrasings.
func findCompany(lines []string) string {
	for _, line := range head(lines, 10) {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "company:") {
			_, after, _ := strings.Cut(line, ":")
			return strings.TrimSpace(after)
		}
		if strings.Contains(lower, " at ") && len(strings.Fields(line)) < 10 {
			if _, after, ok := strings.Cut(line, " at "); ok {
				return strings.TrimSpace(after)
			}
		}
	}
	return ""
}

// findTitle scans the first five lines for a labeled title, falling back to
// the first short standalone line that is not a link.
func findTitle(lines []string) string {
	for _, line := range head(lines, 5) {
		lower := strings.ToLower(line)
		for _, kw := range titleKeywords {
			if strings.Contains(lower, kw) {
				if _, after, ok := strings.Cut(line, ":"); ok {
					return strings.TrimSpace(after)
				}
				return strings.TrimSpace(line)
			}
		}
		if len(strings.Fields(line)) <= 6 && len(line) > 10 &&
			!strings.HasPrefix(line, "http") && !strings.HasPrefix(line, "www") {
			return strings.TrimSpace(line)
		}
	}
	return ""
}

// findRequirements locates the first requirements-style section heading and
// collects up to seven following lines from a bounded window.
func findRequirements(text string) []string {
	lower := strings.ToLower(text)
	for _, kw := range requirementKeywords {
		idx := strings.Index(lower, kw)
		if idx < 0 {
			continue
		}

		end := idx + requirementWindow
		if end > len(text) {
			end = len(text)
		}
		for end < len(text) && !utf8.RuneStart(text[end]) {
			end++
		}

		sectionLines := strings.Split(text[idx:end], "\n")
		if len(sectionLines) > 8 {
			sectionLines = sectionLines[:8]
		}
		if len(sectionLines) <= 1 {
			return nil
		}

		var reqs []string
		for _, ln := range sectionLines[1:] {
			if t := strings.TrimSpace(ln); t != "" {
				reqs = append(reqs, t)
			}
		}
		return reqs
	}
	return nil
}

func head(lines []string, n int) []string {
	if len(lines) > n {
		return lines[:n]
	}
	return lines
}

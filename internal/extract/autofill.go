package extract

import "strings"

// FormValues are the form fields autofill is allowed to touch.
type FormValues struct {
	JobRole  string
	Company  string
	Position string
	Skills   string
}

// SkillsSeparator precedes extracted requirements when the skills field
// already has content, so hand-written skills stay distinguishable.
const SkillsSeparator = "--- Extracted from Job Description ---"

// Merge fills the empty fields of cur from f. Values the user already
// entered are never overwritten; extracted requirements append below a
// separator instead of replacing existing skills.
func Merge(cur FormValues, f Fields) FormValues {
	if cur.JobRole == "" {
		cur.JobRole = f.Title
	}
	if cur.Company == "" {
		cur.Company = f.Company
	}
	if cur.Position == "" {
		cur.Position = f.Title
	}
	if len(f.Requirements) > 0 {
		block := strings.Join(f.Requirements, "\n")
		if cur.Skills == "" {
			cur.Skills = block
		} else {
			cur.Skills = cur.Skills + "\n\n" + SkillsSeparator + "\n" + block
		}
	}
	return cur
}

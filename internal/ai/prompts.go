package ai

import (
	_ "embed"
	"text/template"
)

//go:embed prompts/cv_system.md
var cvSystemPrompt string

//go:embed prompts/cover_letter_system.md
var coverLetterSystemPrompt string

//go:embed prompts/cv_user.md
var cvUserPromptRaw string

//go:embed prompts/cover_letter_user.md
var coverLetterUserPromptRaw string

// User prompt templates are parsed once at package init and reused on
// every draft.
var (
	cvUserTemplate          = template.Must(template.New("cv_user").Parse(cvUserPromptRaw))
	coverLetterUserTemplate = template.Must(template.New("cover_letter_user").Parse(coverLetterUserPromptRaw))
)

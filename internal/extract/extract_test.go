package extract

import (
	"reflect"
	"strings"
	"testing"
)

const sampleJobText = `Senior Backend Engineer
Company: Acme Robotics
Location: Remote

We build fleet control software for warehouse robots.

Requirements:
- 5+ years with Go or similar
- Experience with PostgreSQL
- Comfort with distributed systems`

func TestExtract_EmptyInput(t *testing.T) {
	f := Extract("")
	if f.Title != "" || f.Company != "" || len(f.Requirements) != 0 {
		t.Errorf("Extract(\"\") = %+v, want all-empty fields", f)
	}
	if f.Raw != "" {
		t.Errorf("Raw = %q, want empty", f.Raw)
	}
}

func TestExtract_ShortInputYieldsOnlyRaw(t *testing.T) {
	f := Extract("Go developer at Acme")
	if f.Title != "" || f.Company != "" || len(f.Requirements) != 0 {
		t.Errorf("short input produced fields: %+v", f)
	}
	if f.Raw != "Go developer at Acme" {
		t.Errorf("Raw = %q", f.Raw)
	}
}

func TestExtract_FullPosting(t *testing.T) {
	f := Extract(sampleJobText)

	if f.Title != "Senior Backend Engineer" {
		t.Errorf("Title = %q, want first standalone line", f.Title)
	}
	if f.Company != "Acme Robotics" {
		t.Errorf("Company = %q, want labeled value", f.Company)
	}
	want := []string{
		"- 5+ years with Go or similar",
		"- Experience with PostgreSQL",
		"- Comfort with distributed systems",
	}
	if !reflect.DeepEqual(f.Requirements, want) {
		t.Errorf("Requirements = %q, want %q", f.Requirements, want)
	}
	if f.Raw != sampleJobText {
		t.Error("Raw should carry the input unchanged")
	}
}

func TestExtract_TitleFromLabel(t *testing.T) {
	text := "We are growing our platform team this year\nPosition: Staff Platform Engineer\n" + strings.Repeat("x ", 30)
	f := Extract(text)
	if f.Title != "Staff Platform Engineer" {
		t.Errorf("Title = %q, want labeled position", f.Title)
	}
}

func TestExtract_CompanyFromAtPhrase(t *testing.T) {
	text := "Backend Engineer at CloudWorks\n\nWe are hiring for our core infrastructure team in Berlin."
	f := Extract(text)
	if f.Company != "CloudWorks" {
		t.Errorf("Company = %q, want phrase after \" at \"", f.Company)
	}
}

func TestExtract_LinkLineIsNotATitle(t *testing.T) {
	text := "https://jobs.example.com/posting/123\nGo Engineer\n" + strings.Repeat("details ", 10)
	f := Extract(text)
	if f.Title != "Go Engineer" {
		t.Errorf("Title = %q, want the line after the URL", f.Title)
	}
}

func TestExtract_RequirementsWindowIsBounded(t *testing.T) {
	long := "Skills:\n" + strings.Repeat("very long requirement line with padding words\n", 40)
	f := Extract(long)
	if len(f.Requirements) == 0 {
		t.Fatal("expected some requirements")
	}
	if len(f.Requirements) > 7 {
		t.Errorf("Requirements = %d lines, want at most 7", len(f.Requirements))
	}
}

func TestMerge_FillsOnlyEmptyFields(t *testing.T) {
	f := Fields{Title: "Data Engineer", Company: "Initech", Requirements: []string{"SQL", "Python"}}

	got := Merge(FormValues{JobRole: "Platform Engineer"}, f)
	if got.JobRole != "Platform Engineer" {
		t.Errorf("JobRole = %q, existing value must win", got.JobRole)
	}
	if got.Company != "Initech" {
		t.Errorf("Company = %q, want filled", got.Company)
	}
	if got.Position != "Data Engineer" {
		t.Errorf("Position = %q, want filled from title", got.Position)
	}
	if got.Skills != "SQL\nPython" {
		t.Errorf("Skills = %q, want extracted block", got.Skills)
	}
}

func TestMerge_AppendsSkillsUnderSeparator(t *testing.T) {
	f := Fields{Requirements: []string{"Kubernetes"}}
	got := Merge(FormValues{Skills: "Go, gRPC"}, f)

	if !strings.HasPrefix(got.Skills, "Go, gRPC") {
		t.Errorf("Skills = %q, existing skills must stay first", got.Skills)
	}
	if !strings.Contains(got.Skills, SkillsSeparator) {
		t.Errorf("Skills = %q, want separator line", got.Skills)
	}
	if !strings.HasSuffix(got.Skills, "Kubernetes") {
		t.Errorf("Skills = %q, want extracted lines appended", got.Skills)
	}
}

func TestMerge_NoRequirementsLeavesSkillsAlone(t *testing.T) {
	got := Merge(FormValues{Skills: "Go"}, Fields{})
	if got.Skills != "Go" {
		t.Errorf("Skills = %q, want untouched", got.Skills)
	}
}

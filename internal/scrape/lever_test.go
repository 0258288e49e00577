package scrape

import (
	"strings"
	"testing"
)

const leverJobPage = `<html><body>
<div class="posting-headline"><h2>Infrastructure Engineer</h2></div>
<div class="posting-page">
  <div class="section-wrapper"><p>Acme runs its own cloud.</p><p>You will own our Kubernetes platform.</p></div>
  <div class="lever-application-form">Apply for this job</div>
</div>
</body></html>`

func TestLeverExtract_Posting(t *testing.T) {
	doc := parseDoc(t, leverJobPage)
	u := mustParseURL(t, "https://jobs.lever.co/acme/4f2a8b")

	text, err := leverExtractor{}.extract(doc, u)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(text, "\n")
	if lines[0] != "Infrastructure Engineer" {
		t.Errorf("expected first line Infrastructure Engineer, got %q", lines[0])
	}
	if lines[1] != "Company: acme" {
		t.Errorf("expected company from URL path, got %q", lines[1])
	}
	if !strings.Contains(text, "Kubernetes platform") {
		t.Errorf("expected posting body, got:\n%s", text)
	}
	if strings.Contains(text, "Apply for this job") {
		t.Errorf("expected application form to be stripped, got:\n%s", text)
	}
}

func TestLeverExtract_NoContent(t *testing.T) {
	doc := parseDoc(t, `<html><body><div class="posting-headline"><h2>Ghost Role</h2></div></body></html>`)
	u := mustParseURL(t, "https://jobs.lever.co/acme/gone")

	if _, err := (leverExtractor{}).extract(doc, u); err == nil {
		t.Fatal("expected error when posting body is missing")
	}
}

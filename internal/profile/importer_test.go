package profile

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func parseDoc(t *testing.T, markup string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	return doc
}

const portfolioPage = `<html><head>
<title>Jane Doe | Portfolio</title>
<meta name="description" content="Platform engineer who builds developer tooling in Go.">
</head><body>
<nav>Home About Contact</nav>
<h1>Jane Doe</h1>
<p>I design and run distributed systems.</p>
<p>Reach me at jane.doe@example.com or +49 170 1234567.</p>
<footer>Imprint</footer>
</body></html>`

func TestImportFromURL_GenericPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(portfolioPage))
	}))
	defer srv.Close()

	im := NewImporter(testLogger())
	p, err := im.ImportFromURL(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Name != "Jane Doe" {
		t.Errorf("expected name Jane Doe, got %q", p.Name)
	}
	if p.Email != "jane.doe@example.com" {
		t.Errorf("expected email, got %q", p.Email)
	}
	if p.Phone == "" {
		t.Error("expected phone to be extracted")
	}
	if p.JobRole != "Platform engineer who builds developer tooling in Go." {
		t.Errorf("expected headline from meta description, got %q", p.JobRole)
	}
	if !strings.Contains(p.Summary, "distributed systems") {
		t.Errorf("expected summary from body text, got %q", p.Summary)
	}
	if strings.Contains(p.Summary, "Home About Contact") {
		t.Errorf("expected nav to be stripped from summary, got %q", p.Summary)
	}
}

func TestImportFromURL_RejectsNonURL(t *testing.T) {
	im := NewImporter(testLogger())

	if _, err := im.ImportFromURL(context.Background(), "not a url"); err == nil {
		t.Fatal("expected error for invalid URL")
	}
}

func TestImportFromURL_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	im := NewImporter(testLogger())
	_, err := im.ImportFromURL(context.Background(), srv.URL)
	if err == nil || !strings.Contains(err.Error(), "403") {
		t.Fatalf("expected HTTP 403 error, got %v", err)
	}
}

func TestGenericProfile_TitleFallbackWhenH1Long(t *testing.T) {
	page := `<html><head><title>John Smith - Engineer</title></head><body>
<h1>Welcome to the personal homepage of an engineer who writes very long headings</h1>
<p>Body text.</p>
</body></html>`

	p := genericProfile(parseDoc(t, page))
	if p.Name != "John Smith" {
		t.Errorf("expected name from title, got %q", p.Name)
	}
}

func TestLinkedinProfile_Metadata(t *testing.T) {
	page := `<html><head>
<title>Jane Doe - Platform Engineer - Acme | LinkedIn</title>
<meta name="description" content="Platform Engineer at Acme">
</head><body>
<p>Jane studied at Example University.</p>
<p>Bachelor of Science, Computer Science</p>
</body></html>`

	p, err := linkedinProfile(parseDoc(t, page))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Name != "Jane Doe" {
		t.Errorf("expected name Jane Doe, got %q", p.Name)
	}
	if p.JobRole != "Platform Engineer at Acme" {
		t.Errorf("expected headline, got %q", p.JobRole)
	}
	if !strings.Contains(p.Education, "Example University") {
		t.Errorf("expected education line, got %q", p.Education)
	}
	if !strings.Contains(p.Education, "Bachelor of Science") {
		t.Errorf("expected degree line, got %q", p.Education)
	}
}

func TestLinkedinProfile_JSONLDOverridesTitle(t *testing.T) {
	page := `<html><head>
<title>LinkedIn Member | LinkedIn</title>
<meta name="description" content="Engineer profile">
<script type="application/ld+json">{"@type":"Person","name":"Jane Doe","jobTitle":"Staff Engineer"}</script>
</head><body><p>profile</p></body></html>`

	p, err := linkedinProfile(parseDoc(t, page))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "Jane Doe" {
		t.Errorf("expected JSON-LD name, got %q", p.Name)
	}
	if p.JobRole != "Staff Engineer" {
		t.Errorf("expected JSON-LD job title, got %q", p.JobRole)
	}
}

func TestLinkedinProfile_BlockedPage(t *testing.T) {
	page := `<html><head></head><body><p>Sign in to continue</p></body></html>`

	_, err := linkedinProfile(parseDoc(t, page))
	if err == nil {
		t.Fatal("expected error for blocked page")
	}
	if !strings.Contains(err.Error(), "blocked") {
		t.Errorf("expected blocked hint, got %v", err)
	}
}

package scrape

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScrape_PastedText(t *testing.T) {
	s := New(nil, nil, testLogger())

	input := "Senior Go Engineer\nCompany: Acme\n\nWe build infrastructure tooling."
	res, err := s.Scrape(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Site != "text" {
		t.Errorf("expected site text, got %q", res.Site)
	}
	want := "Senior Go Engineer\nCompany: Acme\nWe build infrastructure tooling."
	if res.Text != want {
		t.Errorf("expected passthrough text %q, got %q", want, res.Text)
	}
	if res.URL != "" || res.FromCache {
		t.Errorf("pasted text should have no URL and no cache flag, got %+v", res)
	}
}

func TestScrape_EmptyInput(t *testing.T) {
	s := New(nil, nil, testLogger())

	_, err := s.Scrape(context.Background(), "   \n ")
	var serr *Error
	if !errors.As(err, &serr) {
		t.Fatalf("expected *Error, got %v", err)
	}
}

func TestScrape_GenericPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); !strings.Contains(got, "Chrome") {
			t.Errorf("expected browser user agent, got %q", got)
		}
		w.Write([]byte(genericJobPage))
	}))
	defer srv.Close()

	s := New(nil, nil, testLogger())
	res, err := s.Scrape(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Site != "generic" {
		t.Errorf("expected site generic, got %q", res.Site)
	}
	if res.URL != srv.URL {
		t.Errorf("expected URL %q, got %q", srv.URL, res.URL)
	}
	if !strings.Contains(res.Text, "Data Engineer") {
		t.Errorf("expected posting text, got:\n%s", res.Text)
	}
	if res.FromCache {
		t.Error("fresh scrape should not be marked as cached")
	}
}

func TestScrape_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	s := New(nil, nil, testLogger())
	_, err := s.Scrape(context.Background(), srv.URL)

	var serr *Error
	if !errors.As(err, &serr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if serr.URL != srv.URL {
		t.Errorf("expected error URL %q, got %q", srv.URL, serr.URL)
	}
	if !strings.Contains(serr.Message, "404") {
		t.Errorf("expected status in message, got %q", serr.Message)
	}
}

func TestScrape_NoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><script>x()</script></body></html>`))
	}))
	defer srv.Close()

	s := New(nil, nil, testLogger())
	_, err := s.Scrape(context.Background(), srv.URL)

	var serr *Error
	if !errors.As(err, &serr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if !strings.Contains(serr.Message, "no job text") {
		t.Errorf("unexpected message %q", serr.Message)
	}
}

func TestScrape_CacheHit(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(genericJobPage))
	}))
	defer srv.Close()

	cache, err := NewPageCache(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("NewPageCache: %v", err)
	}
	t.Cleanup(func() { cache.Close() })

	s := New(cache, nil, testLogger())

	first, err := s.Scrape(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("first scrape: %v", err)
	}
	if first.FromCache {
		t.Error("first scrape should not come from cache")
	}

	second, err := s.Scrape(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("second scrape: %v", err)
	}
	if !second.FromCache {
		t.Error("second scrape should come from cache")
	}
	if second.Text != first.Text {
		t.Errorf("cached text differs: %q vs %q", second.Text, first.Text)
	}
	if second.Site != "generic" {
		t.Errorf("expected cached site generic, got %q", second.Site)
	}
	if hits != 1 {
		t.Errorf("expected exactly one network fetch, got %d", hits)
	}
}

type fakeRenderer struct {
	markup string
	err    error
	calls  int
}

func (f *fakeRenderer) Render(ctx context.Context, pageURL string) (string, error) {
	f.calls++
	return f.markup, f.err
}

func TestScrape_BrowserFallbackOnThinPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><main>Loading...</main></body></html>`))
	}))
	defer srv.Close()

	renderer := &fakeRenderer{markup: genericJobPage}
	s := New(nil, renderer, testLogger())

	res, err := s.Scrape(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if renderer.calls != 1 {
		t.Errorf("expected one render call, got %d", renderer.calls)
	}
	if !strings.Contains(res.Text, "Data Engineer") {
		t.Errorf("expected rendered content, got:\n%s", res.Text)
	}
}

func TestScrape_BrowserFailureKeepsStaticText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><main>Loading...</main></body></html>`))
	}))
	defer srv.Close()

	renderer := &fakeRenderer{err: errors.New("chrome not installed")}
	s := New(nil, renderer, testLogger())

	res, err := s.Scrape(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Text != "Loading..." {
		t.Errorf("expected static text to survive render failure, got %q", res.Text)
	}
}

func TestParseJobURL(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"https://boards.greenhouse.io/acme/jobs/1", true},
		{"http://example.com/job", true},
		{"ftp://example.com/job", false},
		{"www.example.com/job", false},
		{"We are hiring a Go engineer", false},
		{"https://example.com extra words", false},
	}
	for _, tt := range tests {
		if _, got := parseJobURL(tt.input); got != tt.want {
			t.Errorf("parseJobURL(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

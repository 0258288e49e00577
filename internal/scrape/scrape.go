package scrape

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const (
	fetchTimeout = 30 * time.Second

	// maxBodyBytes caps how much of a response is read; job postings are
	// small and a runaway page should not exhaust memory.
	maxBodyBytes = 5 << 20

	// minContentLength is the rune count below which a statically fetched
	// page is assumed to build its content with JavaScript and is retried
	// through the headless browser.
	minContentLength = 500

	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	acceptLanguage = "en-US,en;q=0.9"
)

// Error describes a failed scrape attempt.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("scrape: %s", e.Message)
	}
	return fmt.Sprintf("scrape %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Result holds the text pulled out of a job posting.
type Result struct {
	URL       string
	Site      string
	Text      string
	FromCache bool
}

// Renderer loads a page after JavaScript execution. Implemented by
// BrowserRenderer; a nil Renderer disables the fallback.
type Renderer interface {
	Render(ctx context.Context, pageURL string) (string, error)
}

// Scraper fetches job postings and extracts their text. URLs are routed to
// a site-specific extractor when the host is recognized, otherwise to the
// generic one. Non-URL input is treated as pasted job text and passed
// through untouched.
type Scraper struct {
	httpClient *http.Client
	cache      *PageCache
	renderer   Renderer
	limiter    *hostLimiter
	extractors []siteExtractor
	logger     *slog.Logger
}

// New creates a Scraper. cache and renderer may be nil; the scraper then
// always fetches over the network and never falls back to a browser.
func New(cache *PageCache, renderer Renderer, logger *slog.Logger) *Scraper {
	return &Scraper{
		httpClient: &http.Client{Timeout: fetchTimeout},
		cache:      cache,
		renderer:   renderer,
		limiter:    newHostLimiter(),
		extractors: defaultExtractors(),
		logger:     logger,
	}
}

// Scrape resolves input into job text. Input that does not look like an
// http(s) URL is returned as-is with Site set to "text".
func (s *Scraper) Scrape(ctx context.Context, input string) (*Result, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, &Error{Message: "empty input"}
	}

	u, ok := parseJobURL(input)
	if !ok {
		return &Result{Site: "text", Text: cleanLines(input)}, nil
	}

	if s.cache != nil {
		text, site, hit, err := s.cache.Get(input, DefaultCacheTTL)
		if err != nil {
			s.logger.Warn("page cache lookup failed", "url", input, "error", err)
		} else if hit {
			s.logger.Debug("serving page from cache", "url", input, "site", site)
			return &Result{URL: input, Site: site, Text: text, FromCache: true}, nil
		}
	}

	if err := s.limiter.wait(ctx, u.Host); err != nil {
		return nil, &Error{URL: input, Message: "rate limit wait interrupted", Cause: err}
	}

	body, err := s.fetch(ctx, input)
	if err != nil {
		return nil, err
	}

	ex := s.extractorFor(u.Host)
	text, err := s.extractWithFallback(ctx, ex, body, input, u)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Put(input, ex.name(), text); err != nil {
			s.logger.Warn("page cache write failed", "url", input, "error", err)
		}
	}

	s.logger.Info("scraped job posting", "url", input, "site", ex.name(), "chars", len(text))
	return &Result{URL: input, Site: ex.name(), Text: text}, nil
}

func (s *Scraper) fetch(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", &Error{URL: pageURL, Message: "building request", Cause: err}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", acceptLanguage)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", &Error{URL: pageURL, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &Error{URL: pageURL, Message: fmt.Sprintf("server returned HTTP %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", &Error{URL: pageURL, Message: "reading response body", Cause: err}
	}
	return string(body), nil
}

// extractWithFallback runs the extractor on the fetched markup and, when the
// result is suspiciously short, retries once with a browser-rendered copy of
// the page.
func (s *Scraper) extractWithFallback(ctx context.Context, ex siteExtractor, body, pageURL string, u *url.URL) (string, error) {
	text, extractErr := parseAndExtract(ex, body, u)

	short := extractErr == nil && utf8.RuneCountInString(text) < minContentLength
	if s.renderer != nil && (extractErr != nil || short) {
		s.logger.Debug("static fetch too thin, rendering in browser", "url", pageURL, "site", ex.name())
		rendered, rerr := s.renderer.Render(ctx, pageURL)
		if rerr != nil {
			s.logger.Warn("browser render failed", "url", pageURL, "error", rerr)
		} else if rtext, rexerr := parseAndExtract(ex, rendered, u); rexerr == nil &&
			utf8.RuneCountInString(rtext) > utf8.RuneCountInString(text) {
			text, extractErr = rtext, nil
		}
	}

	if extractErr != nil {
		return "", &Error{URL: pageURL, Message: "no job text found", Cause: extractErr}
	}
	return text, nil
}

func (s *Scraper) extractorFor(host string) siteExtractor {
	for _, ex := range s.extractors {
		if ex.match(host) {
			return ex
		}
	}
	return genericExtractor{}
}

func parseAndExtract(ex siteExtractor, markup string, u *url.URL) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", fmt.Errorf("parsing page: %w", err)
	}
	return ex.extract(doc, u)
}

// LooksLikeURL reports whether input would be fetched rather than treated
// as pasted job text, returning the trimmed URL when it would.
func LooksLikeURL(input string) (string, bool) {
	u, ok := parseJobURL(strings.TrimSpace(input))
	if !ok {
		return "", false
	}
	return u.String(), true
}

// parseJobURL reports whether input is a single http(s) URL rather than
// pasted job text.
func parseJobURL(input string) (*url.URL, bool) {
	if strings.ContainsAny(input, " \t\n") {
		return nil, false
	}
	u, err := url.Parse(input)
	if err != nil || u.Host == "" {
		return nil, false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, false
	}
	return u, true
}

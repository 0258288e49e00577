package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"cvforge/internal/model"
)

const (
	importTimeout  = 15 * time.Second
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	acceptLanguage = "en-US,en;q=0.9"
)

var (
	emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRe = regexp.MustCompile(`[\+\(]?[1-9][0-9 .\-\(\)]{8,}[0-9]`)
)

// Importer fills a profile from public web pages. LinkedIn gets its own
// best-effort path; everything else (portfolio sites, about pages) goes
// through the generic heuristics.
type Importer struct {
	httpClient *http.Client
	logger     *slog.Logger
}

func NewImporter(logger *slog.Logger) *Importer {
	return &Importer{
		httpClient: &http.Client{Timeout: importTimeout},
		logger:     logger,
	}
}

// ImportFromURL scrapes rawURL and maps what it finds onto a profile.
// Fields it cannot find stay empty; merge with the current profile is up
// to the caller.
func (im *Importer) ImportFromURL(ctx context.Context, rawURL string) (model.Profile, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return model.Profile{}, fmt.Errorf("not a valid http(s) URL: %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return model.Profile{}, fmt.Errorf("building profile request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", acceptLanguage)

	resp, err := im.httpClient.Do(req)
	if err != nil {
		return model.Profile{}, fmt.Errorf("fetching profile page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.Profile{}, fmt.Errorf("profile page returned HTTP %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return model.Profile{}, fmt.Errorf("parsing profile page: %w", err)
	}

	if strings.Contains(u.Host, "linkedin.com") {
		p, err := linkedinProfile(doc)
		if err != nil {
			return model.Profile{}, err
		}
		im.logger.Info("imported profile from LinkedIn", "url", rawURL)
		return p, nil
	}

	p := genericProfile(doc)
	im.logger.Info("imported profile from page", "url", rawURL)
	return p, nil
}

// genericProfile pulls contact details and a bio out of an arbitrary page:
// title/h1 for the name, meta description for the headline, regex matches
// for email and phone, leading body text for the summary.
func genericProfile(doc *goquery.Document) model.Profile {
	var p model.Profile

	if title := doc.Find("title").First().Text(); title != "" {
		name := strings.SplitN(title, "|", 2)[0]
		name = strings.SplitN(name, "-", 2)[0]
		p.Name = strings.TrimSpace(name)
	}
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" && len(h1) < 60 {
		p.Name = h1
	}

	if desc, ok := doc.Find("meta[name='description']").Attr("content"); ok {
		p.JobRole = firstRunes(strings.TrimSpace(desc), 200)
	}

	doc.Find("script, style, nav, footer, header").Remove()
	text := pageText(doc)

	if m := emailRe.FindString(text); m != "" {
		p.Email = m
	}
	if m := phoneRe.FindString(text); m != "" {
		p.Phone = strings.TrimSpace(m)
	}
	p.Summary = firstRunes(text, 500)

	return p
}

// linkedinProfile reads the public metadata LinkedIn serves to anonymous
// clients: page title, meta description, JSON-LD Person block and any
// education lines near the top of the page. When none of it is present the
// page was a login wall.
func linkedinProfile(doc *goquery.Document) (model.Profile, error) {
	var p model.Profile

	if title := doc.Find("title").First().Text(); title != "" {
		p.Name = strings.TrimSpace(strings.SplitN(title, "-", 2)[0])
	}
	if desc, ok := doc.Find("meta[name='description']").Attr("content"); ok {
		p.JobRole = strings.TrimSpace(desc)
	}

	doc.Find("script[type='application/ld+json']").Each(func(_ int, s *goquery.Selection) {
		var person struct {
			Type     string `json:"@type"`
			Name     string `json:"name"`
			JobTitle string `json:"jobTitle"`
		}
		if err := json.Unmarshal([]byte(s.Text()), &person); err != nil {
			return
		}
		if person.Type != "Person" {
			return
		}
		if person.Name != "" {
			p.Name = person.Name
		}
		if person.JobTitle != "" {
			p.JobRole = person.JobTitle
		}
	})

	doc.Find("script, style, nav, footer, header").Remove()
	text := pageText(doc)
	lower := strings.ToLower(text)
	if strings.Contains(lower, "university") || strings.Contains(lower, "college") {
		var education []string
		lines := strings.Split(text, "\n")
		if len(lines) > 200 {
			lines = lines[:200]
		}
		for _, line := range lines {
			l := strings.ToLower(line)
			if strings.Contains(l, "university") || strings.Contains(l, "college") ||
				strings.Contains(l, "bachelor") || strings.Contains(l, "master") ||
				strings.Contains(l, "phd") {
				education = append(education, strings.TrimSpace(line))
			}
		}
		p.Education = strings.Join(education, "\n")
	}

	if p.Name == "" && p.JobRole == "" {
		return model.Profile{}, errors.New("LinkedIn blocked the request or the profile is not public")
	}
	return p, nil
}

// pageText flattens the document into one trimmed line per text node.
func pageText(doc *goquery.Document) string {
	var b strings.Builder
	var walk func(*goquery.Selection)
	walk = func(sel *goquery.Selection) {
		sel.Contents().Each(func(_ int, c *goquery.Selection) {
			if goquery.NodeName(c) == "#text" {
				if t := strings.Join(strings.Fields(c.Text()), " "); t != "" {
					b.WriteString(t)
					b.WriteByte('\n')
				}
				return
			}
			walk(c)
		})
	}
	walk(doc.Find("body"))
	return strings.TrimRight(b.String(), "\n")
}

func firstRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

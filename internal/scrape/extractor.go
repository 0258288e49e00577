package scrape

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// siteExtractor pulls job-posting text out of a parsed page. Adding support
// for a new job board means adding one implementation and listing it in
// defaultExtractors; unmatched hosts fall through to genericExtractor.
type siteExtractor interface {
	// name identifies the extractor in results, logs and the page cache.
	name() string
	// match reports whether this extractor handles the given host.
	match(host string) bool
	// extract returns the posting text, or an error when the page holds no
	// recognizable job content.
	extract(doc *goquery.Document, pageURL *url.URL) (string, error)
}

func defaultExtractors() []siteExtractor {
	return []siteExtractor{
		linkedinExtractor{},
		greenhouseExtractor{},
		leverExtractor{},
	}
}

// noiseSelectors matches markup that never carries posting content:
// navigation chrome, application forms, legal boilerplate, cookie banners.
var noiseSelectors = []string{
	"script", "style", "noscript", "nav", "footer", "header",
	"form", "#application-form", ".application-form", ".application--wrapper",
	".application--container", ".apply-button-container",
	".lever-application-form", ".posting-apply", ".post-apply", ".apply-section",
	".eeo-statement", ".voluntary-disclosure", ".self-identification",
	".social-share", ".share-buttons",
	".cookie-banner", ".cookie-consent", ".gdpr-notice",
}

func removeNoise(doc *goquery.Document) {
	doc.Find(strings.Join(noiseSelectors, ", ")).Remove()
}

// selectionText flattens a selection into plain text, one line per text
// node, so downstream line-based heuristics see the page's block structure.
func selectionText(sel *goquery.Selection) string {
	var b strings.Builder
	appendTextNodes(sel, &b)
	return strings.TrimRight(b.String(), "\n")
}

func appendTextNodes(sel *goquery.Selection, b *strings.Builder) {
	sel.Contents().Each(func(_ int, c *goquery.Selection) {
		if goquery.NodeName(c) == "#text" {
			if t := strings.Join(strings.Fields(c.Text()), " "); t != "" {
				b.WriteString(t)
				b.WriteByte('\n')
			}
			return
		}
		appendTextNodes(c, b)
	})
}

// cleanLines normalizes pasted or extracted text: whitespace runs collapse
// to single spaces and blank lines drop out.
func cleanLines(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}

// firstMatchText returns the text of the first selector with a non-empty
// match, trying selectors in order.
func firstMatchText(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		found := doc.Find(sel).First()
		if found.Length() == 0 {
			continue
		}
		if text := selectionText(found); text != "" {
			return text
		}
	}
	return ""
}

// companyFromPath guesses the company slug from hosted-board URLs shaped
// like boards.greenhouse.io/<company>/... or jobs.lever.co/<company>/...
func companyFromPath(u *url.URL) string {
	if u == nil {
		return ""
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) == 0 || parts[0] == "" || parts[0] == "embed" {
		return ""
	}
	return parts[0]
}

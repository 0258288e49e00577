package scrape

import (
	"errors"
	"net/url"

	"github.com/PuerkitoBio/goquery"
)

// genericExtractor is the fallback for hosts without a dedicated extractor.
// It strips page chrome and walks a list of selectors common on job boards,
// falling back to the whole body.
type genericExtractor struct{}

func (genericExtractor) name() string { return "generic" }

func (genericExtractor) match(string) bool { return true }

var genericContentSelectors = []string{
	".job-description",
	".job-content",
	"#job-description",
	"#job-content",
	".posting-content",
	".job-details",
	"[data-testid='job-description']",
	"main",
	"article",
	".content",
	"#content",
}

func (genericExtractor) extract(doc *goquery.Document, _ *url.URL) (string, error) {
	removeNoise(doc)

	text := firstMatchText(doc, genericContentSelectors)
	if text == "" {
		text = selectionText(doc.Find("body"))
	}
	if text == "" {
		return "", errors.New("page contains no readable text")
	}
	return cleanLines(text), nil
}

package scrape

import (
	"errors"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// leverExtractor handles postings hosted on jobs.lever.co.
type leverExtractor struct{}

func (leverExtractor) name() string { return "lever" }

func (leverExtractor) match(host string) bool {
	return strings.Contains(host, "lever.co")
}

var leverContentSelectors = []string{
	".posting-page",
	".section-wrapper.page-full-width",
	".posting-description",
	".content",
}

func (leverExtractor) extract(doc *goquery.Document, pageURL *url.URL) (string, error) {
	title := selectionText(doc.Find(".posting-headline h2, h2").First())
	company := companyFromPath(pageURL)

	removeNoise(doc)
	description := firstMatchText(doc, leverContentSelectors)
	if description == "" {
		return "", errors.New("no posting content found on Lever page")
	}

	var b strings.Builder
	if title != "" {
		b.WriteString(title + "\n")
	}
	if company != "" {
		b.WriteString("Company: " + company + "\n")
	}
	b.WriteString("\n" + description)
	return cleanLines(b.String()), nil
}

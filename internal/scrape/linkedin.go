package scrape

import (
	"errors"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// linkedinExtractor handles public LinkedIn job postings. LinkedIn serves a
// reduced guest view to anonymous clients and blocks outright when it
// suspects automation, so extraction failures get a pointed error.
type linkedinExtractor struct{}

func (linkedinExtractor) name() string { return "linkedin" }

func (linkedinExtractor) match(host string) bool {
	return strings.Contains(host, "linkedin.com")
}

var linkedinDescriptionSelectors = []string{
	".description__text",
	".show-more-less-html__markup",
	".jobs-description__content",
	".jobs-box__html-content",
}

func (linkedinExtractor) extract(doc *goquery.Document, _ *url.URL) (string, error) {
	title := selectionText(doc.Find(".top-card-layout__title, h1").First())
	company := selectionText(doc.Find(".topcard__org-name-link, .top-card-layout__card a[data-tracking-control-name*='topcard']").First())

	removeNoise(doc)
	description := firstMatchText(doc, linkedinDescriptionSelectors)
	if description == "" {
		// Guest view sometimes carries the posting summary only in the
		// meta description.
		description, _ = doc.Find("meta[name='description']").Attr("content")
		description = strings.TrimSpace(description)
	}

	if description == "" {
		return "", errors.New("LinkedIn returned no posting content (the job may require signing in)")
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

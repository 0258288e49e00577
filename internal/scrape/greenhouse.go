package scrape

import (
	"errors"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// greenhouseExtractor handles postings hosted on Greenhouse job boards.
type greenhouseExtractor struct{}

func (greenhouseExtractor) name() string { return "greenhouse" }

func (greenhouseExtractor) match(host string) bool {
	return strings.Contains(host, "greenhouse.io")
}

var greenhouseContentSelectors = []string{
	".job__description.body",
	".job__description",
	"#content",
	".job-post-container",
}

func (greenhouseExtractor) extract(doc *goquery.Document, pageURL *url.URL) (string, error) {
	title := selectionText(doc.Find(".app-title, .job__title h1, h1").First())
	// Greenhouse renders the employer as "at <company>".
	company := strings.TrimPrefix(selectionText(doc.Find(".company-name").First()), "at ")
	if company == "" {
		company = companyFromPath(pageURL)
	}

	removeNoise(doc)
	description := firstMatchText(doc, greenhouseContentSelectors)
	if description == "" {
		return "", errors.New("no posting content found on Greenhouse page")
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

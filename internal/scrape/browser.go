package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"
)

const browserTimeout = 45 * time.Second

// BrowserRenderer loads a page in headless Chrome and returns the rendered
// markup. It exists for postings that arrive as an empty shell and fill in
// their content with JavaScript.
type BrowserRenderer struct {
	timeout time.Duration
	logger  *slog.Logger
}

func NewBrowserRenderer(logger *slog.Logger) *BrowserRenderer {
	return &BrowserRenderer{timeout: browserTimeout, logger: logger}
}

// Render navigates to pageURL, waits for the document to settle and returns
// the full HTML. Each call launches and tears down its own browser.
func (r *BrowserRenderer) Render(ctx context.Context, pageURL string) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(userAgent),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, r.timeout)
	defer cancelRun()

	r.logger.Debug("rendering page in headless browser", "url", pageURL)

	var html string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body"),
		// Give client-side rendering a moment to fill in the posting.
		chromedp.Sleep(2*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", pageURL, err)
	}
	return html, nil
}

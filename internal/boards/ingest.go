package boards

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"github.com/cliffordnwanna/JOB-HUNTER/internal/posting"
)

// minRenderedLength is the extracted-text length below which a page is assumed
// to be a JavaScript-rendered shell worth re-fetching through a browser.
const minRenderedLength = 500

// browserTimeout bounds one headless-browser rendering attempt.
const browserTimeout = 30 * time.Second

// jobContentSelectors are tried in order when extracting the main text of an
// arbitrary job-posting page.
var jobContentSelectors = []string{
	".job-description",
	".job-content",
	"#job-description",
	"#job-content",
	".posting-content",
	".job-details",
	"main",
	"article",
	".content",
	"#content",
}

// IngestURL fetches one arbitrary job-posting URL and turns it into a raw
// record. When the static page yields too little text and useBrowser is set,
// the page is re-rendered in a headless browser before extraction.
func (c *Client) IngestURL(ctx context.Context, url string, useBrowser bool) (*posting.Raw, error) {
	source := string(posting.SourceManual)

	body, err := c.get(ctx, source, url)
	if err != nil {
		return nil, err
	}
	html := string(body)

	title, text, err := extractPage(html)
	if err != nil {
		return nil, &FetchError{Source: source, URL: url, Message: "failed to parse page", Cause: err}
	}

	if useBrowser && len(strings.TrimSpace(text)) < minRenderedLength {
		rendered, renderErr := renderWithBrowser(ctx, url)
		if renderErr != nil {
			return nil, &FetchError{Source: source, URL: url, Message: "browser rendering failed", Cause: renderErr}
		}
		title, text, err = extractPage(rendered)
		if err != nil {
			return nil, &FetchError{Source: source, URL: url, Message: "failed to parse rendered page", Cause: err}
		}
	}

	return &posting.Raw{
		Title:       title,
		Description: text,
		Source:      source,
		URL:         url,
	}, nil
}

// extractPage returns the page title and the main body text with navigation
// and other noise removed.
func extractPage(html string) (title, text string, err error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", "", err
	}

	title = strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find("nav, footer, header, script, style, noscript, .ad, .advertisement, .sidebar, .cookie-banner, .popup").Remove()

	var main *goquery.Selection
	for _, selector := range jobContentSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			main = sel.First()
			break
		}
	}
	if main == nil {
		main = doc.Find("body")
	}

	lines := strings.Split(main.Text(), "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			cleaned = append(cleaned, line)
		}
	}

	return title, strings.Join(cleaned, "\n"), nil
}

// renderWithBrowser loads the page in headless Chrome and returns the rendered
// HTML. Requires Chrome or Chromium on the host.
func renderWithBrowser(ctx context.Context, url string) (string, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, browserTimeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		// Give client-side rendering a moment to fill in the content.
		chromedp.Sleep(3*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", err
	}

	return html, nil
}

package boards

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/cliffordnwanna/JOB-HUNTER/internal/posting"
)

const weWorkRemotelyURL = "https://weworkremotely.com/remote-jobs"

type weWorkRemotely struct {
	client *Client
	url    string
}

func newWeWorkRemotely(c *Client) *weWorkRemotely {
	return &weWorkRemotely{client: c, url: weWorkRemotelyURL}
}

func (b *weWorkRemotely) Source() posting.Source { return posting.SourceWeWorkRemotely }

// Fetch scrapes the We Work Remotely listing page. The board has no public
// JSON API; featured listings carry title, company and link but no
// description or date.
func (b *weWorkRemotely) Fetch(ctx context.Context, _ string) ([]posting.Raw, error) {
	body, err := b.client.get(ctx, string(b.Source()), b.url)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, &FetchError{Source: string(b.Source()), URL: b.url, Message: "failed to parse listing page", Cause: err}
	}

	var raws []posting.Raw
	doc.Find("li.feature").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, ok := sel.Find("a[href]").First().Attr("href")
		if !ok {
			return true
		}
		url := href
		if strings.HasPrefix(href, "/") {
			url = "https://weworkremotely.com" + href
		}

		raws = append(raws, posting.Raw{
			Title:    strings.TrimSpace(sel.Find(".title").First().Text()),
			Company:  strings.TrimSpace(sel.Find(".company").First().Text()),
			Location: "Remote",
			Source:   string(b.Source()),
			URL:      url,
		})
		return len(raws) < maxRecords
	})

	return raws, nil
}

package posting

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Raw is the common wire shape board fetchers produce before normalization.
// PostedAt carries a source-specific date string; PostedAtUnix carries epoch
// seconds for boards that send numeric timestamps. Only one needs to be set.
type Raw struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
	Tags         []string `json:"tags,omitempty"`
	PostedAt     string   `json:"posted_at,omitempty"`
	PostedAtUnix int64    `json:"posted_at_unix,omitempty"`
	Source       string   `json:"source"`
	URL          string   `json:"url"`
}

// Normalizer converts raw records into JobPostings.
type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize produces a JobPosting or rejects the record. Rejection is
// reserved for records missing both title and description; everything else,
// including an unparseable date, degrades gracefully.
func (n *Normalizer) Normalize(raw Raw) (*JobPosting, error) {
	title := collapseSpace(strings.ToLower(raw.Title))
	company := collapseSpace(strings.ToLower(raw.Company))
	location := collapseSpace(strings.ToLower(raw.Location))

	description := collapseLines(StripHTML(raw.Description))
	if len(raw.Tags) > 0 {
		tags := collapseSpace(strings.ToLower(strings.Join(raw.Tags, ", ")))
		if description == "" {
			description = "Tags: " + tags
		} else {
			description += "\n\nTags: " + tags
		}
	}

	if title == "" && description == "" {
		return nil, &MalformedPostingError{
			Source:  raw.Source,
			URL:     raw.URL,
			Message: "missing both title and description",
		}
	}

	p := &JobPosting{
		Title:       title,
		Company:     company,
		Location:    location,
		Description: description,
		PostedAt:    parsePostedAt(raw),
		Source:      Source(strings.ToLower(strings.TrimSpace(raw.Source))),
		URL:         strings.TrimSpace(raw.URL),
	}
	p.ID = p.Identity()

	return p, nil
}

// parsePostedAt tries the date representations the supported boards actually
// send. Anything unrecognized leaves the posting dateless; recency scoring
// treats that as neutral rather than penalizing it.
func parsePostedAt(raw Raw) *time.Time {
	if raw.PostedAtUnix > 0 {
		t := time.Unix(raw.PostedAtUnix, 0).UTC()
		return &t
	}

	s := strings.TrimSpace(raw.PostedAt)
	if s == "" {
		return nil
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}

	// ISO strings with sub-second precision or offbeat zone suffixes still
	// start with a plain date
	if len(s) >= 10 {
		if t, err := time.Parse("2006-01-02", s[:10]); err == nil {
			t = t.UTC()
			return &t
		}
	}

	return nil
}

// StripHTML flattens an HTML fragment to its text. Several boards deliver
// descriptions as HTML; plain-text descriptions pass through untouched.
func StripHTML(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}

	doc.Find("br").Each(func(_ int, sel *goquery.Selection) {
		sel.ReplaceWithHtml("\n")
	})
	doc.Find("p, li, div, h1, h2, h3, h4, h5, h6").Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml("\n")
	})

	return doc.Text()
}

// collapseLines trims each line and squeezes blank-line runs, mirroring what
// the résumé side does so both embedding inputs look alike.
func collapseLines(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	cleaned := make([]string, 0, len(lines))
	blank := 0
	for _, line := range lines {
		line = collapseSpace(line)
		if line == "" {
			blank++
			if blank > 1 {
				continue
			}
		} else {
			blank = 0
		}
		cleaned = append(cleaned, line)
	}
	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}

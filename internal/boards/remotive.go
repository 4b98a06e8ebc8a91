package boards

import (
	"context"
	"net/url"

	"github.com/cliffordnwanna/JOB-HUNTER/internal/posting"
)

const remotiveURL = "https://remotive.com/api/remote-jobs"

type remotiveJob struct {
	Title           string `json:"title"`
	CompanyName     string `json:"company_name"`
	Location        string `json:"candidate_required_location"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	URL             string `json:"url"`
	PublicationDate string `json:"publication_date"`
}

type remotive struct {
	client *Client
	url    string
}

func newRemotive(c *Client) *remotive {
	return &remotive{client: c, url: remotiveURL}
}

func (b *remotive) Source() posting.Source { return posting.SourceRemotive }

// Fetch queries Remotive, which supports server-side search.
func (b *remotive) Fetch(ctx context.Context, query string) ([]posting.Raw, error) {
	endpoint := b.url
	if query != "" {
		endpoint += "?search=" + url.QueryEscape(query)
	}

	var envelope struct {
		Jobs []map[string]any `json:"jobs"`
	}
	if err := b.client.getJSON(ctx, string(b.Source()), endpoint, &envelope); err != nil {
		return nil, err
	}

	var jobs []remotiveJob
	if err := decodeRecords(envelope.Jobs, &jobs); err != nil {
		return nil, &FetchError{Source: string(b.Source()), URL: endpoint, Message: "failed to decode records", Cause: err}
	}

	raws := make([]posting.Raw, 0, len(jobs))
	for _, j := range capRecords(jobs) {
		location := j.Location
		if location == "" {
			location = "Remote"
		}
		var tags []string
		if j.Category != "" {
			tags = []string{j.Category}
		}
		raws = append(raws, posting.Raw{
			Title:       j.Title,
			Company:     j.CompanyName,
			Location:    location,
			Description: j.Description,
			Tags:        tags,
			PostedAt:    j.PublicationDate,
			Source:      string(b.Source()),
			URL:         j.URL,
		})
	}
	return raws, nil
}

package boards

import (
	"context"

	"github.com/cliffordnwanna/JOB-HUNTER/internal/posting"
)

const arbeitnowURL = "https://www.arbeitnow.com/api/job-board-api"

type arbeitnowJob struct {
	Title       string   `json:"title"`
	CompanyName string   `json:"company_name"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Remote      bool     `json:"remote"`
	URL         string   `json:"url"`
	CreatedAt   int64    `json:"created_at"`
}

type arbeitnow struct {
	client *Client
	url    string
}

func newArbeitnow(c *Client) *arbeitnow {
	return &arbeitnow{client: c, url: arbeitnowURL}
}

func (b *arbeitnow) Source() posting.Source { return posting.SourceArbeitnow }

// Fetch pulls the Arbeitnow board and keeps only remote postings; the board
// mixes in on-site jobs.
func (b *arbeitnow) Fetch(ctx context.Context, _ string) ([]posting.Raw, error) {
	var envelope struct {
		Data []map[string]any `json:"data"`
	}
	if err := b.client.getJSON(ctx, string(b.Source()), b.url, &envelope); err != nil {
		return nil, err
	}

	var jobs []arbeitnowJob
	if err := decodeRecords(envelope.Data, &jobs); err != nil {
		return nil, &FetchError{Source: string(b.Source()), URL: b.url, Message: "failed to decode records", Cause: err}
	}

	raws := make([]posting.Raw, 0, len(jobs))
	for _, j := range jobs {
		if !j.Remote {
			continue
		}
		location := j.Location
		if location == "" {
			location = "Remote"
		}
		raws = append(raws, posting.Raw{
			Title:        j.Title,
			Company:      j.CompanyName,
			Location:     location,
			Description:  j.Description,
			Tags:         j.Tags,
			PostedAtUnix: j.CreatedAt,
			Source:       string(b.Source()),
			URL:          j.URL,
		})
		if len(raws) >= maxRecords {
			break
		}
	}
	return raws, nil
}

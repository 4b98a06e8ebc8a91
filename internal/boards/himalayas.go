package boards

import (
	"context"
	"strings"

	"github.com/cliffordnwanna/JOB-HUNTER/internal/posting"
)

const himalayasURL = "https://himalayas.app/jobs/api?limit=50"

type himalayasJob struct {
	Title                string   `json:"title"`
	CompanyName          string   `json:"companyName"`
	Description          string   `json:"description"`
	LocationRestrictions []string `json:"locationRestrictions"`
	Categories           []string `json:"categories"`
	PubDate              int64    `json:"pubDate"`
	Slug                 string   `json:"slug"`
}

type himalayas struct {
	client *Client
	url    string
}

func newHimalayas(c *Client) *himalayas {
	return &himalayas{client: c, url: himalayasURL}
}

func (b *himalayas) Source() posting.Source { return posting.SourceHimalayas }

// Fetch pulls the Himalayas feed. Posting URLs are derived from slugs; the
// API does not return them directly.
func (b *himalayas) Fetch(ctx context.Context, _ string) ([]posting.Raw, error) {
	var envelope struct {
		Jobs []map[string]any `json:"jobs"`
	}
	if err := b.client.getJSON(ctx, string(b.Source()), b.url, &envelope); err != nil {
		return nil, err
	}

	var jobs []himalayasJob
	if err := decodeRecords(envelope.Jobs, &jobs); err != nil {
		return nil, &FetchError{Source: string(b.Source()), URL: b.url, Message: "failed to decode records", Cause: err}
	}

	raws := make([]posting.Raw, 0, len(jobs))
	for _, j := range capRecords(jobs) {
		location := strings.Join(j.LocationRestrictions, ", ")
		if location == "" {
			location = "Remote"
		}
		raws = append(raws, posting.Raw{
			Title:        j.Title,
			Company:      j.CompanyName,
			Location:     location,
			Description:  j.Description,
			Tags:         j.Categories,
			PostedAtUnix: j.PubDate,
			Source:       string(b.Source()),
			URL:          "https://himalayas.app/jobs/" + j.Slug,
		})
	}
	return raws, nil
}

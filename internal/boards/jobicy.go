package boards

import (
	"context"

	"github.com/cliffordnwanna/JOB-HUNTER/internal/posting"
)

const jobicyURL = "https://jobicy.com/api/v2/remote-jobs?count=50"

type jobicyJob struct {
	JobTitle       string `json:"jobTitle"`
	CompanyName    string `json:"companyName"`
	JobGeo         string `json:"jobGeo"`
	JobDescription string `json:"jobDescription"`
	JobIndustry    string `json:"jobIndustry"`
	URL            string `json:"url"`
	PubDate        string `json:"pubDate"`
}

type jobicy struct {
	client *Client
	url    string
}

func newJobicy(c *Client) *jobicy {
	return &jobicy{client: c, url: jobicyURL}
}

func (b *jobicy) Source() posting.Source { return posting.SourceJobicy }

// Fetch pulls the Jobicy feed. The v2 endpoint's tag filter is too coarse to
// be useful, so the query is ignored and relevance is left to scoring.
func (b *jobicy) Fetch(ctx context.Context, _ string) ([]posting.Raw, error) {
	var envelope struct {
		Jobs []map[string]any `json:"jobs"`
	}
	if err := b.client.getJSON(ctx, string(b.Source()), b.url, &envelope); err != nil {
		return nil, err
	}

	var jobs []jobicyJob
	if err := decodeRecords(envelope.Jobs, &jobs); err != nil {
		return nil, &FetchError{Source: string(b.Source()), URL: b.url, Message: "failed to decode records", Cause: err}
	}

	raws := make([]posting.Raw, 0, len(jobs))
	for _, j := range capRecords(jobs) {
		location := j.JobGeo
		if location == "" {
			location = "Remote"
		}
		var tags []string
		if j.JobIndustry != "" {
			tags = []string{j.JobIndustry}
		}
		raws = append(raws, posting.Raw{
			Title:       j.JobTitle,
			Company:     j.CompanyName,
			Location:    location,
			Description: j.JobDescription,
			Tags:        tags,
			PostedAt:    j.PubDate,
			Source:      string(b.Source()),
			URL:         j.URL,
		})
	}
	return raws, nil
}

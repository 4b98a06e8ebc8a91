package boards

import (
	"context"

	"github.com/cliffordnwanna/JOB-HUNTER/internal/posting"
)

const remoteOKURL = "https://remoteok.com/api"

type remoteOKJob struct {
	ID          string   `json:"id"`
	Position    string   `json:"position"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Date        string   `json:"date"`
	URL         string   `json:"url"`
}

type remoteOK struct {
	client *Client
	url    string
}

func newRemoteOK(c *Client) *remoteOK {
	return &remoteOK{client: c, url: remoteOKURL}
}

func (b *remoteOK) Source() posting.Source { return posting.SourceRemoteOK }

// Fetch pulls the RemoteOK feed. The endpoint has no search parameter; the
// query is ignored. The first array element is the API's legal notice, not a
// job.
func (b *remoteOK) Fetch(ctx context.Context, _ string) ([]posting.Raw, error) {
	var items []map[string]any
	if err := b.client.getJSON(ctx, string(b.Source()), b.url, &items); err != nil {
		return nil, err
	}
	if len(items) > 0 {
		items = items[1:]
	}

	var jobs []remoteOKJob
	if err := decodeRecords(items, &jobs); err != nil {
		return nil, &FetchError{Source: string(b.Source()), URL: b.url, Message: "failed to decode records", Cause: err}
	}

	raws := make([]posting.Raw, 0, len(jobs))
	for _, j := range capRecords(jobs) {
		url := j.URL
		if url == "" && j.ID != "" {
			url = "https://remoteok.com/remote-jobs/" + j.ID
		}
		location := j.Location
		if location == "" {
			location = "Remote"
		}
		raws = append(raws, posting.Raw{
			Title:       j.Position,
			Company:     j.Company,
			Location:    location,
			Description: j.Description,
			Tags:        j.Tags,
			PostedAt:    j.Date,
			Source:      string(b.Source()),
			URL:         url,
		})
	}
	return raws, nil
}

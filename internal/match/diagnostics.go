package match

import (
	"sync"

	"github.com/google/uuid"
)

// SkippedPosting records one posting that was dropped before scoring, with the
// reason it was dropped. The final report always surfaces these alongside the
// ranked matches.
type SkippedPosting struct {
	Source string `json:"source"`
	URL    string `json:"url,omitempty"`
	Reason string `json:"reason"`
}

// EmbeddingFailure records one posting whose semantic score was degraded
// because the embedding call failed. The posting still appears in the results.
type EmbeddingFailure struct {
	PostingID string `json:"posting_id"`
	URL       string `json:"url,omitempty"`
	Reason    string `json:"reason"`
}

// Diagnostics accumulates everything that happened to the posting set during a
// run: per-source fetch counts, skipped postings, merged duplicates and
// embedding failures. Safe for concurrent use; scoring workers record
// embedding failures in parallel.
type Diagnostics struct {
	mu sync.Mutex

	RunID             string             `json:"run_id"`
	SourceCounts      map[string]int     `json:"source_counts,omitempty"`
	Skipped           []SkippedPosting   `json:"skipped,omitempty"`
	DuplicatesMerged  int                `json:"duplicates_merged"`
	EmbeddingFailures []EmbeddingFailure `json:"embedding_failures,omitempty"`
	Scored            int                `json:"scored"`
}

// NewDiagnostics returns an empty diagnostics record with a fresh run ID.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{
		RunID:        uuid.NewString(),
		SourceCounts: make(map[string]int),
	}
}

// RecordFetch notes how many raw records a source returned.
func (d *Diagnostics) RecordFetch(source string, count int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.SourceCounts == nil {
		d.SourceCounts = make(map[string]int)
	}
	d.SourceCounts[source] += count
}

// RecordSkip notes a posting dropped before scoring.
func (d *Diagnostics) RecordSkip(source, url, reason string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Skipped = append(d.Skipped, SkippedPosting{Source: source, URL: url, Reason: reason})
}

// RecordEmbeddingFailure notes a posting that was scored without its semantic
// component.
func (d *Diagnostics) RecordEmbeddingFailure(postingID, url string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	reason := "unknown"
	if err != nil {
		reason = err.Error()
	}
	d.EmbeddingFailures = append(d.EmbeddingFailures, EmbeddingFailure{
		PostingID: postingID,
		URL:       url,
		Reason:    reason,
	})
}

// SkippedCount reports how many postings were dropped before scoring.
func (d *Diagnostics) SkippedCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.Skipped)
}

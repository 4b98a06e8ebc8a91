package boards

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cliffordnwanna/JOB-HUNTER/internal/posting"
)

// Board fetches raw postings from one job board. Implementations are safe for
// concurrent use; the shared client serializes requests through its limiter.
type Board interface {
	Source() posting.Source
	// Fetch returns raw records for the given search query. Boards without
	// server-side search ignore the query; relevance is the scorer's job.
	Fetch(ctx context.Context, query string) ([]posting.Raw, error)
}

// All returns every supported board backed by the given client.
func All(c *Client) []Board {
	return []Board{
		newRemoteOK(c),
		newRemotive(c),
		newJobicy(c),
		newArbeitnow(c),
		newHimalayas(c),
		newWeWorkRemotely(c),
	}
}

// ForSources returns the boards for the named sources, in the given order.
func ForSources(c *Client, sources []posting.Source) ([]Board, error) {
	bySource := make(map[posting.Source]Board)
	for _, b := range All(c) {
		bySource[b.Source()] = b
	}

	selected := make([]Board, 0, len(sources))
	for _, s := range sources {
		b, ok := bySource[s]
		if !ok {
			return nil, fmt.Errorf("no board fetcher for source %q", s)
		}
		selected = append(selected, b)
	}
	return selected, nil
}

// FetchResult aggregates what every board returned in one concurrent sweep.
type FetchResult struct {
	Raws []posting.Raw
	// Counts records how many raw records each source returned.
	Counts map[posting.Source]int
	// Failures holds the per-source errors. A failed source contributes no
	// records and never fails the sweep.
	Failures []*FetchError
}

// FetchAll queries every board concurrently and merges the results. Record
// order is the boards' order, so repeated sweeps of identical responses are
// deterministic.
func FetchAll(ctx context.Context, bs []Board, query string, logger *zap.Logger) *FetchResult {
	if logger == nil {
		logger = zap.NewNop()
	}

	perBoard := make([][]posting.Raw, len(bs))
	result := &FetchResult{Counts: make(map[posting.Source]int, len(bs))}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for i, b := range bs {
		g.Go(func() error {
			raws, err := b.Fetch(gctx, query)
			if err != nil {
				fetchErr, ok := err.(*FetchError)
				if !ok {
					fetchErr = &FetchError{Source: string(b.Source()), Message: "fetch failed", Cause: err}
				}
				logger.Warn("board fetch failed",
					zap.String("source", string(b.Source())),
					zap.Error(err),
				)
				mu.Lock()
				result.Failures = append(result.Failures, fetchErr)
				mu.Unlock()
				return nil
			}

			logger.Info("fetched postings",
				zap.String("source", string(b.Source())),
				zap.Int("count", len(raws)),
			)
			perBoard[i] = raws
			return nil
		})
	}
	// Workers swallow board errors, so Wait only reports context cancellation.
	_ = g.Wait()

	for i, b := range bs {
		result.Counts[b.Source()] = len(perBoard[i])
		result.Raws = append(result.Raws, perBoard[i]...)
	}

	return result
}

package match

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cliffordnwanna/JOB-HUNTER/internal/posting"
	"github.com/cliffordnwanna/JOB-HUNTER/internal/profile"
	"github.com/cliffordnwanna/JOB-HUNTER/internal/semantic"
)

// defaultConcurrency bounds the scoring worker pool when the caller does not
// configure one.
const defaultConcurrency = 8

// RankerConfig configures result count and parallelism.
type RankerConfig struct {
	// TopN is the maximum number of results returned. Must be positive.
	TopN int `json:"top_n" mapstructure:"top_n" validate:"gt=0"`
	// Concurrency bounds the parallel scoring pool; 0 selects the default.
	Concurrency int `json:"concurrency" mapstructure:"concurrency" validate:"gte=0"`
	// EmbedTimeout is the batch-level budget for all embedding calls. Once
	// exhausted, remaining postings take the degraded semantic path instead of
	// blocking the run. Zero means no budget.
	EmbedTimeout time.Duration `json:"embed_timeout" mapstructure:"embed_timeout"`
}

// Ranker deduplicates a posting set, scores every posting against one
// candidate profile and returns the top results in deterministic order.
type Ranker struct {
	engine   *Engine
	embedder semantic.Embedder
	cfg      RankerConfig
	logger   *zap.Logger
}

// NewRanker validates the configuration and returns a Ranker. The embedder may
// be nil, in which case every posting scores through the degraded semantic
// path.
func NewRanker(engine *Engine, embedder semantic.Embedder, cfg RankerConfig, logger *zap.Logger) (*Ranker, error) {
	if engine == nil {
		return nil, &ConfigurationError{Message: "scoring engine is required"}
	}
	if cfg.TopN <= 0 {
		return nil, &ConfigurationError{Message: fmt.Sprintf("top_n must be positive, got %d", cfg.TopN)}
	}
	if cfg.Concurrency < 0 {
		return nil, &ConfigurationError{Message: fmt.Sprintf("concurrency must not be negative, got %d", cfg.Concurrency)}
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = defaultConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ranker{
		engine:   engine,
		embedder: embedder,
		cfg:      cfg,
		logger:   logger.Named("ranker"),
	}, nil
}

// Dedup merges postings that share a derived identity, keeping the variant
// with the most recent PostedAt. A dated posting always beats an undated one;
// exact ties keep the first-seen variant. Output order is first-seen order,
// which makes the operation idempotent and the downstream sort deterministic.
func Dedup(postings []*posting.JobPosting) ([]*posting.JobPosting, int) {
	slot := make(map[string]int, len(postings))
	out := make([]*posting.JobPosting, 0, len(postings))
	merged := 0

	for _, p := range postings {
		if p == nil {
			continue
		}
		idx, seen := slot[p.ID]
		if !seen {
			slot[p.ID] = len(out)
			out = append(out, p)
			continue
		}
		merged++
		if postedAfter(p, out[idx]) {
			out[idx] = p
		}
	}

	return out, merged
}

// postedAfter reports whether the candidate should replace the incumbent
// duplicate: only when it is strictly more recently posted.
func postedAfter(candidate, incumbent *posting.JobPosting) bool {
	if candidate.PostedAt == nil {
		return false
	}
	if incumbent.PostedAt == nil {
		return true
	}
	return candidate.PostedAt.After(*incumbent.PostedAt)
}

// Rank runs the full core sequence: dedup, parallel scoring, deterministic
// sort, truncation to TopN. Embedding failures degrade individual postings and
// are recorded in diags; only parent-context cancellation aborts the batch.
// A nil diags allocates a throwaway record.
func (r *Ranker) Rank(ctx context.Context, prof *profile.CandidateProfile, postings []*posting.JobPosting, diags *Diagnostics) ([]*MatchResult, error) {
	if diags == nil {
		diags = NewDiagnostics()
	}

	deduped, merged := Dedup(postings)
	diags.DuplicatesMerged += merged
	r.logger.Debug("deduplicated postings",
		zap.Int("in", len(postings)),
		zap.Int("out", len(deduped)),
		zap.Int("merged", merged),
	)

	// All embedding calls share one budget; the scoring itself is not bounded
	// by it.
	embedCtx := ctx
	if r.cfg.EmbedTimeout > 0 {
		var cancel context.CancelFunc
		embedCtx, cancel = context.WithTimeout(ctx, r.cfg.EmbedTimeout)
		defer cancel()
	}

	resumeVec := r.embedResume(embedCtx, prof, diags)

	results := make([]*MatchResult, len(deduped))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Concurrency)
	for i, p := range deduped {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			var postingVec []float32
			if len(resumeVec) > 0 {
				vec, err := r.embedder.Embed(embedCtx, PostingText(p))
				if err != nil {
					diags.RecordEmbeddingFailure(p.ID, p.URL, err)
				} else {
					postingVec = vec
				}
			}

			// Each worker writes only its own slot; no shared state.
			results[i] = r.engine.Score(prof, p, resumeVec, postingVec)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scoring aborted: %w", err)
	}
	diags.Scored += len(results)

	// Stable sort on top of insertion order gives the final tie-break for
	// free: composite desc, skill desc, title desc, first-seen.
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.CompositeScore != b.CompositeScore {
			return a.CompositeScore > b.CompositeScore
		}
		if a.SkillScore != b.SkillScore {
			return a.SkillScore > b.SkillScore
		}
		return a.TitleScore > b.TitleScore
	})

	if len(results) > r.cfg.TopN {
		results = results[:r.cfg.TopN]
	}

	return results, nil
}

// embedResume computes the run-wide résumé embedding. Failure here degrades
// the semantic factor for the entire batch rather than aborting it.
func (r *Ranker) embedResume(ctx context.Context, prof *profile.CandidateProfile, diags *Diagnostics) []float32 {
	if r.embedder == nil {
		return nil
	}

	vec, err := r.embedder.Embed(ctx, prof.RawText)
	if err != nil {
		diags.RecordEmbeddingFailure("resume", "", err)
		r.logger.Warn("resume embedding failed, scoring without semantic factor", zap.Error(err))
		return nil
	}
	return vec
}

package match

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cliffordnwanna/JOB-HUNTER/internal/posting"
	"github.com/cliffordnwanna/JOB-HUNTER/internal/semantic"
)

// flakyEmbedder fails for any text containing failOn and otherwise delegates
// to the deterministic local embedder.
type flakyEmbedder struct {
	inner  semantic.Embedder
	failOn string
}

func newFlakyEmbedder(failOn string) *flakyEmbedder {
	return &flakyEmbedder{inner: semantic.NewLocalEmbedder(), failOn: failOn}
}

func (f *flakyEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if f.failOn != "" && strings.Contains(text, f.failOn) {
		return nil, &semantic.EmbeddingError{Message: "synthetic failure"}
	}
	return f.inner.Embed(ctx, text)
}

func (f *flakyEmbedder) Name() string { return "flaky" }
func (f *flakyEmbedder) Close() error { return nil }

// stallingEmbedder embeds résumé text immediately but blocks on posting text
// until the context expires.
type stallingEmbedder struct {
	inner       semantic.Embedder
	passThrough string
}

func (s *stallingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.Contains(text, s.passThrough) {
		return s.inner.Embed(ctx, text)
	}
	<-ctx.Done()
	return nil, ctx.Err()
}

func (s *stallingEmbedder) Name() string { return "stalling" }
func (s *stallingEmbedder) Close() error { return nil }

func newTestRanker(t *testing.T, embedder semantic.Embedder, topN int) *Ranker {
	t.Helper()
	engine := newTestEngine(t)
	r, err := NewRanker(engine, embedder, RankerConfig{TopN: topN}, nil)
	require.NoError(t, err)
	return r
}

func makePosting(i int, title, desc string) *posting.JobPosting {
	p := &posting.JobPosting{
		Title:       title,
		Company:     fmt.Sprintf("company %d", i),
		Location:    "remote",
		Description: desc,
		Source:      posting.SourceRemoteOK,
		URL:         fmt.Sprintf("https://remoteok.com/remote-jobs/%d", i),
	}
	p.ID = p.Identity()
	return p
}

func TestNewRanker_RejectsNonPositiveTopN(t *testing.T) {
	engine := newTestEngine(t)
	for _, n := range []int{0, -5} {
		_, err := NewRanker(engine, nil, RankerConfig{TopN: n}, nil)
		require.Error(t, err)

		var cfgErr *ConfigurationError
		assert.True(t, errors.As(err, &cfgErr))
	}
}

func TestDedup_MergesSharedIdentity(t *testing.T) {
	older := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	a := makePosting(1, "data analyst", "python")
	a.PostedAt = &older
	b := makePosting(1, "data analyst", "python, but fresher")
	b.PostedAt = &newer
	b.Source = posting.SourceRemotive
	other := makePosting(2, "backend engineer", "go")

	require.Equal(t, a.ID, b.ID)

	out, merged := Dedup([]*posting.JobPosting{a, b, other})
	require.Len(t, out, 2)
	assert.Equal(t, 1, merged)
	// merged duplicate keeps the newer variant in the first-seen slot
	assert.Same(t, b, out[0])
	assert.Same(t, other, out[1])
}

func TestDedup_DatedBeatsUndated(t *testing.T) {
	when := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	undated := makePosting(1, "data analyst", "python")
	dated := makePosting(1, "data analyst", "python")
	dated.PostedAt = &when

	out, _ := Dedup([]*posting.JobPosting{undated, dated})
	require.Len(t, out, 1)
	assert.Same(t, dated, out[0])
}

func TestDedup_TieKeepsFirstSeen(t *testing.T) {
	when := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	first := makePosting(1, "data analyst", "python")
	first.PostedAt = &when
	second := makePosting(1, "data analyst", "python")
	second.PostedAt = &when

	out, _ := Dedup([]*posting.JobPosting{first, second})
	require.Len(t, out, 1)
	assert.Same(t, first, out[0])
}

func TestDedup_Idempotent(t *testing.T) {
	postings := []*posting.JobPosting{
		makePosting(1, "data analyst", "python"),
		makePosting(1, "data analyst", "python"),
		makePosting(2, "backend engineer", "go"),
		makePosting(3, "designer", "figma"),
	}

	once, _ := Dedup(postings)
	twice, merged := Dedup(once)
	assert.Equal(t, once, twice)
	assert.Zero(t, merged)
}

func TestRank_TruncatesToTopNSortedDescending(t *testing.T) {
	r := newTestRanker(t, semantic.NewLocalEmbedder(), 20)

	postings := make([]*posting.JobPosting, 0, 35)
	for i := 0; i < 35; i++ {
		desc := "generic role"
		if i%3 == 0 {
			desc = "python and sql dashboards"
		}
		postings = append(postings, makePosting(i, fmt.Sprintf("role %d", i), desc))
	}

	results, err := r.Rank(context.Background(), analystProfile(), postings, nil)
	require.NoError(t, err)
	require.Len(t, results, 20)

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].CompositeScore, results[i].CompositeScore)
	}
}

func TestRank_Deterministic(t *testing.T) {
	postings := make([]*posting.JobPosting, 0, 15)
	for i := 0; i < 15; i++ {
		postings = append(postings, makePosting(i, fmt.Sprintf("analyst %d", i), fmt.Sprintf("python sql role %d", i)))
	}
	prof := analystProfile()

	r := newTestRanker(t, semantic.NewLocalEmbedder(), 10)
	first, err := r.Rank(context.Background(), prof, postings, nil)
	require.NoError(t, err)
	second, err := r.Rank(context.Background(), prof, postings, nil)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Posting.ID, second[i].Posting.ID)
		assert.Equal(t, first[i].CompositeScore, second[i].CompositeScore)
		assert.Equal(t, first[i].Explanation, second[i].Explanation)
	}
}

func TestRank_EmbeddingFailureDegradesSinglePosting(t *testing.T) {
	r := newTestRanker(t, newFlakyEmbedder("poisoned"), 20)

	postings := make([]*posting.JobPosting, 0, 10)
	for i := 0; i < 9; i++ {
		postings = append(postings, makePosting(i, fmt.Sprintf("analyst %d", i), "python and sql"))
	}
	postings = append(postings, makePosting(9, "poisoned analyst", "python and sql"))

	diags := NewDiagnostics()
	results, err := r.Rank(context.Background(), analystProfile(), postings, diags)
	require.NoError(t, err)
	require.Len(t, results, 10)

	var degraded *MatchResult
	for _, res := range results {
		if res.Posting.Title == "poisoned analyst" {
			degraded = res
		}
	}
	require.NotNil(t, degraded, "degraded posting must still be ranked")
	assert.True(t, degraded.SemanticDegraded)
	assert.Zero(t, degraded.SemanticScore)
	assert.Greater(t, degraded.CompositeScore, 0.0)

	require.Len(t, diags.EmbeddingFailures, 1)
	assert.Equal(t, degraded.Posting.ID, diags.EmbeddingFailures[0].PostingID)
}

func TestRank_NilEmbedderScoresWithoutSemantics(t *testing.T) {
	r := newTestRanker(t, nil, 5)

	results, err := r.Rank(context.Background(), analystProfile(), []*posting.JobPosting{analystPosting()}, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].SemanticDegraded)
}

func TestRank_ResumeEmbeddingFailureDegradesWholeBatch(t *testing.T) {
	// the résumé text itself trips the embedder
	r := newTestRanker(t, newFlakyEmbedder("tableau"), 5)

	diags := NewDiagnostics()
	results, err := r.Rank(context.Background(), analystProfile(), []*posting.JobPosting{analystPosting()}, diags)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].SemanticDegraded)
	require.Len(t, diags.EmbeddingFailures, 1)
	assert.Equal(t, "resume", diags.EmbeddingFailures[0].PostingID)
}

func TestRank_EmbedTimeoutDegradesStalledPostings(t *testing.T) {
	// résumé embedding succeeds; every posting embedding hangs past the budget
	embedder := &stallingEmbedder{inner: semantic.NewLocalEmbedder(), passThrough: "tableau"}
	engine := newTestEngine(t)
	r, err := NewRanker(engine, embedder, RankerConfig{TopN: 10, EmbedTimeout: 20 * time.Millisecond}, nil)
	require.NoError(t, err)

	postings := []*posting.JobPosting{
		makePosting(1, "data analyst", "python sql"),
		makePosting(2, "backend engineer", "go services"),
		makePosting(3, "designer", "figma"),
	}

	diags := NewDiagnostics()
	start := time.Now()
	results, err := r.Rank(context.Background(), analystProfile(), postings, diags)
	require.NoError(t, err, "an exhausted embedding budget must not abort the batch")
	require.Len(t, results, 3)
	assert.Less(t, time.Since(start), 5*time.Second)

	for _, res := range results {
		assert.True(t, res.SemanticDegraded)
		assert.Zero(t, res.SemanticScore)
		assert.Greater(t, res.CompositeScore, 0.0, "remaining factors still score")
	}
	assert.Len(t, diags.EmbeddingFailures, 3)
}

func TestRank_TieBreaksBySkillThenTitle(t *testing.T) {
	// composite comes only from recency, so two undated postings always tie
	engine, err := NewEngine(Weights{Recency: 1.0}, nil)
	require.NoError(t, err)
	engine.now = engineNow

	r, err := NewRanker(engine, nil, RankerConfig{TopN: 10}, nil)
	require.NoError(t, err)

	weak := makePosting(1, "unrelated", "nothing here")
	strong := makePosting(2, "data analyst", "python sql tableau")

	results, err := r.Rank(context.Background(), analystProfile(), []*posting.JobPosting{weak, strong}, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, results[0].CompositeScore, results[1].CompositeScore)
	assert.Equal(t, strong.ID, results[0].Posting.ID)
}

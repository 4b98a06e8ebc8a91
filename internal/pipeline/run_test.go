package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cliffordnwanna/JOB-HUNTER/internal/boards"
	"github.com/cliffordnwanna/JOB-HUNTER/internal/match"
	"github.com/cliffordnwanna/JOB-HUNTER/internal/posting"
	"github.com/cliffordnwanna/JOB-HUNTER/internal/semantic"
)

const testResume = `Jane Doe
jane@example.com

Data analyst with 5 years of experience turning messy datasets into clear
business recommendations. Built dashboards and reporting pipelines used by
three product teams every week.

Skills: Python, SQL, Tableau
`

type stubBoard struct {
	source posting.Source
	raws   []posting.Raw
	err    error
}

func (s *stubBoard) Source() posting.Source { return s.source }

func (s *stubBoard) Fetch(_ context.Context, _ string) ([]posting.Raw, error) {
	return s.raws, s.err
}

func writeResume(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte(testResume), 0o644))
	return path
}

func baseOptions(t *testing.T, raws []posting.Raw) RunOptions {
	return RunOptions{
		ResumePath: writeResume(t),
		Query:      "analyst",
		Weights:    match.DefaultWeights(),
		TopN:       20,
		Embedder:   semantic.NewLocalEmbedder(),
		Boards: []boards.Board{
			&stubBoard{source: posting.SourceRemotive, raws: raws},
		},
	}
}

func TestRun_EndToEnd(t *testing.T) {
	raws := []posting.Raw{
		{
			Title:       "Data Analyst",
			Company:     "Acme",
			Location:    "Remote",
			Description: "We need python and sql for dashboards and reporting.",
			Source:      "remotive",
			URL:         "https://remotive.com/jobs/1",
		},
		{
			Title:       "Groundskeeper",
			Company:     "Beta",
			Location:    "On-site",
			Description: "Mowing and landscaping full time.",
			Source:      "remotive",
			URL:         "https://remotive.com/jobs/2",
		},
		{
			// missing title and description, skipped during normalization
			Company: "Gamma",
			Source:  "remotive",
			URL:     "https://remotive.com/jobs/3",
		},
	}

	res, err := Run(context.Background(), baseOptions(t, raws))
	require.NoError(t, err)

	require.Len(t, res.Results, 2)
	assert.Equal(t, "data analyst", res.Results[0].Posting.Title)
	assert.GreaterOrEqual(t, res.Results[0].CompositeScore, res.Results[1].CompositeScore)

	assert.Contains(t, res.Profile.Skills, "python")
	assert.Equal(t, 2, res.Diagnostics.Scored)
	assert.Equal(t, 3, res.Diagnostics.SourceCounts["remotive"])
	require.Len(t, res.Diagnostics.Skipped, 1)
	assert.Contains(t, res.Diagnostics.Skipped[0].Reason, "missing both title and description")
}

func TestRun_ExcludeKeywordsApply(t *testing.T) {
	raws := []posting.Raw{
		{Title: "Senior Data Analyst", Company: "Acme", Description: "python", Source: "remotive", URL: "https://remotive.com/jobs/1"},
		{Title: "Data Analyst", Company: "Beta", Description: "sql", Source: "remotive", URL: "https://remotive.com/jobs/2"},
	}

	opts := baseOptions(t, raws)
	opts.ExcludeKeywords = []string{"senior"}

	res, err := Run(context.Background(), opts)
	require.NoError(t, err)

	require.Len(t, res.Results, 1)
	assert.Equal(t, "data analyst", res.Results[0].Posting.Title)
	assert.Equal(t, 1, res.Diagnostics.SkippedCount())
}

func TestRun_MinScoreDropsWeakResults(t *testing.T) {
	raws := []posting.Raw{
		{Title: "Data Analyst", Company: "Acme", Description: "python sql dashboards", Source: "remotive", URL: "https://remotive.com/jobs/1"},
		{Title: "Groundskeeper", Company: "Beta", Description: "mowing", Source: "remotive", URL: "https://remotive.com/jobs/2"},
	}

	opts := baseOptions(t, raws)
	// no preferred titles are set, so the title factor contributes nothing and
	// no composite can reach this cutoff
	opts.MinScore = 99.9

	res, err := Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Empty(t, res.Results)
	assert.Equal(t, 2, res.Diagnostics.Scored)
	require.Len(t, res.Diagnostics.Skipped, 2)
	assert.Contains(t, res.Diagnostics.Skipped[0].Reason, "below minimum 99.9")
}

func TestRun_EmbedTimeoutIsForwarded(t *testing.T) {
	raws := []posting.Raw{
		{Title: "Data Analyst", Company: "Acme", Description: "python", Source: "remotive", URL: "https://remotive.com/jobs/1"},
	}

	opts := baseOptions(t, raws)
	opts.EmbedTimeout = 30 * time.Second

	res, err := Run(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.False(t, res.Results[0].SemanticDegraded)
}

func TestRun_BoardFailureDoesNotAbort(t *testing.T) {
	opts := baseOptions(t, nil)
	opts.Boards = []boards.Board{
		&stubBoard{source: posting.SourceRemotive, err: assert.AnError},
		&stubBoard{source: posting.SourceJobicy, raws: []posting.Raw{
			{Title: "Data Analyst", Company: "Acme", Description: "python", Source: "jobicy", URL: "https://jobicy.com/jobs/1"},
		}},
	}

	res, err := Run(context.Background(), opts)
	require.NoError(t, err)

	require.Len(t, res.Results, 1)
	// the failed board shows up in diagnostics, not as an error
	require.NotEmpty(t, res.Diagnostics.Skipped)
	assert.Contains(t, res.Diagnostics.Skipped[0].Reason, "board fetch failed")
}

func TestRun_ShortResumeIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("too short"), 0o644))

	opts := baseOptions(t, nil)
	opts.ResumePath = path

	_, err := Run(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile extraction failed")
}

func TestRun_BadWeightsAreFatal(t *testing.T) {
	opts := baseOptions(t, nil)
	opts.Weights = match.Weights{Skill: 0.5}

	_, err := Run(context.Background(), opts)
	require.Error(t, err)
	var confErr *match.ConfigurationError
	assert.ErrorAs(t, err, &confErr)
}

func TestRun_ProgressEventsEmitted(t *testing.T) {
	var steps []string
	opts := baseOptions(t, nil)
	opts.OnProgress = func(ev ProgressEvent) { steps = append(steps, ev.Step) }

	_, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"1/6", "2/6", "3/6", "4/6", "5/6", "6/6"}, steps)
}

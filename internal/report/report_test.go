package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cliffordnwanna/JOB-HUNTER/internal/match"
	"github.com/cliffordnwanna/JOB-HUNTER/internal/posting"
)

func sampleResults() []*match.MatchResult {
	postedAt := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	return []*match.MatchResult{
		{
			Posting: posting.JobPosting{
				ID:       "abc",
				Title:    "data analyst",
				Company:  "acme",
				Location: "remote",
				PostedAt: &postedAt,
				Source:   posting.SourceRemotive,
				URL:      "https://remotive.com/jobs/1",
			},
			SemanticScore:  0.8,
			SkillScore:     0.667,
			TitleScore:     1.0,
			LocationScore:  1.0,
			RecencyScore:   0.9,
			CompositeScore: 82.3,
			SkillsMatched:  2,
			MatchedSkills:  []string{"python", "sql"},
			Explanation: []match.Contribution{
				{Factor: match.FactorSkill, Score: 0.667, Weight: 0.35, Points: 23.3},
				{Factor: match.FactorSemantic, Score: 0.8, Weight: 0.30, Points: 24.0},
			},
		},
		{
			Posting: posting.JobPosting{
				ID:      "def",
				Title:   "designer",
				Company: "beta",
				Source:  posting.SourceJobicy,
				URL:     "https://jobicy.com/jobs/2",
			},
			CompositeScore:   41.0,
			SemanticDegraded: true,
		},
	}
}

func TestPrintResults_ShowsRankAndBreakdown(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintResults(sampleResults())

	out := buf.String()
	assert.Contains(t, out, "RANKED MATCHES")
	assert.Contains(t, out, "#1  82.3  data analyst — acme")
	assert.Contains(t, out, "skills: python, sql")
	assert.Contains(t, out, "unknown location")
}

func TestPrintResults_EmptySet(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintResults(nil)
	assert.Contains(t, buf.String(), "No matching postings found.")
}

func TestPrintExplanation_ShowsFactorsAndDegradation(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.PrintExplanation(sampleResults()[1])

	out := buf.String()
	assert.Contains(t, out, "SCORE BREAKDOWN")
	assert.Contains(t, out, "weight redistributed")
}

func TestPrintDiagnostics_ReportsSkippedWithReasons(t *testing.T) {
	d := match.NewDiagnostics()
	d.RecordFetch("remotive", 40)
	d.RecordSkip("remoteok", "https://x.com/1", "missing both title and description")
	d.DuplicatesMerged = 3
	d.Scored = 37

	var buf bytes.Buffer
	NewPrinter(&buf).PrintDiagnostics(d)

	out := buf.String()
	assert.Contains(t, out, "Postings skipped:   1")
	assert.Contains(t, out, "missing both title and description")
	assert.Contains(t, out, "Duplicates merged:  3")
}

func TestWriteCSV_RoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResults()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "data analyst", rows[1][1])
	assert.Equal(t, "2026-08-15T00:00:00Z", rows[1][5])
	assert.Equal(t, "python; sql", rows[1][13])
	// undated posting exports an empty posted_at
	assert.Equal(t, "", rows[2][5])
}

func TestWriteJSON_IncludesDiagnostics(t *testing.T) {
	d := match.NewDiagnostics()
	d.RecordSkip("remoteok", "", "malformed")

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResults(), d))

	var decoded Export
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Results, 2)
	require.NotNil(t, decoded.Diagnostics)
	assert.Len(t, decoded.Diagnostics.Skipped, 1)
	assert.Equal(t, "data analyst", decoded.Results[0].Posting.Title)
}

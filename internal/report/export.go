package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/cliffordnwanna/JOB-HUNTER/internal/match"
)

// csvHeader defines the export columns, one row per ranked result.
var csvHeader = []string{
	"rank", "title", "company", "location", "source", "posted_at",
	"composite_score", "skill_score", "semantic_score", "title_score",
	"location_score", "recency_score", "skills_matched", "matched_skills", "url",
}

// WriteCSV exports ranked results as CSV, suitable for spreadsheets.
func WriteCSV(w io.Writer, results []*match.MatchResult) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for i, res := range results {
		postedAt := ""
		if res.Posting.PostedAt != nil {
			postedAt = res.Posting.PostedAt.Format(time.RFC3339)
		}
		row := []string{
			strconv.Itoa(i + 1),
			res.Posting.Title,
			res.Posting.Company,
			res.Posting.Location,
			string(res.Posting.Source),
			postedAt,
			formatScore(res.CompositeScore),
			formatScore(res.SkillScore),
			formatScore(res.SemanticScore),
			formatScore(res.TitleScore),
			formatScore(res.LocationScore),
			formatScore(res.RecencyScore),
			strconv.Itoa(res.SkillsMatched),
			strings.Join(res.MatchedSkills, "; "),
			res.Posting.URL,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Export is the machine-readable run output: ranked results plus the
// diagnostics that explain what is missing from them.
type Export struct {
	Results     []*match.MatchResult `json:"results"`
	Diagnostics *match.Diagnostics   `json:"diagnostics,omitempty"`
}

// WriteJSON exports ranked results and diagnostics as indented JSON.
func WriteJSON(w io.Writer, results []*match.MatchResult, diags *match.Diagnostics) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Export{Results: results, Diagnostics: diags}); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return nil
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

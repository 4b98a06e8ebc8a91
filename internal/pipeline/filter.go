package pipeline

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/cliffordnwanna/JOB-HUNTER/internal/match"
	"github.com/cliffordnwanna/JOB-HUNTER/internal/posting"
)

// Filters drops postings between normalization and dedup. Dropped postings
// are recorded in diagnostics as filtered, never as malformed.
type Filters struct {
	exclude    []excludePattern
	maxAgeDays int
	now        func() time.Time
}

type excludePattern struct {
	keyword string
	re      *regexp.Regexp
}

// NewFilters compiles the exclude keywords into whole-word matchers. A
// maxAgeDays of zero disables the age filter.
func NewFilters(excludeKeywords []string, maxAgeDays int) *Filters {
	f := &Filters{maxAgeDays: maxAgeDays, now: time.Now}
	for _, kw := range excludeKeywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		f.exclude = append(f.exclude, excludePattern{
			keyword: kw,
			re:      regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(kw) + `\b`),
		})
	}
	return f
}

// Apply returns the postings that survive all filters, recording every drop.
func (f *Filters) Apply(postings []*posting.JobPosting, diags *match.Diagnostics) []*posting.JobPosting {
	kept := make([]*posting.JobPosting, 0, len(postings))
	cutoff := time.Time{}
	if f.maxAgeDays > 0 {
		cutoff = f.now().AddDate(0, 0, -f.maxAgeDays)
	}

	for _, p := range postings {
		if kw, excluded := f.excludedBy(p.Title); excluded {
			diags.RecordSkip(string(p.Source), p.URL,
				fmt.Sprintf("title contains excluded keyword %q", kw))
			continue
		}
		// Undated postings pass the age filter; recency scoring already
		// treats them as neutral.
		if !cutoff.IsZero() && p.PostedAt != nil && p.PostedAt.Before(cutoff) {
			diags.RecordSkip(string(p.Source), p.URL,
				fmt.Sprintf("posted more than %d days ago", f.maxAgeDays))
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

// excludedBy reports the first exclude keyword appearing in the title as a
// whole word. "senior" must not match "seniority".
func (f *Filters) excludedBy(title string) (string, bool) {
	for _, pat := range f.exclude {
		if pat.re.MatchString(title) {
			return pat.keyword, true
		}
	}
	return "", false
}

// applyMinScore drops ranked results below the composite cutoff. It runs after
// ranking, so results arrive sorted descending and the survivors keep their
// order. A cutoff of zero keeps everything.
func applyMinScore(results []*match.MatchResult, minScore float64, diags *match.Diagnostics) []*match.MatchResult {
	if minScore <= 0 {
		return results
	}
	kept := make([]*match.MatchResult, 0, len(results))
	for _, res := range results {
		if res.CompositeScore < minScore {
			diags.RecordSkip(string(res.Posting.Source), res.Posting.URL,
				fmt.Sprintf("composite score %.1f below minimum %.1f", res.CompositeScore, minScore))
			continue
		}
		kept = append(kept, res)
	}
	return kept
}

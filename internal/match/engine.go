// Package match implements the scoring engine and ranker at the core of the
// system: five independent sub-scores per (profile, posting) pair, fused into
// an explainable 0-100 composite, with deterministic deduplication, parallel
// scoring and stable ordering across heterogeneous sources.
package match

import (
	"strings"
	"time"
	"unicode"

	"github.com/cliffordnwanna/JOB-HUNTER/internal/posting"
	"github.com/cliffordnwanna/JOB-HUNTER/internal/profile"
	"github.com/cliffordnwanna/JOB-HUNTER/internal/semantic"
	"github.com/cliffordnwanna/JOB-HUNTER/internal/taxonomy"
)

// recencyWindowDays is the linear decay horizon: a posting this old or older
// scores zero on recency.
const recencyWindowDays = 30.0

// remoteMarkers are location substrings treated as remote-friendly.
var remoteMarkers = []string{"remote", "anywhere", "worldwide", "global"}

// unknownLocations are values meaning the board did not say where the job is.
var unknownLocations = map[string]bool{
	"":              true,
	"unknown":       true,
	"n/a":           true,
	"unspecified":   true,
	"not specified": true,
}

// Engine computes match scores for (profile, posting) pairs. An Engine is
// immutable after construction: scoring calls are pure, share no state and
// may run concurrently. The clock is fixed at construction so recency scores
// cannot drift within a run.
type Engine struct {
	weights Weights
	tax     *taxonomy.Taxonomy
	now     time.Time
}

// NewEngine validates the weight configuration and returns an engine. A nil
// taxonomy selects the embedded default vocabulary.
func NewEngine(weights Weights, tax *taxonomy.Taxonomy) (*Engine, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	if tax == nil {
		tax = taxonomy.Default()
	}
	return &Engine{
		weights: weights,
		tax:     tax,
		now:     time.Now(),
	}, nil
}

// Weights returns the engine's weight configuration.
func (e *Engine) Weights() Weights {
	return e.weights
}

// PostingText is the text a posting contributes to the embedding space.
func PostingText(p *posting.JobPosting) string {
	if p.Description == "" {
		return p.Title
	}
	return p.Title + "\n" + p.Description
}

// Score computes the match result for one posting. resumeVec and postingVec
// are embeddings of the profile raw text and of PostingText; a nil or empty
// vector on either side marks the semantic path as degraded for this posting,
// scoring semantic 0 and redistributing its weight across the other factors.
func (e *Engine) Score(p *profile.CandidateProfile, post *posting.JobPosting, resumeVec, postingVec []float32) *MatchResult {
	doc := taxonomy.Prepare(post.Title + "\n" + post.Description)

	skillScore, matched := e.computeSkillScore(p.Skills, doc)
	titleScore := computeTitleScore(post.Title, p.PreferredTitles)
	locationScore := computeLocationScore(post.Location, p.PreferredLocations)
	recencyScore := computeRecencyScore(e.now, post.PostedAt)

	degraded := len(resumeVec) == 0 || len(postingVec) == 0
	semanticScore := 0.0
	if !degraded {
		semanticScore = clamp01(semantic.Cosine(resumeVec, postingVec))
	}

	effective := e.weights
	if degraded {
		effective = e.weights.redistributeSemantic()
	}

	explanation := []Contribution{
		contribution(FactorSkill, skillScore, effective.Skill),
		contribution(FactorSemantic, semanticScore, effective.Semantic),
		contribution(FactorTitle, titleScore, effective.Title),
		contribution(FactorLocation, locationScore, effective.Location),
		contribution(FactorRecency, recencyScore, effective.Recency),
	}

	composite := 0.0
	for _, c := range explanation {
		composite += c.Points
	}
	if composite < 0 {
		composite = 0
	}
	if composite > 100 {
		composite = 100
	}

	return &MatchResult{
		Posting:          *post,
		SemanticScore:    semanticScore,
		SkillScore:       skillScore,
		TitleScore:       titleScore,
		LocationScore:    locationScore,
		RecencyScore:     recencyScore,
		CompositeScore:   composite,
		SkillsMatched:    len(matched),
		MatchedSkills:    matched,
		SemanticDegraded: degraded,
		Explanation:      explanation,
	}
}

func contribution(factor string, score, weight float64) Contribution {
	return Contribution{
		Factor: factor,
		Score:  score,
		Weight: weight,
		Points: weight * score * 100,
	}
}

// redistributeSemantic spreads the semantic weight proportionally over the
// remaining factors so degraded and non-degraded composites stay comparable.
func (w Weights) redistributeSemantic() Weights {
	rem := 1.0 - w.Semantic
	if rem <= weightSumTolerance {
		// Semantic carried everything; nothing is left to score with.
		return Weights{}
	}
	return Weights{
		Skill:    w.Skill / rem,
		Semantic: 0,
		Title:    w.Title / rem,
		Location: w.Location / rem,
		Recency:  w.Recency / rem,
	}
}

// computeSkillScore returns the matched fraction of the candidate's skills
// and the sorted matched skills themselves. The candidate's skill list is
// already canonical and sorted, so matched order is deterministic.
func (e *Engine) computeSkillScore(skills []string, doc *taxonomy.Document) (float64, []string) {
	if len(skills) == 0 {
		return 0, nil
	}

	matched := make([]string, 0, len(skills))
	for _, skill := range skills {
		if e.tax.Contains(doc, skill) {
			matched = append(matched, skill)
		}
	}

	total := len(skills)
	if total < 1 {
		total = 1
	}
	return float64(len(matched)) / float64(total), matched
}

// computeTitleScore is the best Jaccard similarity between the posting title
// and any preferred title. No preferred titles means no preference signal,
// which scores zero rather than neutral.
func computeTitleScore(title string, preferred []string) float64 {
	if len(preferred) == 0 {
		return 0
	}

	titleTokens := tokenSet(title)
	best := 0.0
	for _, pref := range preferred {
		if score := jaccard(titleTokens, tokenSet(pref)); score > best {
			best = score
		}
	}
	return best
}

// computeLocationScore grades location fit: remote or preferred wins, an
// unspecified location is neutral, anything else is a miss.
func computeLocationScore(location string, preferred []string) float64 {
	loc := strings.ToLower(strings.TrimSpace(location))
	if unknownLocations[loc] {
		return 0.5
	}

	for _, marker := range remoteMarkers {
		if strings.Contains(loc, marker) {
			return 1.0
		}
	}
	for _, pref := range preferred {
		pref = strings.ToLower(strings.TrimSpace(pref))
		if pref == "" {
			continue
		}
		// Substring in either direction: "berlin" matches "berlin, germany"
		// and vice versa.
		if strings.Contains(loc, pref) || strings.Contains(pref, loc) {
			return 1.0
		}
	}

	return 0
}

// computeRecencyScore decays linearly from 1.0 at posting time to 0.0 at
// recencyWindowDays. A missing date is neutral, never a penalty.
func computeRecencyScore(now time.Time, postedAt *time.Time) float64 {
	if postedAt == nil {
		return 0.5
	}

	days := now.Sub(*postedAt).Hours() / 24
	return clamp01(1.0 - days/recencyWindowDays)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		set[tok] = true
	}
	return set
}

func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	intersection := 0
	for tok := range a {
		if b[tok] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

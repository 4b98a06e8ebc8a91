package match

import (
	"github.com/cliffordnwanna/JOB-HUNTER/internal/posting"
)

// Factor names used in explanations, in their fixed reporting order.
const (
	FactorSkill    = "skill"
	FactorSemantic = "semantic"
	FactorTitle    = "title"
	FactorLocation = "location"
	FactorRecency  = "recency"
)

// Contribution is one factor's share of the composite score. Points is the
// exact contribution on the 0-100 scale; summing a result's contributions
// reproduces its composite score.
type Contribution struct {
	Factor string  `json:"factor"`
	Score  float64 `json:"score"`
	Weight float64 `json:"weight"`
	Points float64 `json:"points"`
}

// MatchResult is the scored outcome for one posting. All sub-scores lie in
// [0,1], the composite in [0,100]. Results are immutable once produced.
type MatchResult struct {
	Posting posting.JobPosting `json:"posting"`

	SemanticScore float64 `json:"semantic_score"`
	SkillScore    float64 `json:"skill_score"`
	TitleScore    float64 `json:"title_score"`
	LocationScore float64 `json:"location_score"`
	RecencyScore  float64 `json:"recency_score"`

	CompositeScore float64 `json:"composite_score"`

	SkillsMatched int      `json:"skills_matched"`
	MatchedSkills []string `json:"matched_skills,omitempty"`

	// SemanticDegraded is set when the embedding step failed for this posting
	// and the semantic weight was redistributed across the other factors.
	SemanticDegraded bool `json:"semantic_degraded,omitempty"`

	Explanation []Contribution `json:"explanation"`
}

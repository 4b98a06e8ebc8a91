package match

import (
	"fmt"
	"math"
)

// weightSumTolerance absorbs float formatting noise in config files; it is
// not a license to auto-correct weights that genuinely do not sum to one.
const weightSumTolerance = 1e-9

// DefaultTopN is the result count used when the caller does not configure one.
const DefaultTopN = 20

// Weights is the explicit composite-score configuration. Skill and semantic
// similarity dominate by default; all five must be non-negative and sum to
// exactly 1.0.
type Weights struct {
	Skill    float64 `json:"skill" mapstructure:"skill" validate:"gte=0,lte=1"`
	Semantic float64 `json:"semantic" mapstructure:"semantic" validate:"gte=0,lte=1"`
	Title    float64 `json:"title" mapstructure:"title" validate:"gte=0,lte=1"`
	Location float64 `json:"location" mapstructure:"location" validate:"gte=0,lte=1"`
	Recency  float64 `json:"recency" mapstructure:"recency" validate:"gte=0,lte=1"`
}

// DefaultWeights returns the standard blend.
func DefaultWeights() Weights {
	return Weights{
		Skill:    0.35,
		Semantic: 0.30,
		Title:    0.15,
		Location: 0.10,
		Recency:  0.10,
	}
}

// Validate rejects negative weights and weight sets that do not sum to 1.0.
func (w Weights) Validate() error {
	for _, entry := range []struct {
		name  string
		value float64
	}{
		{"skill", w.Skill},
		{"semantic", w.Semantic},
		{"title", w.Title},
		{"location", w.Location},
		{"recency", w.Recency},
	} {
		if entry.value < 0 {
			return &ConfigurationError{
				Message: fmt.Sprintf("weight %q is negative (%g)", entry.name, entry.value),
			}
		}
	}

	if sum := w.sum(); math.Abs(sum-1.0) > weightSumTolerance {
		return &ConfigurationError{
			Message: fmt.Sprintf("weights must sum to 1.0, got %g", sum),
		}
	}

	return nil
}

func (w Weights) sum() float64 {
	return w.Skill + w.Semantic + w.Title + w.Location + w.Recency
}

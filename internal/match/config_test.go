package match

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultWeights_SumToOne(t *testing.T) {
	require.NoError(t, DefaultWeights().Validate())
}

func TestWeights_RejectsBadSum(t *testing.T) {
	w := Weights{Skill: 0.5, Semantic: 0.5, Title: 0.5}
	err := w.Validate()
	require.Error(t, err)

	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestWeights_RejectsNegativeWeight(t *testing.T) {
	w := Weights{Skill: 1.2, Semantic: -0.2}
	err := w.Validate()
	require.Error(t, err)

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, cfgErr.Message, "negative")
}

func TestWeights_ToleratesFloatNoise(t *testing.T) {
	w := Weights{Skill: 0.1, Semantic: 0.2, Title: 0.3, Location: 0.2, Recency: 0.2}
	assert.NoError(t, w.Validate())
}

func TestNewEngine_RejectsInvalidWeights(t *testing.T) {
	_, err := NewEngine(Weights{Skill: 1, Semantic: 1}, nil)
	require.Error(t, err)

	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}

package posting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentity_NormalizesFormatting(t *testing.T) {
	a := Identity("Senior  Data Analyst", "Acme Corp", "https://www.acme.com/jobs/123")
	b := Identity("senior data analyst", "ACME CORP", "https://acme.com/jobs/456?ref=feed")

	assert.Equal(t, a, b)
}

func TestIdentity_DiffersAcrossJobs(t *testing.T) {
	a := Identity("data analyst", "acme", "https://boards.example/1")
	b := Identity("data engineer", "acme", "https://boards.example/1")

	assert.NotEqual(t, a, b)
}

func TestIdentity_MalformedURLStillDerives(t *testing.T) {
	id := Identity("data analyst", "acme", "::not a url::")
	assert.Len(t, id, 64)
}

func TestParseSource(t *testing.T) {
	s, err := ParseSource(" RemoteOK ")
	require.NoError(t, err)
	assert.Equal(t, SourceRemoteOK, s)

	_, err = ParseSource("monster")
	assert.Error(t, err)
}

func TestJobPostingIdentity_MatchesPackageFunc(t *testing.T) {
	p := &JobPosting{Title: "data analyst", Company: "acme", URL: "https://acme.com/j/1"}
	assert.Equal(t, Identity("data analyst", "acme", "https://acme.com/j/1"), p.Identity())
}

package profile

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `Jane Doe
jane.doe@example.com | +1 (555) 123-4567
Senior Data Analyst with 6 years of experience building dashboards.

Experience
Data Analyst, Acme Corp, 2019 - present
Built ETL pipelines in Python and SQL, visualized results in Tableau.

Skills: Python, SQL, Tableau, Communication`

func newTestExtractor() *Extractor {
	e := NewExtractor(nil)
	e.now = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	return e
}

func TestExtract_BuildsProfile(t *testing.T) {
	e := newTestExtractor()

	p, err := e.Extract(sampleResume, []string{" Data Analyst ", ""}, []string{"Berlin", "berlin", "USA"})
	require.NoError(t, err)

	assert.Contains(t, p.Skills, "python")
	assert.Contains(t, p.Skills, "sql")
	assert.Contains(t, p.Skills, "tableau")
	assert.Contains(t, p.Skills, "etl")
	assert.Contains(t, p.Skills, "communication")

	assert.Equal(t, []string{"Data Analyst"}, p.PreferredTitles)
	assert.Equal(t, []string{"berlin", "usa"}, p.PreferredLocations)
	assert.Equal(t, "jane.doe@example.com", p.Email)
	assert.NotEmpty(t, p.Phone)
}

func TestExtract_SkillsAreLowercaseSortedUnique(t *testing.T) {
	e := newTestExtractor()

	p, err := e.Extract(sampleResume, nil, nil)
	require.NoError(t, err)

	seen := map[string]bool{}
	for i, skill := range p.Skills {
		assert.Equal(t, strings.ToLower(skill), skill)
		assert.NotEmpty(t, skill)
		assert.False(t, seen[skill], "duplicate skill %q", skill)
		seen[skill] = true
		if i > 0 {
			assert.Less(t, p.Skills[i-1], skill)
		}
	}
}

func TestExtract_TooShortFails(t *testing.T) {
	e := newTestExtractor()

	_, err := e.Extract("too short to be a resume", nil, nil)
	require.Error(t, err)

	var extractionErr *ExtractionError
	require.True(t, errors.As(err, &extractionErr))
	assert.Equal(t, 6, extractionErr.Tokens)
}

func TestExtract_SkillsSectionAliasCanonicalized(t *testing.T) {
	e := newTestExtractor()
	text := `Experienced platform engineer who has shipped production systems
across several companies and enjoys infrastructure work of all kinds.
Skills: k8s, golang, Terraform`

	p, err := e.Extract(text, nil, nil)
	require.NoError(t, err)

	assert.Contains(t, p.Skills, "kubernetes")
	assert.Contains(t, p.Skills, "go")
	assert.Contains(t, p.Skills, "terraform")
}

func TestExtract_SkillsSectionKeepsUnknownSkills(t *testing.T) {
	e := newTestExtractor()
	text := strings.Repeat("filler word ", 15) + "\nSkills: COBOL, Fortran"

	p, err := e.Extract(text, nil, nil)
	require.NoError(t, err)

	assert.Contains(t, p.Skills, "cobol")
	assert.Contains(t, p.Skills, "fortran")
}

func TestYearsOfExperience_ExplicitStatement(t *testing.T) {
	e := newTestExtractor()

	assert.Equal(t, 6, e.yearsOfExperience("6 years of experience as an analyst"))
	assert.Equal(t, 10, e.yearsOfExperience("10+ years experience in data"))
	assert.Equal(t, 0, e.yearsOfExperience("no numbers here"))
}

func TestYearsOfExperience_DateRanges(t *testing.T) {
	e := newTestExtractor()

	// 2019-present (7 years as of the pinned clock) plus 2015-2018 (3 years)
	text := "Acme Corp 2019 - present\nBeta Inc 2015-2018"
	assert.Equal(t, 10, e.yearsOfExperience(text))
}

func TestYearsOfExperience_TakesLargerEstimate(t *testing.T) {
	e := newTestExtractor()

	text := "3 years of experience\n2010 - 2020 at one company"
	assert.Equal(t, 10, e.yearsOfExperience(text))
}

func TestFirstPhone_SkipsBareYears(t *testing.T) {
	assert.Equal(t, "", firstPhone("worked 2019 to 2022"))
	assert.NotEmpty(t, firstPhone("call me at 555-123-4567"))
}

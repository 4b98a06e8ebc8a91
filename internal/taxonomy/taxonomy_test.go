package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_LoadsEmbeddedVocabulary(t *testing.T) {
	tax := Default()

	require.NotNil(t, tax)
	assert.NotEmpty(t, tax.Version)
	assert.Greater(t, tax.Len(), 100)
}

func TestLoad_ValidDocument(t *testing.T) {
	doc := `{
		"version": "test",
		"skills": [
			{"name": "Python", "category": "data_science"},
			{"name": "Kubernetes", "aliases": ["K8s"]}
		]
	}`

	tax, err := Load([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "test", tax.Version)
	assert.Equal(t, 2, tax.Len())
	// Names and aliases are lower-cased during indexing
	assert.Equal(t, "kubernetes", tax.Canonical("K8S"))
}

func TestLoad_RejectsMissingVersion(t *testing.T) {
	doc := `{"skills": [{"name": "python"}]}`

	_, err := Load([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version")
}

func TestLoad_RejectsEmptySkills(t *testing.T) {
	doc := `{"version": "test", "skills": []}`

	_, err := Load([]byte(doc))
	assert.Error(t, err)
}

func TestLoad_RejectsUnknownFields(t *testing.T) {
	doc := `{"version": "test", "skills": [{"name": "python", "weight": 3}]}`

	_, err := Load([]byte(doc))
	assert.Error(t, err)
}

func TestCanonical_AliasResolution(t *testing.T) {
	tax := Default()

	assert.Equal(t, "kubernetes", tax.Canonical("k8s"))
	assert.Equal(t, "javascript", tax.Canonical("JS"))
	assert.Equal(t, "scikit-learn", tax.Canonical("sklearn"))
	assert.Equal(t, "postgresql", tax.Canonical("Postgres"))
	// Unknown skills pass through trimmed and lower-cased
	assert.Equal(t, "cobol", tax.Canonical("  COBOL "))
}

func TestContains_SubstringForLongTerms(t *testing.T) {
	tax := Default()
	doc := Prepare("We are looking for someone with strong PostgreSQL and Tableau experience.")

	assert.True(t, tax.Contains(doc, "postgresql"))
	assert.True(t, tax.Contains(doc, "tableau"))
	assert.False(t, tax.Contains(doc, "python"))
}

func TestContains_AliasInText(t *testing.T) {
	tax := Default()
	doc := Prepare("Deploy services to k8s clusters and write React.js components.")

	assert.True(t, tax.Contains(doc, "kubernetes"))
	assert.True(t, tax.Contains(doc, "react"))
}

func TestContains_ShortTermsRequireWholeToken(t *testing.T) {
	tax := Default()

	// "r" appears inside many words; only a standalone token counts
	doc := Prepare("Our primary stack is Ruby and Rails.")
	assert.False(t, tax.Contains(doc, "r"))

	doc = Prepare("Experience with R, SQL and Python required.")
	assert.True(t, tax.Contains(doc, "r"))
	assert.True(t, tax.Contains(doc, "sql"))
}

func TestContains_SymbolTokens(t *testing.T) {
	tax := Default()
	doc := Prepare("Modern C++ codebase with some C# tooling.")

	assert.True(t, tax.Contains(doc, "c++"))
	assert.True(t, tax.Contains(doc, "c#"))
}

func TestContains_UnknownSkillMatchedLiterally(t *testing.T) {
	tax := Default()
	doc := Prepare("Looking for an Erlang developer.")

	assert.True(t, tax.Contains(doc, "erlang"))
	assert.False(t, tax.Contains(doc, "elixir"))
}

func TestFind_ReturnsSortedCanonicalSkills(t *testing.T) {
	tax := Default()
	doc := Prepare("Senior Data Scientist: Python, k8s, SQL, and Tableau dashboards.")

	found := tax.Find(doc)

	assert.Contains(t, found, "python")
	assert.Contains(t, found, "kubernetes")
	assert.Contains(t, found, "sql")
	assert.Contains(t, found, "tableau")
	assert.IsIncreasing(t, found)
}

func TestPrepare_TrimsSentencePunctuation(t *testing.T) {
	tax := Default()
	doc := Prepare("Skills: Go. Git.")

	assert.True(t, tax.Contains(doc, "go"))
	assert.True(t, tax.Contains(doc, "git"))
}

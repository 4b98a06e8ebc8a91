// Package letter generates application materials (cover letter, résumé
// bullets, application email) from a candidate profile and a scored match.
// Templates are embedded at compile time and parsed once.
package letter

import (
	"embed"
	"fmt"
	"strings"
	"sync"
	"text/template"
	"unicode"

	"github.com/cliffordnwanna/JOB-HUNTER/internal/match"
	"github.com/cliffordnwanna/JOB-HUNTER/internal/profile"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

// Kind selects which material to generate.
type Kind string

const (
	KindCover   Kind = "cover"
	KindBullets Kind = "bullets"
	KindEmail   Kind = "email"
)

// AllKinds lists the supported materials in presentation order.
func AllKinds() []Kind {
	return []Kind{KindCover, KindBullets, KindEmail}
}

// ParseKind maps a user-supplied name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindCover:
		return KindCover, nil
	case KindBullets:
		return KindBullets, nil
	case KindEmail:
		return KindEmail, nil
	}
	return "", fmt.Errorf("unknown letter kind %q (want cover, bullets, or email)", s)
}

var (
	parsedTemplates *template.Template
	parseOnce       sync.Once
	parseErr        error
)

// Generator renders application materials for one candidate.
type Generator struct {
	templates *template.Template
}

// NewGenerator parses the embedded templates. Parsing happens once per
// process; subsequent calls reuse the parsed set.
func NewGenerator() (*Generator, error) {
	parseOnce.Do(func() {
		parsedTemplates, parseErr = template.ParseFS(templateFiles, "templates/*.tmpl")
	})
	if parseErr != nil {
		return nil, fmt.Errorf("failed to parse letter templates: %w", parseErr)
	}
	return &Generator{templates: parsedTemplates}, nil
}

// view is the flattened data handed to the templates. All composition logic
// lives here so the templates stay plain text.
type view struct {
	Title        string
	Company      string
	Years        int
	TopSkills    string
	KeySkills    string
	SkillTriple  string
	PrimarySkill string
	PassionLine  string
	Email        string
	Phone        string
}

// Generate renders the material of the given kind for one match. Matched
// skills are preferred over the full profile skill list so the letter speaks
// to what the posting actually asks for.
func (g *Generator) Generate(kind Kind, prof *profile.CandidateProfile, res *match.MatchResult) (string, error) {
	if prof == nil {
		return "", fmt.Errorf("candidate profile is required")
	}
	if res == nil {
		return "", fmt.Errorf("match result is required")
	}

	var name string
	switch kind {
	case KindCover:
		name = "cover.tmpl"
	case KindBullets:
		name = "bullets.tmpl"
	case KindEmail:
		name = "email.tmpl"
	default:
		return "", fmt.Errorf("unknown letter kind %q", kind)
	}

	var sb strings.Builder
	if err := g.templates.ExecuteTemplate(&sb, name, buildView(prof, res)); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return sb.String(), nil
}

func buildView(prof *profile.CandidateProfile, res *match.MatchResult) view {
	skills := res.MatchedSkills
	if len(skills) == 0 {
		skills = prof.Skills
	}

	years := prof.ExperienceYears
	if years < 1 {
		years = 1
	}

	title := titleCase(res.Posting.Title)
	company := titleCase(res.Posting.Company)
	if title == "" {
		title = "advertised"
	}
	if company == "" {
		company = "your company"
	}

	return view{
		Title:        title,
		Company:      company,
		Years:        years,
		TopSkills:    humanJoin(firstN(skills, 5)),
		KeySkills:    humanJoin(firstN(skills, 3)),
		SkillTriple:  humanJoin(firstN(skills, 3)),
		PrimarySkill: primarySkill(skills),
		PassionLine:  passionLine(res.Posting.Title),
		Email:        prof.Email,
		Phone:        prof.Phone,
	}
}

// passionLine opens the second paragraph with a role-specific hook.
func passionLine(title string) string {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "data") || strings.Contains(lower, "analyst") || strings.Contains(lower, "analytics"):
		return "I am passionate about transforming raw data into actionable insights that drive business decisions."
	case strings.Contains(lower, "social media") || strings.Contains(lower, "marketing") || strings.Contains(lower, "content"):
		return "I am passionate about building engaged online communities and crafting content that resonates with audiences."
	case strings.Contains(lower, "engineer") || strings.Contains(lower, "developer"):
		return "I am passionate about building reliable, maintainable software that solves real problems."
	default:
		return "I am passionate about delivering high-quality work and continuously growing my expertise."
	}
}

func primarySkill(skills []string) string {
	if len(skills) == 0 {
		return "modern tools and workflows"
	}
	return skills[0]
}

// humanJoin renders a list as prose: "a", "a and b", "a, b, and c".
func humanJoin(items []string) string {
	switch len(items) {
	case 0:
		return "relevant tools and technologies"
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

// titleCase capitalizes the first letter of each word. Postings are stored
// lowercase; letters should not be.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// Package profile turns raw résumé text into the structured candidate profile
// consumed by the matching engine. Skills come from the taxonomy plus any
// explicit "Skills:" section; preferred titles and locations are direct user
// input and are never inferred from the text.
package profile

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cliffordnwanna/JOB-HUNTER/internal/taxonomy"
)

// minResumeTokens is the smallest résumé, in whitespace tokens, that can be
// matched meaningfully. Anything shorter fails extraction.
const minResumeTokens = 20

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`\+?\(?[0-9]{1,4}\)?[-\s.]?\(?[0-9]{1,4}\)?[-\s.]?[0-9]{1,9}`)

	skillsSection = regexp.MustCompile(`(?im)^\s*(?:technical\s+)?skills?\s*[:\-]\s*(.+)$`)

	yearsPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\+?\s*years?\s+(?:of\s+)?experience`),
		regexp.MustCompile(`experience[:\s]+(\d+)\+?\s*years?`),
		regexp.MustCompile(`(\d+)\+?\s*years?\s+(?:in|working|as)`),
	}
	yearRangePattern = regexp.MustCompile(`(20\d{2}|19\d{2})\s*[-–—]\s*(20\d{2}|19\d{2}|present|current)`)

	nonDigit = regexp.MustCompile(`\D`)
)

// CandidateProfile is the immutable per-run candidate description.
type CandidateProfile struct {
	Skills             []string `json:"skills"`
	PreferredTitles    []string `json:"preferred_titles,omitempty"`
	PreferredLocations []string `json:"preferred_locations,omitempty"`
	RawText            string   `json:"raw_text"`
	Email              string   `json:"email,omitempty"`
	Phone              string   `json:"phone,omitempty"`
	ExperienceYears    int      `json:"experience_years,omitempty"`
}

// Extractor builds CandidateProfiles against a fixed skill vocabulary.
type Extractor struct {
	tax *taxonomy.Taxonomy
	now time.Time
}

// NewExtractor returns an Extractor using the given vocabulary. A nil
// vocabulary falls back to the embedded default.
func NewExtractor(tax *taxonomy.Taxonomy) *Extractor {
	if tax == nil {
		tax = taxonomy.Default()
	}
	return &Extractor{tax: tax, now: time.Now()}
}

// Extract produces a CandidateProfile from raw résumé text. preferredTitles
// keep their given order; preferredLocations are treated as a set. Text with
// fewer than minResumeTokens whitespace tokens fails with ExtractionError.
func (e *Extractor) Extract(rawText string, preferredTitles, preferredLocations []string) (*CandidateProfile, error) {
	trimmed := strings.TrimSpace(rawText)
	tokens := len(strings.Fields(trimmed))
	if tokens < minResumeTokens {
		return nil, &ExtractionError{
			Message: "resume text is too short for matching",
			Tokens:  tokens,
		}
	}

	doc := taxonomy.Prepare(trimmed)
	skillSet := make(map[string]bool)
	for _, skill := range e.tax.Find(doc) {
		skillSet[skill] = true
	}
	for _, skill := range e.skillsFromSection(trimmed) {
		skillSet[skill] = true
	}

	skills := make([]string, 0, len(skillSet))
	for skill := range skillSet {
		skills = append(skills, skill)
	}
	sort.Strings(skills)

	return &CandidateProfile{
		Skills:             skills,
		PreferredTitles:    cleanTitles(preferredTitles),
		PreferredLocations: cleanLocations(preferredLocations),
		RawText:            trimmed,
		Email:              firstEmail(trimmed),
		Phone:              firstPhone(trimmed),
		ExperienceYears:    e.yearsOfExperience(trimmed),
	}, nil
}

// skillsFromSection parses explicit "Skills:" lines. Every listed item is a
// claimed skill, canonicalized through the vocabulary but kept even when the
// vocabulary does not know it.
func (e *Extractor) skillsFromSection(text string) []string {
	var skills []string
	for _, match := range skillsSection.FindAllStringSubmatch(text, -1) {
		for _, item := range strings.FieldsFunc(match[1], func(r rune) bool {
			return r == ',' || r == ';' || r == '|' || r == '•' || r == '·'
		}) {
			item = strings.TrimSpace(item)
			if item == "" || len(item) > 40 {
				continue
			}
			skills = append(skills, e.tax.Canonical(item))
		}
	}
	return skills
}

func cleanTitles(titles []string) []string {
	cleaned := make([]string, 0, len(titles))
	for _, title := range titles {
		title = strings.TrimSpace(title)
		if title != "" {
			cleaned = append(cleaned, title)
		}
	}
	return cleaned
}

func cleanLocations(locations []string) []string {
	seen := make(map[string]bool, len(locations))
	cleaned := make([]string, 0, len(locations))
	for _, loc := range locations {
		loc = strings.ToLower(strings.TrimSpace(loc))
		if loc == "" || seen[loc] {
			continue
		}
		seen[loc] = true
		cleaned = append(cleaned, loc)
	}
	return cleaned
}

func firstEmail(text string) string {
	return emailPattern.FindString(text)
}

// firstPhone returns the first candidate with at least seven digits; the
// loose pattern alone would happily match years and zip codes.
func firstPhone(text string) string {
	for _, candidate := range phonePattern.FindAllString(text, -1) {
		digits := nonDigit.ReplaceAllString(candidate, "")
		if len(digits) >= 7 {
			return strings.TrimSpace(candidate)
		}
	}
	return ""
}

// yearsOfExperience combines explicit "N years of experience" statements with
// summed employment date ranges, keeping the larger estimate.
func (e *Extractor) yearsOfExperience(text string) int {
	lower := strings.ToLower(text)
	years := 0

	for _, pattern := range yearsPatterns {
		for _, match := range pattern.FindAllStringSubmatch(lower, -1) {
			if n, err := strconv.Atoi(match[1]); err == nil && n > years {
				years = n
			}
		}
	}

	ranges := yearRangePattern.FindAllStringSubmatch(lower, -1)
	if len(ranges) > 0 {
		total := 0
		for _, match := range ranges {
			start, err := strconv.Atoi(match[1])
			if err != nil {
				continue
			}
			end := e.now.Year()
			if match[2] != "present" && match[2] != "current" {
				if parsed, err := strconv.Atoi(match[2]); err == nil {
					end = parsed
				}
			}
			if end > start {
				total += end - start
			}
		}
		if total > years {
			years = total
		}
	}

	return years
}

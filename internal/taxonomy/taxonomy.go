// Package taxonomy provides the versioned skill vocabulary used for candidate
// and posting skill matching. A taxonomy maps canonical skill names to their
// surface-form aliases; the default vocabulary is embedded at compile time and
// a custom one can be supplied as a JSON file validated against the same schema.
package taxonomy

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"unicode"

	_ "embed"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON string

//go:embed taxonomy.json
var defaultJSON []byte

// shortTermLimit is the alias length at or below which matching requires a
// whole-token hit. Substring matching single letters ("r") or short acronyms
// ("ai", "cv") would fire on almost any text.
const shortTermLimit = 3

// Skill is a single canonical vocabulary entry.
type Skill struct {
	Name     string   `json:"name"`
	Category string   `json:"category,omitempty"`
	Aliases  []string `json:"aliases,omitempty"`
}

// Taxonomy is an immutable skill vocabulary. Build one with Load, LoadFile or
// Default; the zero value matches nothing.
type Taxonomy struct {
	Version string  `json:"version"`
	Skills  []Skill `json:"skills"`

	// canonical name -> all lower-cased terms that identify it (name + aliases)
	terms map[string][]string
	// lower-cased alias or name -> canonical name
	byAlias map[string]string
}

var (
	defaultOnce sync.Once
	defaultTax  *Taxonomy
)

// Default returns the embedded vocabulary. The embedded asset is validated the
// same way a user-supplied file is; a broken asset is a build defect, so this
// panics instead of returning an error.
func Default() *Taxonomy {
	defaultOnce.Do(func() {
		t, err := Load(defaultJSON)
		if err != nil {
			panic(fmt.Sprintf("embedded taxonomy is invalid: %v", err))
		}
		defaultTax = t
	})
	return defaultTax
}

// Load parses and indexes a taxonomy document, validating it against the
// taxonomy JSON Schema first.
func Load(data []byte) (*Taxonomy, error) {
	schemaLoader := gojsonschema.NewStringLoader(schemaJSON)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("failed to validate taxonomy: %w", err)
	}
	if !result.Valid() {
		var sb strings.Builder
		sb.WriteString("invalid taxonomy document:")
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			sb.WriteString(fmt.Sprintf("\n  %s: %s", field, desc.Description()))
		}
		return nil, fmt.Errorf("%s", sb.String())
	}

	var t Taxonomy
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy: %w", err)
	}

	t.index()
	return &t, nil
}

// LoadFile reads and parses a taxonomy JSON file.
func LoadFile(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy file: %w", err)
	}
	return Load(data)
}

// index builds the lookup maps. Names and aliases are lower-cased and
// deduplicated; the first entry wins when two canonicals claim one alias.
func (t *Taxonomy) index() {
	t.terms = make(map[string][]string, len(t.Skills))
	t.byAlias = make(map[string]string, len(t.Skills)*2)

	for i := range t.Skills {
		name := strings.ToLower(strings.TrimSpace(t.Skills[i].Name))
		if name == "" {
			continue
		}
		t.Skills[i].Name = name

		seen := map[string]bool{}
		terms := make([]string, 0, 1+len(t.Skills[i].Aliases))
		for _, term := range append([]string{name}, t.Skills[i].Aliases...) {
			term = strings.ToLower(strings.TrimSpace(term))
			if term == "" || seen[term] {
				continue
			}
			seen[term] = true
			terms = append(terms, term)
			if _, taken := t.byAlias[term]; !taken {
				t.byAlias[term] = name
			}
		}
		if _, dup := t.terms[name]; !dup {
			t.terms[name] = terms
		}
	}
}

// Canonical maps a skill name or alias to its canonical form. Unknown names
// come back trimmed and lower-cased so callers can carry skills the
// vocabulary has never heard of.
func (t *Taxonomy) Canonical(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	if t.byAlias != nil {
		if canonical, ok := t.byAlias[lower]; ok {
			return canonical
		}
	}
	return lower
}

// Len reports the number of canonical skills in the vocabulary.
func (t *Taxonomy) Len() int {
	return len(t.terms)
}

// Document is free text prepared for repeated skill lookups.
type Document struct {
	lower  string
	tokens map[string]bool
}

// Prepare lowers and tokenizes text once so that matching many skills against
// the same posting or résumé does not re-scan it.
func Prepare(text string) *Document {
	lower := strings.ToLower(text)

	tokens := make(map[string]bool)
	for _, tok := range strings.FieldsFunc(lower, isTokenBreak) {
		tok = strings.Trim(tok, ".")
		if tok != "" {
			tokens[tok] = true
		}
	}

	return &Document{lower: lower, tokens: tokens}
}

// isTokenBreak splits on everything outside letters, digits and the handful
// of symbols that appear inside real skill tokens ("c++", "c#", "node.js").
func isTokenBreak(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return false
	}
	switch r {
	case '+', '#', '.':
		return false
	}
	return true
}

// contains reports whether a single lower-cased term occurs in the document.
// Terms at or below shortTermLimit must match a whole token; longer terms
// match as substrings, which keeps multi-word skills working.
func (d *Document) contains(term string) bool {
	if len(term) <= shortTermLimit {
		return d.tokens[term]
	}
	return strings.Contains(d.lower, term)
}

// Contains reports whether the given skill, under any of its aliases, occurs
// in the document. Skills unknown to the vocabulary are matched literally.
func (t *Taxonomy) Contains(doc *Document, skill string) bool {
	canonical := t.Canonical(skill)
	if terms, ok := t.terms[canonical]; ok {
		for _, term := range terms {
			if doc.contains(term) {
				return true
			}
		}
		return false
	}
	return doc.contains(canonical)
}

// Find returns every canonical skill present in the document, sorted.
func (t *Taxonomy) Find(doc *Document) []string {
	found := make([]string, 0, 16)
	for name, terms := range t.terms {
		for _, term := range terms {
			if doc.contains(term) {
				found = append(found, name)
				break
			}
		}
	}
	sort.Strings(found)
	return found
}

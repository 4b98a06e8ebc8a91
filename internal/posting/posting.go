// Package posting defines the uniform job posting model shared by every
// source, and the normalizer that produces it from raw scraped records.
package posting

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// Source identifies the job board a posting came from.
type Source string

const (
	SourceRemoteOK       Source = "remoteok"
	SourceRemotive       Source = "remotive"
	SourceJobicy         Source = "jobicy"
	SourceArbeitnow      Source = "arbeitnow"
	SourceHimalayas      Source = "himalayas"
	SourceWeWorkRemotely Source = "weworkremotely"
	SourceManual         Source = "manual"
)

// AllSources lists every fetchable board, in the order fetches are reported.
func AllSources() []Source {
	return []Source{
		SourceRemoteOK,
		SourceRemotive,
		SourceJobicy,
		SourceArbeitnow,
		SourceHimalayas,
		SourceWeWorkRemotely,
	}
}

// ParseSource validates a user-supplied source name.
func ParseSource(name string) (Source, error) {
	s := Source(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range AllSources() {
		if s == known {
			return s, nil
		}
	}
	if s == SourceManual {
		return s, nil
	}
	return "", fmt.Errorf("unknown source %q", name)
}

// JobPosting is the normalized posting every downstream component consumes.
// Title, company and location are stored lower-cased; ID is the dedup
// identity and is shared by duplicates across sources.
type JobPosting struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	PostedAt    *time.Time `json:"posted_at,omitempty"`
	Source      Source     `json:"source"`
	URL         string     `json:"url"`
}

// Identity derives the deduplication key from normalized title, company and
// URL host. Two postings with equal identities describe the same logical job
// even when different boards formatted them differently.
func Identity(title, company, rawURL string) string {
	key := collapseSpace(strings.ToLower(title)) + "|" +
		collapseSpace(strings.ToLower(company)) + "|" +
		urlHost(rawURL)
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// Identity recomputes the posting's dedup key from its current fields.
func (p *JobPosting) Identity() string {
	return Identity(p.Title, p.Company, p.URL)
}

// urlHost extracts the lower-cased host, dropping a leading "www.". Malformed
// URLs contribute an empty host rather than failing identity derivation.
func urlHost(rawURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	host := strings.ToLower(parsed.Hostname())
	return strings.TrimPrefix(host, "www.")
}

var spaceRun = regexp.MustCompile(`\s+`)

func collapseSpace(s string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

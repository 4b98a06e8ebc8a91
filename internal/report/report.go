// Package report renders ranked match results for people and machines: a
// boxed terminal summary, CSV for spreadsheets and JSON for downstream tools.
// Every rendering carries the run diagnostics so skipped postings are never
// silently invisible.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/cliffordnwanna/JOB-HUNTER/internal/match"
)

const (
	// boxWidth is the width of formatted output boxes.
	boxWidth = 72
	// maxSkillsShown caps the matched-skills list per result line.
	maxSkillsShown = 6
)

// Printer renders human-readable output for the terminal.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a Printer writing to the given writer.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResults outputs the ranked matches with their per-factor breakdowns.
func (p *Printer) PrintResults(results []*match.MatchResult) {
	if len(results) == 0 {
		p.printBox("RANKED MATCHES", "No matching postings found.")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Top %d matches:\n", len(results)))

	for i, res := range results {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("#%d  %.1f  %s — %s\n", i+1, res.CompositeScore, res.Posting.Title, res.Posting.Company))
		sb.WriteString(fmt.Sprintf("    %s | %s | %s\n", res.Posting.Source, orUnknown(res.Posting.Location), res.Posting.URL))
		sb.WriteString("    " + factorLine(res) + "\n")
		if len(res.MatchedSkills) > 0 {
			skills := res.MatchedSkills
			if len(skills) > maxSkillsShown {
				skills = skills[:maxSkillsShown]
			}
			sb.WriteString(fmt.Sprintf("    skills: %s\n", strings.Join(skills, ", ")))
		}
	}

	p.printBox("RANKED MATCHES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExplanation outputs the full additive breakdown for one result.
func (p *Printer) PrintExplanation(res *match.MatchResult) {
	if res == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s — %s\n", res.Posting.Title, res.Posting.Company))
	sb.WriteString(fmt.Sprintf("Composite: %.2f / 100\n\n", res.CompositeScore))

	for _, c := range res.Explanation {
		sb.WriteString(fmt.Sprintf("%-10s score %.3f × weight %.2f = %6.2f points\n",
			c.Factor, c.Score, c.Weight, c.Points))
	}
	if res.SemanticDegraded {
		sb.WriteString("\nsemantic factor unavailable; weight redistributed")
	}

	p.printBox("SCORE BREAKDOWN", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDiagnostics outputs the run-level accounting: what was fetched, what
// was merged and what was skipped, with reasons.
func (p *Printer) PrintDiagnostics(d *match.Diagnostics) {
	if d == nil {
		return
	}

	var sb strings.Builder

	if len(d.SourceCounts) > 0 {
		sources := make([]string, 0, len(d.SourceCounts))
		for s := range d.SourceCounts {
			sources = append(sources, s)
		}
		sort.Strings(sources)
		sb.WriteString("Fetched:\n")
		for _, s := range sources {
			sb.WriteString(fmt.Sprintf("  %-16s %d\n", s, d.SourceCounts[s]))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Duplicates merged:  %d\n", d.DuplicatesMerged))
	sb.WriteString(fmt.Sprintf("Postings scored:    %d\n", d.Scored))
	sb.WriteString(fmt.Sprintf("Postings skipped:   %d\n", len(d.Skipped)))
	for _, s := range d.Skipped {
		sb.WriteString(fmt.Sprintf("  [%s] %s\n", s.Source, s.Reason))
	}

	if len(d.EmbeddingFailures) > 0 {
		sb.WriteString(fmt.Sprintf("Embedding failures: %d (scored without semantic factor)\n", len(d.EmbeddingFailures)))
	}

	p.printBox("RUN DIAGNOSTICS", strings.TrimSuffix(sb.String(), "\n"))
}

// factorLine compacts the five sub-scores into one display line.
func factorLine(res *match.MatchResult) string {
	return fmt.Sprintf("skill %.2f | semantic %.2f | title %.2f | location %.2f | recency %.2f",
		res.SkillScore, res.SemanticScore, res.TitleScore, res.LocationScore, res.RecencyScore)
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown location"
	}
	return s
}

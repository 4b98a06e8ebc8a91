package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cliffordnwanna/JOB-HUNTER/internal/match"
	"github.com/cliffordnwanna/JOB-HUNTER/internal/posting"
	"github.com/cliffordnwanna/JOB-HUNTER/internal/profile"
	"github.com/cliffordnwanna/JOB-HUNTER/internal/report"
	"github.com/cliffordnwanna/JOB-HUNTER/internal/semantic"
	"github.com/cliffordnwanna/JOB-HUNTER/internal/taxonomy"
)

var matchCommand = &cobra.Command{
	Use:   "match",
	Short: "Score saved postings against a saved profile",
	Long:  "Offline scoring: reads a profile (from 'jobhunter profile') and normalized postings (from 'jobhunter fetch'), ranks them and writes the results as JSON. No network access unless an API key is configured.",
	RunE:  runMatch,
}

var (
	matchProfile  string
	matchPostings string
	matchOut      string
	matchTopN     int
)

func init() {
	matchCommand.Flags().StringVar(&matchProfile, "profile", "profile.json", "Path to a saved candidate profile")
	matchCommand.Flags().StringVar(&matchPostings, "postings", "postings.json", "Path to saved normalized postings")
	matchCommand.Flags().StringVarP(&matchOut, "out", "o", "results.json", "Output file for ranked results")
	matchCommand.Flags().IntVarP(&matchTopN, "top", "n", 0, "Number of results to report")

	rootCmd.AddCommand(matchCommand)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("top") {
		cfg.TopN = matchTopN
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	var prof profile.CandidateProfile
	if err := readJSONFile(matchProfile, &prof); err != nil {
		return err
	}
	var postings []*posting.JobPosting
	if err := readJSONFile(matchPostings, &postings); err != nil {
		return err
	}

	tax := taxonomy.Default()
	if cfg.TaxonomyFile != "" {
		tax, err = taxonomy.LoadFile(cfg.TaxonomyFile)
		if err != nil {
			return err
		}
	}
	engine, err := match.NewEngine(cfg.Weights, tax)
	if err != nil {
		return err
	}

	var embedder semantic.Embedder
	if cfg.APIKey != "" {
		embedder, err = semantic.NewGeminiEmbedder(ctx, cfg.APIKey, "")
		if err != nil {
			return err
		}
	} else {
		embedder = semantic.NewLocalEmbedder()
	}
	defer embedder.Close() //nolint:errcheck

	ranker, err := match.NewRanker(engine, embedder, match.RankerConfig{
		TopN:        cfg.TopN,
		Concurrency: cfg.Concurrency,
	}, log)
	if err != nil {
		return err
	}

	diags := match.NewDiagnostics()
	results, err := ranker.Rank(ctx, &prof, postings, diags)
	if err != nil {
		return err
	}

	printer := report.NewPrinter(os.Stdout)
	printer.PrintResults(results)
	printer.PrintDiagnostics(diags)

	if err := writeJSONFile(matchOut, report.Export{Results: results, Diagnostics: diags}); err != nil {
		return err
	}
	fmt.Printf("Results written to %s\n", matchOut)
	return nil
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cliffordnwanna/JOB-HUNTER/internal/boards"
	"github.com/cliffordnwanna/JOB-HUNTER/internal/logger"
	"github.com/cliffordnwanna/JOB-HUNTER/internal/posting"
)

var fetchCommand = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch and normalize postings without scoring them",
	Long:  "Queries the configured boards concurrently, normalizes the raw records and writes the postings as JSON for later offline matching.",
	RunE:  runFetch,
}

var (
	fetchQuery   string
	fetchSources []string
	fetchOut     string
)

func init() {
	fetchCommand.Flags().StringVarP(&fetchQuery, "query", "q", "", "Search query sent to boards with server-side search")
	fetchCommand.Flags().StringSliceVar(&fetchSources, "sources", nil, "Boards to query (default: all)")
	fetchCommand.Flags().StringVarP(&fetchOut, "out", "o", "postings.json", "Output file for normalized postings")

	rootCmd.AddCommand(fetchCommand)
}

func runFetch(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("query") {
		cfg.Query = fetchQuery
	}
	if cmd.Flags().Changed("sources") {
		cfg.Sources = fetchSources
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	sources, err := cfg.ParsedSources()
	if err != nil {
		return err
	}
	client := boards.NewClient(boards.Options{}, log)
	selected, err := boards.ForSources(client, sources)
	if err != nil {
		return err
	}

	fetched := boards.FetchAll(ctx, selected, cfg.Query, log)
	for _, failure := range fetched.Failures {
		fmt.Printf("Warning: %s failed: %s\n", failure.Source, logger.TruncateForLog(failure.Error(), 160))
	}

	normalizer := posting.NewNormalizer()
	postings := make([]*posting.JobPosting, 0, len(fetched.Raws))
	skipped := 0
	for _, raw := range fetched.Raws {
		p, err := normalizer.Normalize(raw)
		if err != nil {
			skipped++
			continue
		}
		postings = append(postings, p)
	}

	if err := writeJSONFile(fetchOut, postings); err != nil {
		return err
	}
	fmt.Printf("Wrote %d postings to %s (%d skipped as malformed)\n", len(postings), fetchOut, skipped)
	return nil
}

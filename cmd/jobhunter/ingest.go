package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cliffordnwanna/JOB-HUNTER/internal/boards"
	"github.com/cliffordnwanna/JOB-HUNTER/internal/posting"
)

var ingestCommand = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest a single job posting from an arbitrary URL",
	Long:  "Fetches one job-posting page, extracts its main text and writes it as a normalized posting that 'jobhunter match' and 'jobhunter letter' accept alongside board results. Use --use-browser for pages that render their content with JavaScript.",
	RunE:  runIngest,
}

var (
	ingestURL        string
	ingestUseBrowser bool
	ingestOut        string
	ingestAppend     bool
)

func init() {
	ingestCommand.Flags().StringVar(&ingestURL, "url", "", "Job posting URL (required)")
	ingestCommand.Flags().BoolVar(&ingestUseBrowser, "use-browser", false, "Render the page in headless Chrome when static extraction finds too little text")
	ingestCommand.Flags().StringVarP(&ingestOut, "out", "o", "postings.json", "Output file for the posting")
	ingestCommand.Flags().BoolVar(&ingestAppend, "append", false, "Append to an existing postings file instead of overwriting it")
	_ = ingestCommand.MarkFlagRequired("url")

	rootCmd.AddCommand(ingestCommand)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = ingestUseBrowser
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	client := boards.NewClient(boards.Options{}, log)
	raw, err := client.IngestURL(ctx, ingestURL, cfg.UseBrowser)
	if err != nil {
		return err
	}

	p, err := posting.NewNormalizer().Normalize(*raw)
	if err != nil {
		return err
	}

	postings := []*posting.JobPosting{p}
	if ingestAppend {
		var existing []*posting.JobPosting
		if err := readJSONFile(ingestOut, &existing); err == nil {
			postings = append(existing, p)
		}
	}

	if err := writeJSONFile(ingestOut, postings); err != nil {
		return err
	}
	fmt.Printf("Ingested %q (%s), wrote %d postings to %s\n", p.Title, p.ID, len(postings), ingestOut)
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/cliffordnwanna/JOB-HUNTER/internal/config"
	"github.com/cliffordnwanna/JOB-HUNTER/internal/letter"
	"github.com/cliffordnwanna/JOB-HUNTER/internal/match"
	"github.com/cliffordnwanna/JOB-HUNTER/internal/pipeline"
	"github.com/cliffordnwanna/JOB-HUNTER/internal/report"
)

var huntCommand = &cobra.Command{
	Use:   "hunt",
	Short: "Run the full pipeline: fetch, score, rank and report",
	Long: `Extracts your candidate profile from a resume, fetches postings from the
configured boards concurrently, scores every posting and prints the ranked
matches with a per-factor breakdown. Flags override config file values.`,
	RunE: runHunt,
}

var (
	huntResume    string
	huntQuery     string
	huntTitles    []string
	huntLocations []string
	huntSources   []string
	huntExclude   []string
	huntMaxAge    int
	huntMinScore  float64
	huntTopN      int
	huntEmbedTO   time.Duration
	huntCSVOut    string
	huntJSONOut   string
	huntNoInput   bool
)

func init() {
	huntCommand.Flags().StringVarP(&huntResume, "resume", "r", "", "Path to resume file (.pdf, .docx, .txt)")
	huntCommand.Flags().StringVarP(&huntQuery, "query", "q", "", "Search query sent to boards with server-side search")
	huntCommand.Flags().StringSliceVar(&huntTitles, "titles", nil, "Preferred job titles, best title match wins")
	huntCommand.Flags().StringSliceVar(&huntLocations, "locations", nil, "Preferred locations; remote-friendly postings always score full")
	huntCommand.Flags().StringSliceVar(&huntSources, "sources", nil, "Boards to query (default: all)")
	huntCommand.Flags().StringSliceVar(&huntExclude, "exclude", nil, "Keywords that disqualify a posting by title (whole-word match)")
	huntCommand.Flags().IntVar(&huntMaxAge, "max-age-days", 0, "Drop postings older than this many days (0 = keep all)")
	huntCommand.Flags().Float64Var(&huntMinScore, "min-score", 0, "Drop results scoring below this composite (0 = keep all)")
	huntCommand.Flags().IntVarP(&huntTopN, "top", "n", 0, "Number of results to report")
	huntCommand.Flags().DurationVar(&huntEmbedTO, "embed-timeout", 0, "Total budget for embedding calls, e.g. 30s (0 = unbounded)")
	huntCommand.Flags().StringVar(&huntCSVOut, "csv", "", "Also export results to this CSV file")
	huntCommand.Flags().StringVarP(&huntJSONOut, "out", "o", "", "Also export results and diagnostics to this JSON file")
	huntCommand.Flags().BoolVar(&huntNoInput, "no-input", false, "Skip the interactive action menu")

	rootCmd.AddCommand(huntCommand)
}

func runHunt(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyHuntOverrides(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Resume == "" {
		return fmt.Errorf("--resume is required (via flag or config)")
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

	res, err := pipeline.Run(ctx, pipeline.RunOptions{
		ResumePath:         cfg.Resume,
		PreferredTitles:    cfg.Titles,
		PreferredLocations: cfg.Locations,
		Query:              cfg.Query,
		Sources:            sources,
		ExcludeKeywords:    cfg.ExcludeKeywords,
		MaxAgeDays:         cfg.MaxAgeDays,
		MinScore:           cfg.MinScore,
		Weights:            cfg.Weights,
		TopN:               cfg.TopN,
		Concurrency:        cfg.Concurrency,
		EmbedTimeout:       cfg.EmbedTimeout,
		APIKey:             cfg.APIKey,
		DatabaseURL:        cfg.DatabaseURL,
		TaxonomyFile:       cfg.TaxonomyFile,
		Verbose:            cfg.Verbose,
		Logger:             log,
	})
	if err != nil {
		return err
	}

	printer := report.NewPrinter(os.Stdout)
	printer.PrintResults(res.Results)
	printer.PrintDiagnostics(res.Diagnostics)

	if huntCSVOut != "" {
		if err := exportCSV(huntCSVOut, res.Results); err != nil {
			return err
		}
		fmt.Printf("Results written to %s\n", huntCSVOut)
	}
	if huntJSONOut != "" {
		if err := writeJSONFile(huntJSONOut, report.Export{Results: res.Results, Diagnostics: res.Diagnostics}); err != nil {
			return err
		}
		fmt.Printf("Results written to %s\n", huntJSONOut)
	}

	if huntNoInput || len(res.Results) == 0 {
		return nil
	}
	return interactiveLoop(res)
}

func applyHuntOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("resume") {
		cfg.Resume = huntResume
	}
	if cmd.Flags().Changed("query") {
		cfg.Query = huntQuery
	}
	if cmd.Flags().Changed("titles") {
		cfg.Titles = huntTitles
	}
	if cmd.Flags().Changed("locations") {
		cfg.Locations = huntLocations
	}
	if cmd.Flags().Changed("sources") {
		cfg.Sources = huntSources
	}
	if cmd.Flags().Changed("exclude") {
		cfg.ExcludeKeywords = huntExclude
	}
	if cmd.Flags().Changed("max-age-days") {
		cfg.MaxAgeDays = huntMaxAge
	}
	if cmd.Flags().Changed("min-score") {
		cfg.MinScore = huntMinScore
	}
	if cmd.Flags().Changed("top") {
		cfg.TopN = huntTopN
	}
	if cmd.Flags().Changed("embed-timeout") {
		cfg.EmbedTimeout = huntEmbedTO
	}
}

const (
	actionExplain = "Show score breakdown"
	actionCover   = "Generate cover letter"
	actionBullets = "Generate resume bullets"
	actionEmail   = "Generate application email"
	actionOpen    = "Open posting URL"
	actionQuit    = "Quit"
)

var errQuit = errors.New("quit requested")

// interactiveLoop offers per-result actions until the user quits.
func interactiveLoop(res *pipeline.RunResult) error {
	actions := promptui.Select{
		Label: "What next?",
		Items: []string{actionExplain, actionCover, actionBullets, actionEmail, actionOpen, actionQuit},
	}

	for {
		_, action, err := actions.Run()
		if err != nil {
			// Ctrl-C / EOF ends the session, not the command with an error
			return nil
		}
		if err := handleAction(action, res); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			fmt.Printf("Error: %v\n", err)
		}
	}
}

func handleAction(action string, res *pipeline.RunResult) error {
	if action == actionQuit {
		return errQuit
	}

	selected, err := pickResult(res.Results)
	if err != nil {
		return err
	}

	switch action {
	case actionExplain:
		report.NewPrinter(os.Stdout).PrintExplanation(selected)
		return nil
	case actionCover:
		return printLetter(letter.KindCover, res, selected)
	case actionBullets:
		return printLetter(letter.KindBullets, res, selected)
	case actionEmail:
		return printLetter(letter.KindEmail, res, selected)
	case actionOpen:
		return openURL(selected.Posting.URL)
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func pickResult(results []*match.MatchResult) (*match.MatchResult, error) {
	items := make([]string, len(results))
	for i, r := range results {
		items[i] = fmt.Sprintf("%5.1f  %s — %s", r.CompositeScore, r.Posting.Title, r.Posting.Company)
	}
	picker := promptui.Select{Label: "Pick a posting", Items: items, Size: 10}
	idx, _, err := picker.Run()
	if err != nil {
		return nil, err
	}
	return results[idx], nil
}

func printLetter(kind letter.Kind, res *pipeline.RunResult, selected *match.MatchResult) error {
	gen, err := letter.NewGenerator()
	if err != nil {
		return err
	}
	out, err := gen.Generate(kind, res.Profile, selected)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(out)
	return nil
}

func openURL(url string) error {
	if url == "" {
		return fmt.Errorf("posting has no URL")
	}
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	fmt.Printf("Opened %s\n", url)
	return nil
}

func exportCSV(path string, results []*match.MatchResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck
	return report.WriteCSV(f, results)
}

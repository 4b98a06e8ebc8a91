package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/cliffordnwanna/JOB-HUNTER/internal/store"
)

var runsCommand = &cobra.Command{
	Use:   "runs",
	Short: "List archived hunt runs",
	Long:  "Shows the hunts archived in the configured database, newest first. Pass --id to look up a single run.",
	RunE:  runRuns,
}

var (
	runsLimit int
	runsID    string
	runsOut   string
)

func init() {
	runsCommand.Flags().IntVar(&runsLimit, "limit", 20, "Maximum number of runs to list")
	runsCommand.Flags().StringVar(&runsID, "id", "", "Show a single run by its ID")
	runsCommand.Flags().StringVarP(&runsOut, "out", "o", "", "Also export the runs as JSON to this file")

	rootCmd.AddCommand(runsCommand)
}

func runRuns(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("no database configured: set database_url in the config or DATABASE_URL in the environment")
	}

	st, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer st.Close()

	var runs []store.Run
	if runsID != "" {
		id, err := uuid.Parse(runsID)
		if err != nil {
			return fmt.Errorf("invalid run id %q: %w", runsID, err)
		}
		run, err := st.GetRun(ctx, id)
		if err != nil {
			return err
		}
		if run == nil {
			return fmt.Errorf("run %s not found", runsID)
		}
		runs = []store.Run{*run}
	} else {
		runs, err = st.ListRuns(ctx, runsLimit)
		if err != nil {
			return err
		}
	}

	fmt.Print(formatRuns(runs))

	if runsOut != "" {
		if err := writeJSONFile(runsOut, runs); err != nil {
			return err
		}
		fmt.Printf("Runs written to %s\n", runsOut)
	}
	return nil
}

// formatRuns renders archived runs as an aligned table, one line per run.
func formatRuns(runs []store.Run) string {
	if len(runs) == 0 {
		return "No archived runs found.\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-36s  %-19s  %6s  %6s  %7s  %s\n",
		"ID", "CREATED", "SCORED", "MERGED", "SKIPPED", "QUERY"))
	for _, run := range runs {
		sb.WriteString(fmt.Sprintf("%-36s  %-19s  %6d  %6d  %7d  %s\n",
			run.ID, run.CreatedAt.Format("2006-01-02 15:04:05"),
			run.Scored, run.DuplicatesMerged, run.Skipped, run.Query))
	}
	return sb.String()
}

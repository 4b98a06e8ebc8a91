// Package main provides the jobhunter CLI: fetch remote job postings, match
// them against a résumé and produce ranked, explainable results.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jobhunter",
	Short: "Match remote job postings against your resume",
	Long:  "jobhunter fetches postings from public remote-job boards, scores each one against your resume across skill, semantic, title, location and recency factors, and reports an explainable ranking.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cliffordnwanna/JOB-HUNTER/internal/profile"
	"github.com/cliffordnwanna/JOB-HUNTER/internal/resume"
	"github.com/cliffordnwanna/JOB-HUNTER/internal/taxonomy"
)

var profileCommand = &cobra.Command{
	Use:   "profile",
	Short: "Extract a candidate profile from a resume",
	Long:  "Reads a resume file (.pdf, .docx or plain text), extracts skills, contact details and experience, and writes the structured profile as JSON.",
	RunE:  runProfile,
}

var (
	profileResume    string
	profileTitles    []string
	profileLocations []string
	profileOut       string
)

func init() {
	profileCommand.Flags().StringVarP(&profileResume, "resume", "r", "", "Path to resume file (required)")
	profileCommand.Flags().StringSliceVar(&profileTitles, "titles", nil, "Preferred job titles")
	profileCommand.Flags().StringSliceVar(&profileLocations, "locations", nil, "Preferred locations")
	profileCommand.Flags().StringVarP(&profileOut, "out", "o", "profile.json", "Output file for the profile")
	_ = profileCommand.MarkFlagRequired("resume")

	rootCmd.AddCommand(profileCommand)
}

func runProfile(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tax := taxonomy.Default()
	if cfg.TaxonomyFile != "" {
		tax, err = taxonomy.LoadFile(cfg.TaxonomyFile)
		if err != nil {
			return err
		}
	}

	text, err := resume.ExtractText(profileResume)
	if err != nil {
		return err
	}
	prof, err := profile.NewExtractor(tax).Extract(text, profileTitles, profileLocations)
	if err != nil {
		return err
	}

	if err := writeJSONFile(profileOut, prof); err != nil {
		return err
	}
	fmt.Printf("Extracted %d skills, wrote profile to %s\n", len(prof.Skills), profileOut)
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cliffordnwanna/JOB-HUNTER/internal/letter"
	"github.com/cliffordnwanna/JOB-HUNTER/internal/profile"
	"github.com/cliffordnwanna/JOB-HUNTER/internal/report"
)

var letterCommand = &cobra.Command{
	Use:   "letter",
	Short: "Generate a cover letter, resume bullets or an application email",
	Long:  "Personalizes an application material for one ranked posting, using the saved profile and the results of a previous 'jobhunter hunt' or 'jobhunter match' run.",
	RunE:  runLetter,
}

var (
	letterProfile   string
	letterResults   string
	letterPostingID string
	letterKind      string
)

func init() {
	letterCommand.Flags().StringVar(&letterProfile, "profile", "profile.json", "Path to a saved candidate profile")
	letterCommand.Flags().StringVar(&letterResults, "results", "results.json", "Path to saved ranked results")
	letterCommand.Flags().StringVar(&letterPostingID, "posting-id", "", "ID of the posting to write for (required)")
	letterCommand.Flags().StringVar(&letterKind, "kind", "cover", "Material to generate: cover, bullets or email")
	_ = letterCommand.MarkFlagRequired("posting-id")

	rootCmd.AddCommand(letterCommand)
}

func runLetter(_ *cobra.Command, _ []string) error {
	kind, err := letter.ParseKind(letterKind)
	if err != nil {
		return err
	}

	var prof profile.CandidateProfile
	if err := readJSONFile(letterProfile, &prof); err != nil {
		return err
	}
	var export report.Export
	if err := readJSONFile(letterResults, &export); err != nil {
		return err
	}

	for _, res := range export.Results {
		if res.Posting.ID == letterPostingID {
			gen, err := letter.NewGenerator()
			if err != nil {
				return err
			}
			out, err := gen.Generate(kind, &prof, res)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		}
	}
	return fmt.Errorf("posting %q not found in %s", letterPostingID, letterResults)
}

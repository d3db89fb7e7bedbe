package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/forgefit-hq/wodforge/internal/pipeline"
)

var (
	wodArtifact string
	wodDate     string
)

var wodCmd = &cobra.Command{
	Use:   "wod",
	Short: "Print the workout of the day",
	Long:  "Selects today's workout from a published artifact by the date-keyed rotation, so every consumer of the same artifact sees the same workout.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		artifact := wodArtifact
		if artifact == "" {
			artifact = cfg.Output.Path
		}

		day := time.Now()
		if wodDate != "" {
			var err error
			day, err = time.Parse("2006-01-02", wodDate)
			if err != nil {
				return eris.Wrap(err, "parse date")
			}
		}

		records, err := pipeline.ReadArtifact(artifact)
		if err != nil {
			return eris.Wrap(err, "read artifact")
		}

		wod := pipeline.WorkoutOfTheDay(records, day)
		if wod == nil {
			return eris.New("artifact is empty")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(wod)
	},
}

func init() {
	wodCmd.Flags().StringVar(&wodArtifact, "artifact", "", "artifact to select from (default from config)")
	wodCmd.Flags().StringVar(&wodDate, "date", "", "date to select for, YYYY-MM-DD (default today)")
	rootCmd.AddCommand(wodCmd)
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/forgefit-hq/wodforge/internal/pipeline"
)

var (
	reportsArtifact string
	reportsDir      string
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Write needs-enrichment and needs-revalidation reports",
	Long:  "Classifies a published artifact and writes two JSON reports: workouts with missing or placeholder fields, and workouts whose sourced content needs manual review.",
	RunE: func(cmd *cobra.Command, args []string) error {
		artifact := reportsArtifact
		if artifact == "" {
			artifact = cfg.Output.Path
		}
		dir := reportsDir
		if dir == "" {
			dir = cfg.Output.ReportDir
		}

		records, err := pipeline.ReadArtifact(artifact)
		if err != nil {
			return eris.Wrap(err, "read artifact")
		}

		if err := pipeline.WriteNeedsReports(records, dir); err != nil {
			return eris.Wrap(err, "write reports")
		}

		fmt.Fprintln(os.Stderr, "Reports written to", filepath.Clean(dir))
		return nil
	},
}

func init() {
	reportsCmd.Flags().StringVar(&reportsArtifact, "artifact", "", "artifact to classify (default from config)")
	reportsCmd.Flags().StringVar(&reportsDir, "dir", "", "report output directory (default from config)")
	rootCmd.AddCommand(reportsCmd)
}

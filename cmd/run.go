package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/forgefit-hq/wodforge/internal/pipeline"
)

var (
	runInput   string
	runOutput  string
	runBackend string
	runDryRun  bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full enrichment pipeline on a workout export",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if runBackend != "" {
			cfg.Enrichment.Backend = runBackend
		}
		if runOutput != "" {
			cfg.Output.Path = runOutput
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		if st != nil {
			defer st.Close() //nolint:errcheck
			if err := st.Migrate(ctx); err != nil {
				return eris.Wrap(err, "migrate store")
			}
		}

		tables, err := pipeline.LoadTables(cfg.Tables.Path)
		if err != nil {
			return eris.Wrap(err, "load tables")
		}

		gen := initGenerator()
		zap.L().Info("pipeline starting",
			zap.String("input", runInput),
			zap.String("backend", gen.Name()),
		)

		p := pipeline.New(cfg, st, gen, tables)

		result, err := p.Run(ctx, runInput)
		if err != nil {
			return eris.Wrap(err, "pipeline run")
		}

		for _, rej := range result.Rejected {
			zap.L().Warn("gate dropped workout",
				zap.Int("id", int(rej.ID)),
				zap.String("name", rej.Name),
				zap.Strings("reasons", rej.Reasons),
			)
		}

		if runDryRun {
			zap.L().Info("dry run, artifact not written", zap.Int("records", len(result.Records)))
		} else {
			if err := pipeline.WriteArtifact(result.Records, cfg.Output.Path, cfg.Output.SnapshotDir); err != nil {
				return eris.Wrap(err, "write artifact")
			}
		}

		// Print summary JSON to stdout
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result.Summary)
	},
}

func init() {
	runCmd.Flags().StringVar(&runInput, "input", "", "workout CSV or XLSX export (required)")
	runCmd.Flags().StringVar(&runOutput, "output", "", "artifact path (default from config)")
	runCmd.Flags().StringVar(&runBackend, "backend", "", "enrichment backend: stub, remote, or auto")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "run the pipeline without writing the artifact")
	_ = runCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(runCmd)
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/forgefit-hq/wodforge/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "wodforge",
	Short: "Workout data enrichment pipeline",
	Long:  "Ingests workout spreadsheets, fills missing coaching content via templates or Claude, scrubs formatting garbage, and publishes a quality-gated JSON artifact.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

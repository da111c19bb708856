// Package root contains the root command for the application.
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"card-ingest/internal/config"
	"card-ingest/internal/logging"
)

var (
	// Log is the shared logger instance for commands.
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// Cfg is the loaded configuration, available after PersistentPreRunE.
	Cfg *config.Config

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "card-ingest",
		Short: "Normalize card statement exports and record categorized expenses.",
		Long: `card-ingest loads bank and card statement exports, normalizes them to a
single transaction shape, resolves a category for each merchant and records
the expenses idempotently. Re-running over the same statement never creates
duplicates.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv(logrus.StandardLogger())
			cfg, err := config.InitializeConfig()
			if err != nil {
				return err
			}
			Cfg = cfg
			Log = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
			return nil
		},
	}
)

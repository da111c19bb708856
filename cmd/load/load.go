// Package load handles statement ingestion for one source type.
package load

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"card-ingest/cmd/common"
	"card-ingest/cmd/root"
	"card-ingest/internal/logging"
)

var (
	sourceType string
	filePath   string
	folder     string
	unattended bool
)

// Cmd represents the load command.
var Cmd = &cobra.Command{
	Use:   "load",
	Short: "Load statement exports and record categorized expenses",
	Long: `Load one or more statement exports for a single source type, resolve a
category for each transaction and record the expenses. Files are processed
independently: a malformed file is reported and the rest continue.

Example:
  card-ingest load --type rogers --filepath export.csv
  card-ingest load --type amex --folder statements/ --unattended`,
	RunE: loadFunc,
}

func init() {
	Cmd.Flags().StringVarP(&sourceType, "type", "t", "", "Source type of the export (required)")
	Cmd.Flags().StringVarP(&filePath, "filepath", "f", "", "Path to a single export file")
	Cmd.Flags().StringVarP(&folder, "folder", "d", "", "Folder of export files, processed in name order")
	Cmd.Flags().BoolVarP(&unattended, "unattended", "u", false, "Never prompt; count and skip transactions that need manual categorization")
	_ = Cmd.MarkFlagRequired("type")
}

func loadFunc(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := root.Cfg
	if cfg.Ingest.Unattended {
		unattended = true
	}

	pipeline, err := common.BuildPipeline(ctx, cfg, root.Log, unattended)
	if err != nil {
		return err
	}
	defer pipeline.Close()

	requiresFile, err := pipeline.Registry.RequiresFile(sourceType)
	if err != nil {
		return err
	}

	var inputs []string
	if requiresFile {
		inputs, err = common.EnumerateInputs(filePath, folder)
		if err != nil {
			return err
		}
	}

	report, runErr := pipeline.Processor.ProcessFiles(ctx, sourceType, inputs)
	fmt.Print(report.Summary())

	if unattended {
		if err := pipeline.Notifier.Notify(report.Summary()); err != nil {
			root.Log.WithError(err).Warn("Failed to send notification")
		}
	}
	if report.ManualInterventions > 0 {
		text := fmt.Sprintf("card-ingest: %d %s transaction(s) need manual categorization",
			report.ManualInterventions, sourceType)
		if err := pipeline.Notifier.Notify(text); err != nil {
			root.Log.WithError(err).Warn("Failed to send notification")
		}
	}

	if runErr != nil {
		return runErr
	}
	if report.HasFailures() {
		root.Log.Error("Some inputs failed",
			logging.Field{Key: logging.FieldCount, Value: report.FailedCount()})
		return fmt.Errorf("%d of %d input(s) failed", report.FailedCount(), len(report.Results))
	}
	return nil
}

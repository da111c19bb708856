// Package ledger seeds the expense store from pre-existing ledger workbooks.
package ledger

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"card-ingest/cmd/common"
	"card-ingest/cmd/root"
	"card-ingest/internal/ledgeradapter"
)

var (
	filePath   string
	folder     string
	unattended bool
)

// Cmd represents the ledger command. It is the load command pinned to the
// ledger workbook source, kept separate because seeding is a one-time
// operation with its own inputs.
var Cmd = &cobra.Command{
	Use:   "ledger",
	Short: "Seed expenses from pre-existing ledger workbooks",
	Long: `Seed the expense store from ledger workbooks kept before this tool
existed. Chequing workbooks (file names containing "tdcheq") have their
internal transfer rows dropped; credit workbooks reconcile transfer-marked
rows against already recorded expenses.

Example:
  card-ingest ledger --folder ledgers/`,
	RunE: ledgerFunc,
}

func init() {
	Cmd.Flags().StringVarP(&filePath, "filepath", "f", "", "Path to a single ledger workbook")
	Cmd.Flags().StringVarP(&folder, "folder", "d", "", "Folder of ledger workbooks, processed in name order")
	Cmd.Flags().BoolVarP(&unattended, "unattended", "u", false, "Never prompt; count and skip transactions that need manual categorization")
}

func ledgerFunc(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := root.Cfg
	if cfg.Ingest.Unattended {
		unattended = true
	}

	inputs, err := common.EnumerateInputs(filePath, folder)
	if err != nil {
		return err
	}

	pipeline, err := common.BuildPipeline(ctx, cfg, root.Log, unattended)
	if err != nil {
		return err
	}
	defer pipeline.Close()

	// Historical workbooks never tracked subcategories; manual fallback
	// selects a category alone.
	pipeline.Ingestor.CategoryOnlyPrompts = true

	report, runErr := pipeline.Processor.ProcessFiles(ctx, ledgeradapter.SourceType, inputs)
	fmt.Print(report.Summary())

	if runErr != nil {
		return runErr
	}
	if report.HasFailures() {
		return fmt.Errorf("%d of %d workbook(s) failed", report.FailedCount(), len(report.Results))
	}
	return nil
}

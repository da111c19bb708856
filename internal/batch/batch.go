// Package batch orchestrates multi-file ingestion runs. Each input is
// loaded and ingested independently; one malformed file never stops the
// others, and the run ends with a consolidated report.
package batch

import (
	"context"
	"fmt"
	"strings"

	"card-ingest/internal/adapter"
	"card-ingest/internal/ingest"
	"card-ingest/internal/ingesterror"
	"card-ingest/internal/logging"
	"card-ingest/internal/models"
)

// FileResult records what happened to one input.
type FileResult struct {
	Path         string
	SourceType   string
	Transactions int
	Inserted     int
	Skipped      map[models.Outcome]int
	RowErrors    []error

	// Err is set when the input failed as a whole, before or during
	// ingestion. Row-level taxonomy errors land in RowErrors instead.
	Err error
}

// Failed reports whether the input failed as a whole.
func (r FileResult) Failed() bool {
	return r.Err != nil
}

// Report consolidates one run.
type Report struct {
	Results []FileResult

	// ManualInterventions is the number of rows skipped in unattended mode
	// because no automatic resolution was possible.
	ManualInterventions int
}

// TotalTransactions counts canonical transactions across all loaded inputs.
func (r Report) TotalTransactions() int {
	total := 0
	for _, result := range r.Results {
		total += result.Transactions
	}
	return total
}

// TotalInserted counts expenses written across all inputs.
func (r Report) TotalInserted() int {
	total := 0
	for _, result := range r.Results {
		total += result.Inserted
	}
	return total
}

// SucceededCount counts inputs processed without a file-level failure.
func (r Report) SucceededCount() int {
	count := 0
	for _, result := range r.Results {
		if !result.Failed() {
			count++
		}
	}
	return count
}

// FailedCount counts inputs that failed as a whole.
func (r Report) FailedCount() int {
	return len(r.Results) - r.SucceededCount()
}

// HasFailures reports whether any input failed as a whole.
func (r Report) HasFailures() bool {
	return r.FailedCount() > 0
}

// Summary renders a human-readable run summary, one line per input.
func (r Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Processed %d file(s): %d succeeded, %d failed, %d expense(s) inserted\n",
		len(r.Results), r.SucceededCount(), r.FailedCount(), r.TotalInserted())
	for _, result := range r.Results {
		name := result.Path
		if name == "" {
			name = result.SourceType
		}
		if result.Failed() {
			fmt.Fprintf(&b, "  FAIL %s: %v\n", name, result.Err)
			continue
		}
		fmt.Fprintf(&b, "  OK   %s: %d transaction(s), %d inserted", name, result.Transactions, result.Inserted)
		if len(result.RowErrors) > 0 {
			fmt.Fprintf(&b, ", %d row error(s)", len(result.RowErrors))
		}
		b.WriteString("\n")
	}
	if r.ManualInterventions > 0 {
		fmt.Fprintf(&b, "  %d transaction(s) need manual categorization\n", r.ManualInterventions)
	}
	return b.String()
}

// Processor runs a sequence of inputs through one adapter type and a shared
// ingestor. Inputs are processed strictly in order, so mappings taught on an
// earlier file apply to later ones in the same run.
type Processor struct {
	registry *adapter.Registry
	ingestor *ingest.Ingestor
	logger   logging.Logger
}

// NewProcessor wires a batch processor.
func NewProcessor(registry *adapter.Registry, ingestor *ingest.Ingestor, logger logging.Logger) *Processor {
	if logger == nil {
		logger = &logging.MockLogger{}
	}
	return &Processor{registry: registry, ingestor: ingestor, logger: logger}
}

// ProcessFiles ingests every input for one source type and returns the
// consolidated report.
//
// A file that fails to load is recorded and the next file is attempted. A
// row whose taxonomy lookup fails is recorded and the next row is attempted.
// Store connectivity loss and context cancellation abort the whole run; the
// partial report is still returned.
func (p *Processor) ProcessFiles(ctx context.Context, sourceType string, inputs []string) (Report, error) {
	entry, err := p.registry.Get(sourceType)
	if err != nil {
		return Report{}, err
	}

	// Online sources take no file inputs; one pull per run.
	if !entry.RequiresFile {
		inputs = []string{""}
	}

	report := Report{}
	for _, path := range inputs {
		if err := ctx.Err(); err != nil {
			report.ManualInterventions = p.ingestor.ManualInterventions
			return report, err
		}

		result := p.processOne(ctx, entry, sourceType, path)
		report.Results = append(report.Results, result)

		if ingesterror.IsStoreUnavailable(result.Err) {
			report.ManualInterventions = p.ingestor.ManualInterventions
			return report, result.Err
		}
		if ctx.Err() != nil {
			report.ManualInterventions = p.ingestor.ManualInterventions
			return report, ctx.Err()
		}
	}

	report.ManualInterventions = p.ingestor.ManualInterventions
	return report, nil
}

func (p *Processor) processOne(ctx context.Context, entry adapter.Entry, sourceType, path string) FileResult {
	result := FileResult{
		Path:       path,
		SourceType: sourceType,
		Skipped:    make(map[models.Outcome]int),
	}

	fileLog := p.logger.WithFields(
		logging.Field{Key: logging.FieldSource, Value: sourceType},
		logging.Field{Key: logging.FieldFile, Value: path},
	)
	fileLog.Info("Loading statement")

	transactions, err := entry.New().Load(path)
	if err != nil {
		fileLog.WithError(err).Error("Failed to load statement")
		result.Err = err
		return result
	}
	result.Transactions = len(transactions)
	fileLog.Info("Loaded transactions",
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})

	for _, tx := range transactions {
		outcome, err := p.ingestor.Ingest(ctx, tx)
		if err != nil {
			if ingesterror.IsTaxonomyLookup(err) {
				fileLog.WithError(err).Error("Skipping transaction with unknown taxonomy name",
					logging.Field{Key: logging.FieldMerchant, Value: tx.Merchant})
				result.RowErrors = append(result.RowErrors, err)
				continue
			}
			result.Err = err
			return result
		}
		switch outcome.Outcome {
		case models.OutcomeInserted:
			result.Inserted++
		default:
			result.Skipped[outcome.Outcome]++
		}
	}

	return result
}

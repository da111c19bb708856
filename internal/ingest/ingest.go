// Package ingest implements the idempotent ingestion engine: the natural-key
// dedup check, the cost-agnostic reimbursement re-check, transfer
// reconciliation, the insert with taxonomy name-to-id resolution, and the
// optional teach step that appends newly confirmed mappings to the
// learned-match tables.
package ingest

import (
	"context"
	"fmt"

	"card-ingest/internal/ingesterror"
	"card-ingest/internal/logging"
	"card-ingest/internal/models"
	"card-ingest/internal/prompt"
	"card-ingest/internal/refdata"
	"card-ingest/internal/resolver"
	"card-ingest/internal/store"
)

// Result reports what happened to one transaction.
type Result struct {
	Outcome  models.Outcome
	Decision models.CategoryDecision
}

// Ingestor processes canonical transactions one at a time. It is strictly
// sequential: a mapping taught while handling one row must be visible to the
// next row's resolution in the same run.
type Ingestor struct {
	expenses store.ExpenseStore
	taxonomy store.TaxonomyStore
	learned  store.LearnedMatchStore
	resolver *resolver.Resolver
	prompter prompt.Prompter
	tables   *refdata.Tables
	logger   logging.Logger

	// Unattended disables prompting; rows that would need a human are
	// counted and skipped instead.
	Unattended bool

	// CategoryOnlyPrompts switches the manual fallback to category
	// selection without a subcategory. Ledger seeding runs this way: the
	// historical workbooks never tracked subcategories.
	CategoryOnlyPrompts bool

	// ManualInterventions counts rows skipped in unattended mode because
	// no automatic resolution was possible. Surfaced to the orchestrator
	// for alerting.
	ManualInterventions int
}

// New wires an Ingestor. prompter may be nil only when unattended is true.
func New(
	expenses store.ExpenseStore,
	taxonomy store.TaxonomyStore,
	learned store.LearnedMatchStore,
	res *resolver.Resolver,
	prompter prompt.Prompter,
	tables *refdata.Tables,
	logger logging.Logger,
	unattended bool,
) *Ingestor {
	if logger == nil {
		logger = &logging.MockLogger{}
	}
	return &Ingestor{
		expenses:   expenses,
		taxonomy:   taxonomy,
		learned:    learned,
		resolver:   res,
		prompter:   prompter,
		tables:     tables,
		logger:     logger,
		Unattended: unattended,
	}
}

// Ingest runs the per-transaction pipeline.
//
// Store connectivity errors propagate and abort the batch. A
// TaxonomyLookupError is fatal to this row only; callers record it and
// continue with the next row.
func (in *Ingestor) Ingest(ctx context.Context, tx models.Transaction) (Result, error) {
	if err := tx.Validate(); err != nil {
		return Result{}, err
	}

	rowLog := in.logger.WithFields(
		logging.Field{Key: logging.FieldMerchant, Value: tx.Merchant},
		logging.Field{Key: logging.FieldDate, Value: tx.Date.Format(models.DateLayout)},
		logging.Field{Key: logging.FieldCost, Value: tx.Cost.StringFixed(2)},
	)

	// Transfer rows never categorize. A matching existing expense is a
	// retroactive reversal and gets deleted; either way the row itself is
	// not inserted.
	if tx.IsTransfer() {
		return in.reconcileTransfer(ctx, tx, rowLog)
	}

	// Natural-key dedup: (date, merchant, cost) already recorded means the
	// row was seen in a previous pass.
	exists, err := in.expenses.Exists(ctx, tx.Date, tx.Merchant, tx.Cost)
	if err != nil {
		return Result{}, err
	}
	if exists {
		rowLog.Debug("Already recorded, skipping",
			logging.Field{Key: logging.FieldOutcome, Value: models.OutcomeSkippedDuplicate})
		return Result{Outcome: models.OutcomeSkippedDuplicate}, nil
	}

	decision, resolved, err := in.resolver.Resolve(ctx, tx)
	if err != nil {
		if !ingesterror.IsConflict(err) {
			return Result{}, err
		}
		// Ambiguous learned match: never guess, fall through to manual.
		rowLog.WithError(err).Warn("Ambiguous learned match, falling back to manual input")
		resolved = false
	}

	if !resolved {
		if in.Unattended {
			in.ManualInterventions++
			rowLog.Info("Manual intervention required, skipping in unattended mode",
				logging.Field{Key: logging.FieldOutcome, Value: models.OutcomeSkippedManual})
			return Result{Outcome: models.OutcomeSkippedManual}, nil
		}
		decision, err = in.promptForDecision(ctx, tx)
		if err != nil {
			return Result{}, err
		}
	}

	// Rows filed under the ignore category are deliberately never
	// recorded. The teach offer still stands so future rows skip
	// automatically.
	if in.tables.IsIgnoreCategory(decision.Category) {
		rowLog.Info("Ignored category, not recording",
			logging.Field{Key: logging.FieldOutcome, Value: models.OutcomeSkippedIgnored})
		if err := in.maybeTeach(ctx, tx, decision); err != nil {
			return Result{}, err
		}
		return Result{Outcome: models.OutcomeSkippedIgnored, Decision: decision}, nil
	}

	// Reimbursements may be recorded at a revised amount across passes, so
	// re-check existence ignoring cost before inserting.
	if in.isReimbursement(tx, decision) {
		recorded, err := in.expenses.ExistsForDate(ctx, tx.Date, tx.Merchant)
		if err != nil {
			return Result{}, err
		}
		if recorded {
			rowLog.Info("Record already exists for this date and merchant, skipping",
				logging.Field{Key: logging.FieldOutcome, Value: models.OutcomeSkippedReimbursement})
			return Result{Outcome: models.OutcomeSkippedReimbursement, Decision: decision}, nil
		}
	}

	if err := in.insert(ctx, tx, decision); err != nil {
		return Result{}, err
	}
	rowLog.Info("Inserted expense",
		logging.Field{Key: logging.FieldCategory, Value: decision.Category},
		logging.Field{Key: logging.FieldSubcat, Value: decision.Subcategory},
		logging.Field{Key: logging.FieldProvenance, Value: decision.Provenance})

	if err := in.maybeTeach(ctx, tx, decision); err != nil {
		return Result{}, err
	}

	return Result{Outcome: models.OutcomeInserted, Decision: decision}, nil
}

// maybeTeach runs the teach step when it applies: only manually decided
// rows, only attended, and never for merchants on the no-teach list
// (e-transfer counterparties differ every time; a learned mapping for the
// shared merchant string would be wrong).
func (in *Ingestor) maybeTeach(ctx context.Context, tx models.Transaction, decision models.CategoryDecision) error {
	if decision.Provenance != models.ProvenanceManual || in.Unattended {
		return nil
	}
	if in.tables.IsNoTeachMerchant(tx.Merchant) {
		return nil
	}
	return in.teach(ctx, tx, decision)
}

func (in *Ingestor) reconcileTransfer(ctx context.Context, tx models.Transaction, rowLog logging.Logger) (Result, error) {
	exists, err := in.expenses.Exists(ctx, tx.Date, tx.Merchant, tx.Cost)
	if err != nil {
		return Result{}, err
	}
	if exists {
		id, err := in.expenses.IDFor(ctx, tx.Date, tx.Merchant, tx.Cost)
		if err == nil {
			err = in.expenses.Delete(ctx, id)
		}
		if err != nil {
			// The row is skipped regardless of the delete outcome.
			rowLog.WithError(err).Warn("Failed to delete reversed expense")
		} else {
			rowLog.Info("Deleted expense reversed by transfer row")
		}
	}
	return Result{Outcome: models.OutcomeSkippedTransfer}, nil
}

func (in *Ingestor) isReimbursement(tx models.Transaction, decision models.CategoryDecision) bool {
	if decision.Subcategory != "" && decision.Subcategory == in.tables.ReimbursementSubcategory {
		return true
	}
	return in.tables.IsReimbursementMerchant(tx.Merchant)
}

func (in *Ingestor) promptForDecision(ctx context.Context, tx models.Transaction) (models.CategoryDecision, error) {
	if in.prompter == nil {
		return models.CategoryDecision{}, fmt.Errorf("no prompter configured: %w", ingesterror.ErrManualRequired)
	}

	if in.CategoryOnlyPrompts {
		return in.promptForCategory(ctx, tx)
	}

	subcategories, err := in.taxonomy.SubcategoriesWithCategory(ctx)
	if err != nil {
		return models.CategoryDecision{}, err
	}

	in.prompter.Announce(tx.String())
	subcategoryID, err := in.prompter.SelectSubcategory(subcategories)
	if err != nil {
		return models.CategoryDecision{}, err
	}

	category, subcategory, err := in.taxonomy.NamesForSubcategoryID(ctx, subcategoryID)
	if err != nil {
		return models.CategoryDecision{}, err
	}

	return models.CategoryDecision{
		Category:    category,
		Subcategory: subcategory,
		Provenance:  models.ProvenanceManual,
	}, nil
}

// promptForCategory is the category-only manual fallback used when seeding
// from ledger workbooks.
func (in *Ingestor) promptForCategory(ctx context.Context, tx models.Transaction) (models.CategoryDecision, error) {
	categories, err := in.taxonomy.Categories(ctx)
	if err != nil {
		return models.CategoryDecision{}, err
	}

	in.prompter.Announce(tx.String())
	categoryID, err := in.prompter.SelectCategory(categories)
	if err != nil {
		return models.CategoryDecision{}, err
	}

	for _, c := range categories {
		if c.ID == categoryID {
			return models.CategoryDecision{
				Category:   c.Name,
				Provenance: models.ProvenanceManual,
			}, nil
		}
	}
	return models.CategoryDecision{}, fmt.Errorf("selected category id %d not in taxonomy", categoryID)
}

// insert resolves names to ids against the current taxonomy and writes the
// expense row. Ids are never cached across runs. Curated pairs without a
// subcategory insert under the category alone.
func (in *Ingestor) insert(ctx context.Context, tx models.Transaction, decision models.CategoryDecision) error {
	if decision.Subcategory == "" {
		categoryID, err := in.taxonomy.CategoryIDForName(ctx, decision.Category)
		if err != nil {
			return err
		}
		return in.expenses.Insert(ctx, tx.Date, tx.Merchant, tx.Cost, categoryID, nil)
	}

	subcategoryID, err := in.taxonomy.SubcategoryIDForName(ctx, decision.Subcategory)
	if err != nil {
		return err
	}
	categoryID, err := in.taxonomy.CategoryIDForSubcategory(ctx, subcategoryID)
	if err != nil {
		return err
	}
	return in.expenses.Insert(ctx, tx.Date, tx.Merchant, tx.Cost, categoryID, &subcategoryID)
}

func (in *Ingestor) teach(ctx context.Context, tx models.Transaction, decision models.CategoryDecision) error {
	learn, err := in.prompter.Confirm("Add to auto_match table?")
	if err != nil {
		return err
	}
	if !learn {
		return nil
	}

	substring, err := in.prompter.ReadSubstring(tx.Merchant)
	if err != nil {
		return err
	}
	if substring != "" {
		return in.learned.InsertSubstring(ctx, substring, decision.Category, decision.Subcategory)
	}
	return in.learned.InsertExact(ctx, tx.Merchant, decision.Category, decision.Subcategory)
}

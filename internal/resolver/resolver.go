// Package resolver implements the multi-stage category resolution for
// canonical transactions: static reference tables first, then the learned
// exact-match table, then the learned substring table, and finally a manual
// fallback signalled to the caller.
package resolver

import (
	"context"

	"card-ingest/internal/ingesterror"
	"card-ingest/internal/logging"
	"card-ingest/internal/models"
	"card-ingest/internal/refdata"
	"card-ingest/internal/store"
)

// Resolver decides a (category, subcategory) pair for a transaction.
type Resolver struct {
	tables   *refdata.Tables
	taxonomy store.TaxonomyStore
	learned  store.LearnedMatchStore
	logger   logging.Logger
}

// New creates a Resolver over the given reference tables, taxonomy and
// learned-match store.
func New(tables *refdata.Tables, taxonomy store.TaxonomyStore, learned store.LearnedMatchStore, logger logging.Logger) *Resolver {
	if logger == nil {
		logger = &logging.MockLogger{}
	}
	return &Resolver{
		tables:   tables,
		taxonomy: taxonomy,
		learned:  learned,
		logger:   logger,
	}
}

// Resolve runs the resolution stages in precedence order. The boolean is
// false when no stage matched and the caller must obtain a human decision.
//
// A CategorizationConflictError means an ambiguous learned match; it is
// fatal to this transaction's auto-resolution only and callers degrade to
// manual input. Store errors propagate unchanged and abort the batch.
func (r *Resolver) Resolve(ctx context.Context, tx models.Transaction) (models.CategoryDecision, bool, error) {
	// Entirely hint-driven sources resolve to a constant pair and never
	// consult merchant text.
	if decision, ok := r.tables.FixedPair(tx.SourceType); ok {
		return decision, true, nil
	}

	// Stage 1: static reference exact match on the issuer-supplied label.
	if tx.IssuerCategory != "" {
		if decision, ok := r.tables.LookupIssuerCategory(tx.SourceType, tx.IssuerCategory); ok {
			r.logger.Debug("Resolved from issuer category reference",
				logging.Field{Key: logging.FieldMerchant, Value: tx.Merchant},
				logging.Field{Key: logging.FieldCategory, Value: decision.Category})
			return decision, true, nil
		}
	}

	// Curated merchant-substring references are source-scoped and static,
	// so they rank with stage 1, ahead of the learned tables.
	if decision, ok := r.tables.LookupMerchantSubstring(tx.SourceType, tx.Merchant); ok {
		return decision, true, nil
	}

	// An issuer hint that names a taxonomy category verbatim resolves to
	// that category alone. Ledger workbooks carry their historical account
	// code this way and must seed without a human per row.
	if tx.IssuerCategory != "" {
		_, err := r.taxonomy.CategoryIDForName(ctx, tx.IssuerCategory)
		if err == nil {
			r.logger.Debug("Resolved issuer hint as category name",
				logging.Field{Key: logging.FieldMerchant, Value: tx.Merchant},
				logging.Field{Key: logging.FieldCategory, Value: tx.IssuerCategory})
			return models.CategoryDecision{
				Category:   tx.IssuerCategory,
				Provenance: models.ProvenanceIssuerReference,
			}, true, nil
		}
		if !ingesterror.IsTaxonomyLookup(err) {
			return models.CategoryDecision{}, false, err
		}
	}

	// Stage 2: learned exact match, verbatim as stored.
	exact, err := r.learned.ExactMatches(ctx, tx.Merchant)
	if err != nil {
		return models.CategoryDecision{}, false, err
	}
	if len(exact) > 1 {
		return models.CategoryDecision{}, false, conflict(tx.Merchant, "exact", exact)
	}
	if len(exact) == 1 {
		return models.CategoryDecision{
			Category:    exact[0].Category,
			Subcategory: exact[0].Subcategory,
			Provenance:  models.ProvenanceLearnedExact,
		}, true, nil
	}

	// Stage 3: learned substring match against the lowercased merchant.
	subs, err := r.learned.SubstringMatches(ctx, tx.Merchant)
	if err != nil {
		return models.CategoryDecision{}, false, err
	}
	if len(subs) > 1 {
		return models.CategoryDecision{}, false, conflict(tx.Merchant, "substring", subs)
	}
	if len(subs) == 1 {
		return models.CategoryDecision{
			Category:    subs[0].Category,
			Subcategory: subs[0].Subcategory,
			Provenance:  models.ProvenanceLearnedSub,
		}, true, nil
	}

	// Stage 4: manual.
	return models.CategoryDecision{}, false, nil
}

func conflict(merchant, table string, matches []store.LearnedMatch) error {
	candidates := make([]string, 0, len(matches))
	for _, m := range matches {
		candidates = append(candidates, m.Category+"/"+m.Subcategory)
	}
	return &ingesterror.CategorizationConflictError{
		Merchant:   merchant,
		Table:      table,
		Candidates: candidates,
	}
}

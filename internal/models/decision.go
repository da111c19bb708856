package models

// Provenance tags record which resolution stage produced a decision.
type Provenance string

const (
	ProvenanceExactReference  Provenance = "exact-reference"
	ProvenanceIssuerReference Provenance = "issuer-category-reference"
	ProvenanceLearnedExact    Provenance = "learned-exact"
	ProvenanceLearnedSub      Provenance = "learned-substring"
	ProvenanceManual          Provenance = "manual"
)

// CategoryDecision is the output of category resolution: a category and
// subcategory pair identified by name. Names are the stable key; numeric ids
// are a storage-layer accident resolved at insert time.
type CategoryDecision struct {
	Category    string
	Subcategory string
	Provenance  Provenance
}

// Outcome classifies what the ingestion engine did with one transaction.
type Outcome string

const (
	// OutcomeInserted means a new expense row was written.
	OutcomeInserted Outcome = "inserted"

	// OutcomeSkippedDuplicate means the natural key (date, merchant, cost)
	// already existed.
	OutcomeSkippedDuplicate Outcome = "skipped-duplicate"

	// OutcomeSkippedReimbursement means the cost-agnostic re-check found a
	// prior row for (date, merchant), guarding against double-booking a
	// reimbursement recorded at a revised amount.
	OutcomeSkippedReimbursement Outcome = "skipped-reimbursement"

	// OutcomeSkippedTransfer means the row carried a transfer marker and
	// went through reconciliation instead of insertion.
	OutcomeSkippedTransfer Outcome = "skipped-transfer"

	// OutcomeSkippedManual means the row needed a human decision and none
	// was available (unattended mode).
	OutcomeSkippedManual Outcome = "skipped-manual-intervention"

	// OutcomeSkippedIgnored means the row resolved to the ignore category
	// and was deliberately not recorded.
	OutcomeSkippedIgnored Outcome = "skipped-ignored"
)

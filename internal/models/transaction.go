// Package models defines the canonical transaction contract that every
// statement adapter must produce, plus the category decision and ingestion
// outcome types shared across the pipeline.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the canonical date rendering used in logs, prompts and the
// expense store. Transactions carry calendar dates only; any time component
// is an adapter bug.
const DateLayout = "2006-01-02"

// Transaction is the normalized record all statement adapters emit.
//
// Adapters are responsible for filtering issuer bookkeeping rows (payments
// to self, balance-transfer noise, reward redemptions) and for normalizing
// sign conventions before emission: Cost is always positive and represents
// money spent.
type Transaction struct {
	// Date is the posting/booking date, truncated to midnight UTC.
	Date time.Time

	// Merchant is the free-text description, already stripped of
	// issuer-internal control tokens.
	Merchant string

	// Cost is the signed decimal amount. Invariant: strictly positive.
	Cost decimal.Decimal

	// IssuerCategory is the category label supplied by the issuer's own
	// export, empty when the source provides none.
	IssuerCategory string

	// SourceType identifies which adapter produced the row. It selects
	// which reference table applies during resolution.
	SourceType string

	// TransferMarker is the raw sub-code carried only by the ledger
	// workbook source. Rows marked as transfers bypass categorization and
	// trigger reconciliation instead.
	TransferMarker string
}

// IsTransfer reports whether the row carries transfer semantics and must go
// through the reconciliation path instead of categorization.
func (t Transaction) IsTransfer() bool {
	return strings.Contains(t.TransferMarker, "Tfr=")
}

// Validate checks the canonical invariants. A transaction is meaningless
// without all of date, merchant, cost and source type.
func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return fmt.Errorf("transaction has no date")
	}
	if strings.TrimSpace(t.Merchant) == "" {
		return fmt.Errorf("transaction has no merchant")
	}
	if !t.Cost.IsPositive() {
		return fmt.Errorf("transaction cost must be positive, got %s", t.Cost)
	}
	if t.SourceType == "" {
		return fmt.Errorf("transaction has no source type")
	}
	return nil
}

// String renders the transaction the way the interactive prompt announces it.
func (t Transaction) String() string {
	return fmt.Sprintf("Transaction on %s at %s for %s",
		t.Date.Format(DateLayout), t.Merchant, t.Cost.StringFixed(2))
}

// DateOnly truncates ts to a calendar date at midnight UTC.
func DateOnly(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a date string in the given layout and truncates it to a
// calendar date.
func ParseDate(layout, value string) (time.Time, error) {
	ts, err := time.Parse(layout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, err
	}
	return DateOnly(ts), nil
}

// ParseCost parses an amount string into a positive decimal, stripping a
// leading currency symbol and thousands separators. The caller decides what
// to do with the sign.
func ParseCost(value string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(value)
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	return decimal.NewFromString(cleaned)
}

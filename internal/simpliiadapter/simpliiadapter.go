// Package simpliiadapter loads Simplii Financial CSV exports. The Visa and
// debit exports share one layout, with padded header names preserved
// verbatim. The Visa card is used exclusively for restaurants and declares
// a fixed category override; the debit account additionally filters bill
// payments and internal transfer rows.
package simpliiadapter

import (
	"strings"

	"card-ingest/internal/common"
	"card-ingest/internal/ingesterror"
	"card-ingest/internal/models"
)

const (
	VisaSourceType  = "simplii_visa"
	DebitSourceType = "simplii_debit"
)

// csvRow maps the Simplii export columns. The export pads header names with
// a leading space.
type csvRow struct {
	Date               string `csv:"Date"`
	TransactionDetails string `csv:" Transaction Details"`
	FundsOut           string `csv:" Funds Out"`
	FundsIn            string `csv:" Funds In"`
}

// Adapter implements adapter.Adapter for Simplii CSV files.
type Adapter struct {
	sourceType string
}

// NewVisaAdapter creates an adapter for the Simplii Visa export.
func NewVisaAdapter() *Adapter {
	return &Adapter{sourceType: VisaSourceType}
}

// NewDebitAdapter creates an adapter for the Simplii debit export.
func NewDebitAdapter() *Adapter {
	return &Adapter{sourceType: DebitSourceType}
}

// Load reads and normalizes a Simplii CSV export. Rows without a Funds Out
// amount are deposits and dropped.
func (a *Adapter) Load(path string) ([]models.Transaction, error) {
	rows, err := common.ReadCSVFile[csvRow](path)
	if err != nil {
		return nil, &ingesterror.AdapterError{
			SourceType: a.sourceType, FilePath: path,
			Reason: "cannot read CSV", Err: err,
		}
	}

	var transactions []models.Transaction
	for _, row := range rows {
		if row.Date == "" || strings.TrimSpace(row.FundsOut) == "" {
			continue
		}
		if a.sourceType == DebitSourceType && isBookkeepingRow(row.TransactionDetails) {
			continue
		}

		date, err := models.ParseDate("01/02/2006", row.Date)
		if err != nil {
			return nil, &ingesterror.AdapterError{
				SourceType: a.sourceType, FilePath: path,
				Reason: "unparseable date " + row.Date, Err: err,
			}
		}
		cost, err := models.ParseCost(row.FundsOut)
		if err != nil {
			return nil, &ingesterror.AdapterError{
				SourceType: a.sourceType, FilePath: path,
				Reason: "unparseable amount " + row.FundsOut, Err: err,
			}
		}

		transactions = append(transactions, models.Transaction{
			Date:       date,
			Merchant:   strings.TrimSpace(row.TransactionDetails),
			Cost:       cost,
			SourceType: a.sourceType,
		})
	}
	return transactions, nil
}

// isBookkeepingRow filters debit-account rows that are payments to other
// cards or internal transfers, not spending.
func isBookkeepingRow(details string) bool {
	lower := strings.ToLower(details)
	return strings.Contains(lower, "bill payment") ||
		strings.Contains(lower, strings.ToLower("MISCELLANEOUS PAYMENTS Wise Canada"))
}

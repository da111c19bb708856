// Package tdadapter loads TD Visa CSV exports. TD CSVs carry no header row;
// columns are positional: date, merchant, debit, credit, balance.
package tdadapter

import (
	"strings"

	"card-ingest/internal/common"
	"card-ingest/internal/ingesterror"
	"card-ingest/internal/models"
)

const SourceType = "td_visa"

// Adapter implements adapter.Adapter for TD Visa CSV files.
type Adapter struct{}

// NewAdapter creates a TD Visa adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// Load reads and normalizes a TD Visa CSV export. Card payments and reward
// redemptions are issuer bookkeeping and dropped, as are credit-only rows
// (refunds).
func (a *Adapter) Load(path string) ([]models.Transaction, error) {
	records, err := common.ReadCSVRecords(path)
	if err != nil {
		return nil, &ingesterror.AdapterError{
			SourceType: SourceType, FilePath: path,
			Reason: "cannot read CSV", Err: err,
		}
	}

	var transactions []models.Transaction
	for _, record := range records {
		if len(record) < 5 {
			return nil, &ingesterror.AdapterError{
				SourceType: SourceType, FilePath: path,
				Reason: "expected 5 columns (date, merchant, debit, credit, balance)",
			}
		}

		merchant := strings.TrimSpace(record[1])
		if strings.Contains(merchant, "PAYMENT") ||
			strings.Contains(merchant, "REWARDS REDEMPTION") {
			continue
		}
		debit := strings.TrimSpace(record[2])
		if debit == "" {
			continue
		}

		date, err := models.ParseDate("01/02/2006", record[0])
		if err != nil {
			return nil, &ingesterror.AdapterError{
				SourceType: SourceType, FilePath: path,
				Reason: "unparseable date " + record[0], Err: err,
			}
		}
		cost, err := models.ParseCost(debit)
		if err != nil {
			return nil, &ingesterror.AdapterError{
				SourceType: SourceType, FilePath: path,
				Reason: "unparseable amount " + debit, Err: err,
			}
		}

		transactions = append(transactions, models.Transaction{
			Date:       date,
			Merchant:   merchant,
			Cost:       cost,
			SourceType: SourceType,
		})
	}
	return transactions, nil
}

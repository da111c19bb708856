// Package cibcadapter loads CIBC Mastercard CSV exports. CIBC CSVs carry no
// header row; columns are positional: date, merchant, debit, credit, card
// number.
package cibcadapter

import (
	"strings"

	"card-ingest/internal/common"
	"card-ingest/internal/ingesterror"
	"card-ingest/internal/models"
)

const SourceType = "cibc_mc"

// Adapter implements adapter.Adapter for CIBC Mastercard CSV files.
type Adapter struct{}

// NewAdapter creates a CIBC adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// Load reads and normalizes a CIBC CSV export. Payment rows and credit-only
// rows (refunds) are dropped.
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
		if len(record) < 4 {
			return nil, &ingesterror.AdapterError{
				SourceType: SourceType, FilePath: path,
				Reason: "expected at least 4 columns (date, merchant, debit, credit)",
			}
		}

		merchant := strings.TrimSpace(record[1])
		if strings.Contains(merchant, "PAYMENT") {
			continue
		}
		debit := strings.TrimSpace(record[2])
		if debit == "" {
			continue
		}

		date, err := models.ParseDate("2006-01-02", record[0])
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

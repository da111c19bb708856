// Package bmoadapter loads BMO CSV exports. BMO files begin with an account
// preamble, so the header row is located by scanning for the expected column
// labels before any rows are read.
package bmoadapter

import (
	"strings"

	"card-ingest/internal/common"
	"card-ingest/internal/ingesterror"
	"card-ingest/internal/models"
)

const SourceType = "bmo"

// Adapter implements adapter.Adapter for BMO CSV files.
type Adapter struct{}

// NewAdapter creates a BMO adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// Load reads and normalizes a BMO CSV export. Negative amounts are payments
// and credits and are dropped.
func (a *Adapter) Load(path string) ([]models.Transaction, error) {
	records, err := common.ReadCSVRecords(path)
	if err != nil {
		return nil, &ingesterror.AdapterError{
			SourceType: SourceType, FilePath: path,
			Reason: "cannot read CSV", Err: err,
		}
	}

	headerRow := common.FindHeaderRow(records, "Posting Date", "Description", "Transaction Amount")
	if headerRow < 0 {
		return nil, &ingesterror.AdapterError{
			SourceType: SourceType, FilePath: path,
			Reason: "could not find header row with 'Posting Date', 'Description', 'Transaction Amount'",
		}
	}

	header := records[headerRow]
	dateCol := common.ColumnIndex(header, "Posting Date")
	merchantCol := common.ColumnIndex(header, "Description")
	amountCol := common.ColumnIndex(header, "Transaction Amount")

	var transactions []models.Transaction
	for _, record := range records[headerRow+1:] {
		if len(record) <= dateCol || len(record) <= merchantCol || len(record) <= amountCol {
			continue
		}
		merchant := strings.TrimSpace(record[merchantCol])
		if merchant == "" {
			continue
		}

		date, err := models.ParseDate("20060102", record[dateCol])
		if err != nil {
			return nil, &ingesterror.AdapterError{
				SourceType: SourceType, FilePath: path,
				Reason: "unparseable date " + record[dateCol], Err: err,
			}
		}
		cost, err := models.ParseCost(record[amountCol])
		if err != nil {
			return nil, &ingesterror.AdapterError{
				SourceType: SourceType, FilePath: path,
				Reason: "unparseable amount " + record[amountCol], Err: err,
			}
		}
		if !cost.IsPositive() {
			continue
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

// Package rbcadapter loads RBC credit card CSV exports. The export mixes
// account metadata columns with the transaction itself and signs charges
// negative, so amounts are negated on the way in.
package rbcadapter

import (
	"card-ingest/internal/common"
	"card-ingest/internal/ingesterror"
	"card-ingest/internal/models"
)

const SourceType = "rbc_cc"

// csvRow maps the RBC export columns. Only the CAD amount is carried; the
// USD$ column duplicates cross-border charges and is ignored.
type csvRow struct {
	AccountType     string `csv:"Account Type"`
	AccountNumber   string `csv:"Account Number"`
	TransactionDate string `csv:"Transaction Date"`
	ChequeNumber    string `csv:"Cheque Number"`
	Description1    string `csv:"Description 1"`
	Description2    string `csv:"Description 2"`
	CAD             string `csv:"CAD$"`
	USD             string `csv:"USD$"`
}

// Adapter implements adapter.Adapter for RBC credit card CSV files.
type Adapter struct{}

// NewAdapter creates an RBC adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// Load reads and normalizes an RBC CSV export. Charges carry negative CAD$
// amounts and are negated; payments and credits come out non-positive after
// negation and are dropped.
func (a *Adapter) Load(path string) ([]models.Transaction, error) {
	rows, err := common.ReadCSVFile[csvRow](path)
	if err != nil {
		return nil, &ingesterror.AdapterError{
			SourceType: SourceType, FilePath: path,
			Reason: "cannot read CSV", Err: err,
		}
	}

	var transactions []models.Transaction
	for _, row := range rows {
		if row.TransactionDate == "" || row.Description1 == "" || row.CAD == "" {
			continue
		}

		date, err := models.ParseDate("2006-01-02", row.TransactionDate)
		if err != nil {
			return nil, &ingesterror.AdapterError{
				SourceType: SourceType, FilePath: path,
				Reason: "unparseable date " + row.TransactionDate, Err: err,
			}
		}
		cost, err := models.ParseCost(row.CAD)
		if err != nil {
			return nil, &ingesterror.AdapterError{
				SourceType: SourceType, FilePath: path,
				Reason: "unparseable amount " + row.CAD, Err: err,
			}
		}
		cost = cost.Neg()
		if !cost.IsPositive() {
			continue
		}

		transactions = append(transactions, models.Transaction{
			Date:       date,
			Merchant:   row.Description1,
			Cost:       cost,
			SourceType: SourceType,
		})
	}
	return transactions, nil
}

// Package rogersadapter loads Rogers Mastercard CSV exports. Rogers is the
// only card source whose export carries a merchant-category-code
// description, which is forwarded as the issuer category hint.
package rogersadapter

import (
	"card-ingest/internal/common"
	"card-ingest/internal/ingesterror"
	"card-ingest/internal/models"
)

const SourceType = "rogers"

// csvRow maps the Rogers export columns. The category description column is
// absent from older exports and left empty in that case.
type csvRow struct {
	Date             string `csv:"Date"`
	MerchantName     string `csv:"Merchant Name"`
	MerchantCategory string `csv:"Merchant Category Description"`
	Amount           string `csv:"Amount"`
}

// Adapter implements adapter.Adapter for Rogers Mastercard CSV files.
type Adapter struct{}

// NewAdapter creates a Rogers adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// Load reads and normalizes a Rogers CSV export. Credits and payments carry
// negative amounts in the export and are dropped; only money spent remains.
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
		if row.Date == "" || row.MerchantName == "" {
			continue
		}
		if row.Amount == "" {
			return nil, &ingesterror.AdapterError{
				SourceType: SourceType, FilePath: path,
				Reason: "missing expected columns Date, Merchant Name, Amount",
			}
		}

		date, err := models.ParseDate("2006-01-02", row.Date)
		if err != nil {
			return nil, &ingesterror.AdapterError{
				SourceType: SourceType, FilePath: path,
				Reason: "unparseable date " + row.Date, Err: err,
			}
		}
		cost, err := models.ParseCost(row.Amount)
		if err != nil {
			return nil, &ingesterror.AdapterError{
				SourceType: SourceType, FilePath: path,
				Reason: "unparseable amount " + row.Amount, Err: err,
			}
		}
		if !cost.IsPositive() {
			continue
		}

		transactions = append(transactions, models.Transaction{
			Date:           date,
			Merchant:       row.MerchantName,
			Cost:           cost,
			IssuerCategory: row.MerchantCategory,
			SourceType:     SourceType,
		})
	}
	return transactions, nil
}

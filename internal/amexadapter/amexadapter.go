// Package amexadapter loads American Express Excel statement exports. The
// workbook begins with a summary block, so the header row is located by
// scanning for the expected column labels.
package amexadapter

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"card-ingest/internal/ingesterror"
	"card-ingest/internal/models"
)

const SourceType = "amex"

// Amex renders dates like "15 Jan. 2024".
const dateLayout = "2 Jan. 2006"

// Adapter implements adapter.Adapter for Amex Excel workbooks.
type Adapter struct{}

// NewAdapter creates an Amex adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// Load reads and normalizes an Amex Excel export. Negative amounts are
// payments and credits and are dropped.
func (a *Adapter) Load(path string) ([]models.Transaction, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &ingesterror.AdapterError{
			SourceType: SourceType, FilePath: path,
			Reason: "cannot open workbook", Err: err,
		}
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ingesterror.AdapterError{
			SourceType: SourceType, FilePath: path,
			Reason: "workbook has no sheets",
		}
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &ingesterror.AdapterError{
			SourceType: SourceType, FilePath: path,
			Reason: "cannot read sheet", Err: err,
		}
	}

	headerRow, dateCol, merchantCol, amountCol := findHeader(rows)
	if headerRow < 0 {
		return nil, &ingesterror.AdapterError{
			SourceType: SourceType, FilePath: path,
			Reason: "could not find header row with 'Date', 'Description', 'Amount'",
		}
	}

	var transactions []models.Transaction
	for _, row := range rows[headerRow+1:] {
		if len(row) <= dateCol || len(row) <= merchantCol || len(row) <= amountCol {
			continue
		}
		merchant := strings.TrimSpace(row[merchantCol])
		if merchant == "" {
			continue
		}

		date, err := models.ParseDate(dateLayout, row[dateCol])
		if err != nil {
			return nil, &ingesterror.AdapterError{
				SourceType: SourceType, FilePath: path,
				Reason: "unparseable date " + row[dateCol], Err: err,
			}
		}
		cost, err := models.ParseCost(row[amountCol])
		if err != nil {
			return nil, &ingesterror.AdapterError{
				SourceType: SourceType, FilePath: path,
				Reason: "unparseable amount " + row[amountCol], Err: err,
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

func findHeader(rows [][]string) (headerRow, dateCol, merchantCol, amountCol int) {
	for i, row := range rows {
		dateCol, merchantCol, amountCol = -1, -1, -1
		for j, cell := range row {
			switch cell {
			case "Date":
				dateCol = j
			case "Description":
				merchantCol = j
			case "Amount":
				amountCol = j
			}
		}
		if dateCol >= 0 && merchantCol >= 0 && amountCol >= 0 {
			return i, dateCol, merchantCol, amountCol
		}
	}
	return -1, -1, -1, -1
}

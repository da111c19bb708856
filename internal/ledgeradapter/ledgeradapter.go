// Package ledgeradapter loads the pre-existing ledger Excel workbook. The
// workbook carries its own account coding: ACCT_CODE is forwarded as the
// issuer category hint and ACCT_subCODE as the transfer marker that drives
// reconciliation downstream.
package ledgeradapter

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"card-ingest/internal/ingesterror"
	"card-ingest/internal/models"
)

const SourceType = "ledger"

// Column labels of the ledger workbook.
var wantedColumns = []string{"DATE", "DETAILSDescriptions", "DR_PAYMENTs", "ACCT_subCODE", "ACCT_CODE"}

// Date renderings seen across workbook exports.
var dateLayouts = []string{"2006-01-02", "01-02-06", "1/2/06", "01/02/2006", "2006-01-02 15:04:05"}

// Adapter implements adapter.Adapter for the ledger workbook.
type Adapter struct{}

// NewAdapter creates a ledger adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// Load reads and normalizes the ledger workbook. Only positive DR (payment)
// rows are spending. Chequing workbooks (file name contains "tdcheq") drop
// their internal "Tfr-" coded rows here; "Tfr=" rows pass through carrying
// the marker so ingestion can reconcile them.
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
	if len(rows) == 0 {
		return nil, nil
	}

	cols := map[string]int{}
	for i, cell := range rows[0] {
		cols[strings.TrimSpace(cell)] = i
	}
	for _, label := range wantedColumns {
		if _, ok := cols[label]; !ok {
			return nil, &ingesterror.AdapterError{
				SourceType: SourceType, FilePath: path,
				Reason: "missing expected column " + label,
			}
		}
	}

	chequing := strings.Contains(strings.ToLower(filepath.Base(path)), "tdcheq")

	var transactions []models.Transaction
	for _, row := range rows[1:] {
		dr := cellAt(row, cols["DR_PAYMENTs"])
		if dr == "" {
			continue
		}
		cost, err := models.ParseCost(dr)
		if err != nil {
			return nil, &ingesterror.AdapterError{
				SourceType: SourceType, FilePath: path,
				Reason: "unparseable amount " + dr, Err: err,
			}
		}
		if !cost.IsPositive() {
			continue
		}

		subCode := cellAt(row, cols["ACCT_subCODE"])
		if chequing && strings.Contains(subCode, "Tfr-") {
			continue
		}

		rawDate := cellAt(row, cols["DATE"])
		date, err := parseWorkbookDate(rawDate)
		if err != nil {
			return nil, &ingesterror.AdapterError{
				SourceType: SourceType, FilePath: path,
				Reason: "unparseable date " + rawDate, Err: err,
			}
		}

		transactions = append(transactions, models.Transaction{
			Date:           date,
			Merchant:       cellAt(row, cols["DETAILSDescriptions"]),
			Cost:           cost,
			IssuerCategory: cellAt(row, cols["ACCT_CODE"]),
			SourceType:     SourceType,
			TransferMarker: subCode,
		})
	}
	return transactions, nil
}

func cellAt(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// parseWorkbookDate tries the date renderings excelize produces for styled
// date cells across workbook versions.
func parseWorkbookDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		date, err := models.ParseDate(layout, value)
		if err == nil {
			return date, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

package ledgeradapter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, name string, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, f.SaveAs(path))
	return path
}

var header = []interface{}{"DATE", "DETAILSDescriptions", "DR_PAYMENTs", "CR_DEPOSITs", "ACCT_subCODE", "ACCT_CODE"}

func TestLoadCarriesAccountCoding(t *testing.T) {
	path := writeWorkbook(t, "visa.xlsx", [][]interface{}{
		header,
		{"2024-03-15", "SUSHI PLACE", "42.10", "", "EatOut", "Food"},
		{"2024-03-16", "PAYROLL", "", "2000.00", "", ""},
		{"2024-03-17", "HOTEL DOWNTOWN", "210.00", "", "", "Travel"},
	})

	txs, err := NewAdapter().Load(path)
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, "SUSHI PLACE", txs[0].Merchant)
	assert.Equal(t, "2024-03-15", txs[0].Date.Format("2006-01-02"))
	assert.Equal(t, "Food", txs[0].IssuerCategory)
	assert.Equal(t, "EatOut", txs[0].TransferMarker)
	assert.Equal(t, SourceType, txs[0].SourceType)
	assert.Equal(t, "Travel", txs[1].IssuerCategory)
}

func TestTransferMarkedRowsPassThrough(t *testing.T) {
	path := writeWorkbook(t, "visa.xlsx", [][]interface{}{
		header,
		{"2024-03-15", "MISBOOKED CHARGE", "120.00", "", "Tfr=CHQ", ""},
	})

	txs, err := NewAdapter().Load(path)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.True(t, txs[0].IsTransfer())
}

func TestChequingWorkbookDropsInternalTransfers(t *testing.T) {
	path := writeWorkbook(t, "tdcheq-2024.xlsx", [][]interface{}{
		header,
		{"2024-03-15", "TO SAVINGS", "500.00", "", "Tfr-SAV", ""},
		{"2024-03-16", "RENT", "1800.00", "", "", "Housing"},
	})

	txs, err := NewAdapter().Load(path)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "RENT", txs[0].Merchant)
}

func TestLoadAcceptsMultipleDateRenderings(t *testing.T) {
	path := writeWorkbook(t, "visa.xlsx", [][]interface{}{
		header,
		{"03-15-24", "FIRST", "10.00", "", "", ""},
		{"3/16/24", "SECOND", "11.00", "", "", ""},
		{"2024-03-17 00:00:00", "THIRD", "12.00", "", "", ""},
	})

	txs, err := NewAdapter().Load(path)
	require.NoError(t, err)
	require.Len(t, txs, 3)
	assert.Equal(t, "2024-03-15", txs[0].Date.Format("2006-01-02"))
	assert.Equal(t, "2024-03-16", txs[1].Date.Format("2006-01-02"))
	assert.Equal(t, "2024-03-17", txs[2].Date.Format("2006-01-02"))
}

func TestLoadMissingColumn(t *testing.T) {
	path := writeWorkbook(t, "visa.xlsx", [][]interface{}{
		{"DATE", "DETAILSDescriptions", "DR_PAYMENTs"},
		{"2024-03-15", "SUSHI PLACE", "42.10"},
	})

	_, err := NewAdapter().Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing expected column")
}

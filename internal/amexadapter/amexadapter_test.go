package amexadapter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	path := filepath.Join(t.TempDir(), "amex.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadSkipsSummaryBlock(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Summary of your statement"},
		{"Prepared for", "A CARDHOLDER"},
		{},
		{"Date", "Description", "Amount"},
		{"15 Mar. 2024", "UBER TRIP HELP.UBER.COM", "18.50"},
		{"16 Mar. 2024", "PAYMENT RECEIVED - THANK YOU", "-400.00"},
		{"17 Mar. 2024", "RUMBLE BOXING STUDIO", "35.00"},
	})

	txs, err := NewAdapter().Load(path)
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, "UBER TRIP HELP.UBER.COM", txs[0].Merchant)
	assert.Equal(t, "2024-03-15", txs[0].Date.Format("2006-01-02"))
	assert.Equal(t, "18.5", txs[0].Cost.String())
	assert.Equal(t, SourceType, txs[0].SourceType)
	assert.Equal(t, "RUMBLE BOXING STUDIO", txs[1].Merchant)
}

func TestLoadWithoutHeaderRow(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"nothing", "useful", "here"},
	})

	_, err := NewAdapter().Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not find header row")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewAdapter().Load(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
}

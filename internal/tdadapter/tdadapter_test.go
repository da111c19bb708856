package tdadapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "td.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadHeaderlessExport(t *testing.T) {
	path := writeCSV(t, "03/15/2024,SUSHI PLACE,42.10,,1042.10\n"+
		"03/16/2024,PAYMENT - THANK YOU,,200.00,842.10\n"+
		"03/17/2024,REWARDS REDEMPTION,,25.00,817.10\n"+
		"03/18/2024,REFUNDED STORE,,18.00,799.10\n"+
		"03/19/2024,GROCER,61.20,,860.30\n")

	txs, err := NewAdapter().Load(path)
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, "SUSHI PLACE", txs[0].Merchant)
	assert.Equal(t, "2024-03-15", txs[0].Date.Format("2006-01-02"))
	assert.Equal(t, "42.1", txs[0].Cost.String())
	assert.Equal(t, SourceType, txs[0].SourceType)
	assert.Equal(t, "GROCER", txs[1].Merchant)
}

func TestLoadRejectsShortRecords(t *testing.T) {
	path := writeCSV(t, "03/15/2024,SUSHI PLACE,42.10\n")

	_, err := NewAdapter().Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 5 columns")
}

func TestLoadBadDate(t *testing.T) {
	path := writeCSV(t, "2024-03-15,SUSHI PLACE,42.10,,1042.10\n")

	_, err := NewAdapter().Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unparseable date")
}

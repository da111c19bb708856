package rogersadapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rogers.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadNormalizesRows(t *testing.T) {
	path := writeCSV(t, `Date,Merchant Name,Merchant Category Description,Amount
2024-03-15,METRO 123,Grocery Stores and Supermarkets,$52.30
2024-03-16,PAYMENT - THANK YOU,,-200.00
2024-03-17,CINEMA,Motion Picture Theaters,18.00
`)

	txs, err := NewAdapter().Load(path)
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, "METRO 123", txs[0].Merchant)
	assert.Equal(t, "2024-03-15", txs[0].Date.Format("2006-01-02"))
	assert.Equal(t, "52.3", txs[0].Cost.String())
	assert.Equal(t, "Grocery Stores and Supermarkets", txs[0].IssuerCategory)
	assert.Equal(t, SourceType, txs[0].SourceType)

	assert.Equal(t, "CINEMA", txs[1].Merchant)
}

func TestLoadWithoutCategoryColumn(t *testing.T) {
	// Older exports lack the category description column.
	path := writeCSV(t, `Date,Merchant Name,Amount
2024-03-15,METRO 123,52.30
`)

	txs, err := NewAdapter().Load(path)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Empty(t, txs[0].IssuerCategory)
}

func TestLoadBadDate(t *testing.T) {
	path := writeCSV(t, `Date,Merchant Name,Merchant Category Description,Amount
15/03/2024,METRO 123,,52.30
`)

	_, err := NewAdapter().Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unparseable date")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewAdapter().Load(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

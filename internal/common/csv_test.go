package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRow struct {
	Date   string `csv:"Date"`
	Amount string `csv:"Amount"`
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadCSVFile(t *testing.T) {
	path := writeFile(t, "Date,Amount\n2024-03-15,42.10\n2024-03-16,61.20\n")

	rows, err := ReadCSVFile[sampleRow](path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-03-15", rows[0].Date)
	assert.Equal(t, "61.20", rows[1].Amount)
}

func TestReadCSVFileMissing(t *testing.T) {
	_, err := ReadCSVFile[sampleRow](filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestReadCSVRecordsToleratesRaggedRows(t *testing.T) {
	path := writeFile(t, "preamble line\na,b\n1,2,3\n")

	records, err := ReadCSVRecords(path)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Len(t, records[0], 1)
	assert.Len(t, records[2], 3)
}

func TestFindHeaderRow(t *testing.T) {
	records := [][]string{
		{"Following data is valid as of 2024-03-20"},
		{},
		{"Item #", "Posting Date", "Transaction Amount", "Description"},
		{"1", "20240315", "42.10", "SUSHI PLACE"},
	}

	assert.Equal(t, 2, FindHeaderRow(records, "Posting Date", "Description", "Transaction Amount"))
	assert.Equal(t, -1, FindHeaderRow(records, "Posting Date", "Nope"))
}

func TestColumnIndex(t *testing.T) {
	header := []string{"Item #", "Posting Date", "Description"}
	assert.Equal(t, 1, ColumnIndex(header, "Posting Date"))
	assert.Equal(t, -1, ColumnIndex(header, "Amount"))
}

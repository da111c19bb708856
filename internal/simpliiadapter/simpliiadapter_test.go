package simpliiadapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "simplii.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const header = "Date, Transaction Details, Funds Out, Funds In\n"

func TestVisaLoadKeepsSpending(t *testing.T) {
	path := writeCSV(t, header+
		"03/15/2024,SUSHI PLACE,42.10,\n"+
		"03/16/2024,DEPOSIT,,100.00\n")

	txs, err := NewVisaAdapter().Load(path)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "SUSHI PLACE", txs[0].Merchant)
	assert.Equal(t, "2024-03-15", txs[0].Date.Format("2006-01-02"))
	assert.Equal(t, "42.1", txs[0].Cost.String())
	assert.Equal(t, VisaSourceType, txs[0].SourceType)
}

func TestVisaKeepsBillPayments(t *testing.T) {
	// The bookkeeping filter is debit-only.
	path := writeCSV(t, header+
		"03/15/2024,INTERNET BILL PAYMENT HYDRO,120.00,\n")

	txs, err := NewVisaAdapter().Load(path)
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}

func TestDebitFiltersBookkeepingRows(t *testing.T) {
	path := writeCSV(t, header+
		"03/15/2024,INTERNET BILL PAYMENT VISA,500.00,\n"+
		"03/16/2024,MISCELLANEOUS PAYMENTS Wise Canada,250.00,\n"+
		"03/17/2024,GROCER,61.20,\n")

	txs, err := NewDebitAdapter().Load(path)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "GROCER", txs[0].Merchant)
	assert.Equal(t, DebitSourceType, txs[0].SourceType)
}

func TestLoadBadAmount(t *testing.T) {
	path := writeCSV(t, header+
		"03/15/2024,SUSHI PLACE,not-a-number,\n")

	_, err := NewVisaAdapter().Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unparseable amount")
}

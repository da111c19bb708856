package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCost(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain", input: "12.34", want: "12.34"},
		{name: "currency symbol", input: "$12.34", want: "12.34"},
		{name: "thousands separator", input: "1,234.56", want: "1234.56"},
		{name: "negative", input: "-45.00", want: "-45"},
		{name: "padded", input: "  7.50 ", want: "7.5"},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCost(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("01/02/2006", "03/15/2024")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseDate(DateLayout, "15-03-2024")
	assert.Error(t, err)
}

func TestDateOnlyStripsTime(t *testing.T) {
	ts := time.Date(2024, 3, 15, 13, 45, 12, 999, time.FixedZone("X", 3600))
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), DateOnly(ts))
}

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{
		Date:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Merchant:   "COFFEE BAR",
		Cost:       decimal.NewFromFloat(4.50),
		SourceType: "rogers",
	}
	assert.NoError(t, valid.Validate())

	noDate := valid
	noDate.Date = time.Time{}
	assert.Error(t, noDate.Validate())

	noMerchant := valid
	noMerchant.Merchant = "   "
	assert.Error(t, noMerchant.Validate())

	zeroCost := valid
	zeroCost.Cost = decimal.Zero
	assert.Error(t, zeroCost.Validate())

	negativeCost := valid
	negativeCost.Cost = decimal.NewFromFloat(-4.50)
	assert.Error(t, negativeCost.Validate())

	noSource := valid
	noSource.SourceType = ""
	assert.Error(t, noSource.Validate())
}

func TestIsTransfer(t *testing.T) {
	assert.True(t, Transaction{TransferMarker: "Tfr=SAV"}.IsTransfer())
	assert.True(t, Transaction{TransferMarker: "code Tfr=CHQ misc"}.IsTransfer())
	assert.False(t, Transaction{TransferMarker: "MISC"}.IsTransfer())
	assert.False(t, Transaction{}.IsTransfer())
}

func TestTransactionString(t *testing.T) {
	tx := Transaction{
		Date:     time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Merchant: "COFFEE BAR",
		Cost:     decimal.NewFromFloat(4.5),
	}
	assert.Equal(t, "Transaction on 2024-03-15 at COFFEE BAR for 4.50", tx.String())
}

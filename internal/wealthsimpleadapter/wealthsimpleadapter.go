// Package wealthsimpleadapter loads Wealthsimple transactions from two
// sources: the debit account's CSV export, and the credit card's online
// transaction feed pulled through a Client.
package wealthsimpleadapter

import (
	"strings"

	"card-ingest/internal/common"
	"card-ingest/internal/ingesterror"
	"card-ingest/internal/models"
)

const (
	DebitSourceType  = "ws_debit"
	CreditSourceType = "ws_credit"
)

// debitRow maps the Wealthsimple debit CSV columns.
type debitRow struct {
	Date        string `csv:"date"`
	Description string `csv:"description"`
	Amount      string `csv:"amount"`
}

// DebitAdapter implements adapter.Adapter for the Wealthsimple debit CSV.
type DebitAdapter struct{}

// NewDebitAdapter creates a Wealthsimple debit adapter.
func NewDebitAdapter() *DebitAdapter {
	return &DebitAdapter{}
}

// Load reads and normalizes a Wealthsimple debit export. Spending rows carry
// negative amounts and are flipped positive; deposits, internal transfers
// and payments to other cards are dropped.
func (a *DebitAdapter) Load(path string) ([]models.Transaction, error) {
	rows, err := common.ReadCSVFile[debitRow](path)
	if err != nil {
		return nil, &ingesterror.AdapterError{
			SourceType: DebitSourceType, FilePath: path,
			Reason: "cannot read CSV", Err: err,
		}
	}

	var transactions []models.Transaction
	for _, row := range rows {
		if row.Date == "" || row.Amount == "" {
			continue
		}
		if isCardPayment(row.Description) || row.Description == "Transfer out" {
			continue
		}

		cost, err := models.ParseCost(row.Amount)
		if err != nil {
			return nil, &ingesterror.AdapterError{
				SourceType: DebitSourceType, FilePath: path,
				Reason: "unparseable amount " + row.Amount, Err: err,
			}
		}
		if !cost.IsNegative() {
			continue
		}

		date, err := models.ParseDate("2006-01-02", row.Date)
		if err != nil {
			return nil, &ingesterror.AdapterError{
				SourceType: DebitSourceType, FilePath: path,
				Reason: "unparseable date " + row.Date, Err: err,
			}
		}

		transactions = append(transactions, models.Transaction{
			Date:       date,
			Merchant:   row.Description,
			Cost:       cost.Abs(),
			SourceType: DebitSourceType,
		})
	}
	return transactions, nil
}

// isCardPayment filters rows that pay off other cards tracked separately.
func isCardPayment(description string) bool {
	lower := strings.ToLower(description)
	return strings.Contains(lower, "rogers") ||
		strings.Contains(lower, "amex") ||
		strings.Contains(lower, "bmo")
}

// CreditAdapter implements adapter.Adapter for the Wealthsimple credit card
// online feed.
type CreditAdapter struct {
	client Client
}

// NewCreditAdapter creates a Wealthsimple credit adapter over the given
// online client.
func NewCreditAdapter(client Client) *CreditAdapter {
	return &CreditAdapter{client: client}
}

// Load pulls the credit card feed and normalizes purchase activities. The
// path argument is ignored; this is an online source.
func (a *CreditAdapter) Load(path string) ([]models.Transaction, error) {
	if a.client == nil {
		return nil, &ingesterror.AdapterError{
			SourceType: CreditSourceType,
			Reason:     "no online client configured (set the credit feed URL)",
		}
	}

	activities, err := a.client.Transactions()
	if err != nil {
		return nil, &ingesterror.AdapterError{
			SourceType: CreditSourceType,
			Reason:     "cannot fetch online transactions", Err: err,
		}
	}

	var transactions []models.Transaction
	for _, act := range activities {
		if act.Type != "Purchase" {
			continue
		}

		date, err := models.ParseDate("2006-01-02T15:04:05", act.Date)
		if err != nil {
			return nil, &ingesterror.AdapterError{
				SourceType: CreditSourceType,
				Reason:     "unparseable date " + act.Date, Err: err,
			}
		}
		cost, err := models.ParseCost(act.Amount)
		if err != nil {
			return nil, &ingesterror.AdapterError{
				SourceType: CreditSourceType,
				Reason:     "unparseable amount " + act.Amount, Err: err,
			}
		}

		transactions = append(transactions, models.Transaction{
			Date:       date,
			Merchant:   act.Description,
			Cost:       cost.Abs(),
			SourceType: CreditSourceType,
		})
	}
	return transactions, nil
}

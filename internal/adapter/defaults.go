package adapter

import (
	"card-ingest/internal/amexadapter"
	"card-ingest/internal/bmoadapter"
	"card-ingest/internal/cibcadapter"
	"card-ingest/internal/ledgeradapter"
	"card-ingest/internal/rbcadapter"
	"card-ingest/internal/rogersadapter"
	"card-ingest/internal/simpliiadapter"
	"card-ingest/internal/tdadapter"
	"card-ingest/internal/wealthsimpleadapter"
)

// NewDefaultRegistry wires every supported source. wsCreditURL configures
// the Wealthsimple credit online feed; the tag stays registered when the
// URL is empty so the CLI can name it, and loading reports the missing
// configuration.
func NewDefaultRegistry(wsCreditURL string) *Registry {
	r := NewRegistry()

	r.Register(rogersadapter.SourceType, Entry{
		New:          func() Adapter { return rogersadapter.NewAdapter() },
		RequiresFile: true,
		Description:  "Rogers Mastercard",
	})
	r.Register(simpliiadapter.VisaSourceType, Entry{
		New:          func() Adapter { return simpliiadapter.NewVisaAdapter() },
		RequiresFile: true,
		Description:  "Simplii Visa",
	})
	r.Register(simpliiadapter.DebitSourceType, Entry{
		New:          func() Adapter { return simpliiadapter.NewDebitAdapter() },
		RequiresFile: true,
		Description:  "Simplii Debit",
	})
	r.Register(tdadapter.SourceType, Entry{
		New:          func() Adapter { return tdadapter.NewAdapter() },
		RequiresFile: true,
		Description:  "TD Visa",
	})
	r.Register(cibcadapter.SourceType, Entry{
		New:          func() Adapter { return cibcadapter.NewAdapter() },
		RequiresFile: true,
		Description:  "CIBC Mastercard",
	})
	r.Register(bmoadapter.SourceType, Entry{
		New:          func() Adapter { return bmoadapter.NewAdapter() },
		RequiresFile: true,
		Description:  "BMO",
	})
	r.Register(rbcadapter.SourceType, Entry{
		New:          func() Adapter { return rbcadapter.NewAdapter() },
		RequiresFile: true,
		Description:  "RBC Credit Card",
	})
	r.Register(amexadapter.SourceType, Entry{
		New:          func() Adapter { return amexadapter.NewAdapter() },
		RequiresFile: true,
		Description:  "American Express",
	})
	r.Register(wealthsimpleadapter.DebitSourceType, Entry{
		New:          func() Adapter { return wealthsimpleadapter.NewDebitAdapter() },
		RequiresFile: true,
		Description:  "Wealthsimple Debit",
	})
	r.Register(wealthsimpleadapter.CreditSourceType, Entry{
		New: func() Adapter {
			if wsCreditURL == "" {
				return wealthsimpleadapter.NewCreditAdapter(nil)
			}
			return wealthsimpleadapter.NewCreditAdapter(wealthsimpleadapter.NewHTTPClient(wsCreditURL))
		},
		RequiresFile: false,
		Description:  "Wealthsimple Credit (online)",
	})
	r.Register(ledgeradapter.SourceType, Entry{
		New:          func() Adapter { return ledgeradapter.NewAdapter() },
		RequiresFile: true,
		Description:  "Pre-existing ledger workbook",
	})

	return r
}

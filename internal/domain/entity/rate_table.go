package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateTable is the full set of rates a provider published for a base currency on a date
type RateTable struct {
	Base  Currency
	Date  time.Time
	Rates map[string]decimal.Decimal
}

// Rate looks up the rate for a currency, reporting whether the provider published it
func (t *RateTable) Rate(c Currency) (decimal.Decimal, bool) {
	if t == nil {
		return decimal.Zero, false
	}
	r, ok := t.Rates[c.String()]
	return r, ok
}

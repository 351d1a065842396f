package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CurrencyQuote is a persisted USD based rate for one currency on one date
type CurrencyQuote struct {
	ID             string          `json:"id"`
	BaseCurrency   Currency        `json:"base_currency"`
	TargetCurrency Currency        `json:"target_currency"`
	Quote          decimal.Decimal `json:"quote"`
	Date           time.Time       `json:"date"`
	CreatedAt      time.Time       `json:"created_at"`
}

// NewCurrencyQuote builds a USD quote with a fresh ID
func NewCurrencyQuote(target Currency, quote decimal.Decimal, date time.Time) *CurrencyQuote {
	return &CurrencyQuote{
		ID:             uuid.New().String(),
		BaseCurrency:   BaseCurrency,
		TargetCurrency: target,
		Quote:          quote,
		Date:           DateOf(date),
		CreatedAt:      time.Now().UTC(),
	}
}

// Validate ensures the quote can be persisted
func (q *CurrencyQuote) Validate() error {
	if q.ID == "" {
		return errors.New("quote id must not be empty")
	}

	if len(q.BaseCurrency) != 3 || len(q.TargetCurrency) != 3 {
		return errors.New("currency codes must have 3 letters")
	}

	if q.Quote.IsNegative() {
		return errors.New("quote must not be negative")
	}

	if q.Date.IsZero() {
		return errors.New("quote date must be set")
	}

	return nil
}

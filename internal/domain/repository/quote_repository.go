// Package repository internal/domain/repository/quote_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/damon-houk/cotacao/internal/domain/entity"
)

// ErrQuoteNotFound is returned when no quote was stored for a currency and date
var ErrQuoteNotFound = errors.New("quote not found")

// QuoteRepository defines the interface for quote persistence
type QuoteRepository interface {
	// Store appends a quote. Existing quotes for the same currency and date are kept.
	Store(ctx context.Context, quote *entity.CurrencyQuote) error

	// FindFirst returns the earliest stored quote for a currency and date,
	// or ErrQuoteNotFound
	FindFirst(ctx context.Context, currency entity.Currency, date time.Time) (*entity.CurrencyQuote, error)
}

package db

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/damon-houk/cotacao/internal/domain/entity"
	"github.com/damon-houk/cotacao/internal/domain/repository"
)

// MemoryQuoteRepository keeps quotes in a thread-safe map. Contents are lost on exit.
type MemoryQuoteRepository struct {
	quotes map[string][]entity.CurrencyQuote
	mutex  sync.RWMutex
}

// NewMemoryQuoteRepository creates an empty in-memory repository
func NewMemoryQuoteRepository() *MemoryQuoteRepository {
	return &MemoryQuoteRepository{
		quotes: make(map[string][]entity.CurrencyQuote),
	}
}

func memoryKey(currency entity.Currency, date time.Time) string {
	return currency.String() + ":" + entity.FormatDate(date)
}

func (r *MemoryQuoteRepository) Store(ctx context.Context, quote *entity.CurrencyQuote) error {
	if err := quote.Validate(); err != nil {
		return fmt.Errorf("invalid quote: %w", err)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	key := memoryKey(quote.TargetCurrency, quote.Date)
	r.quotes[key] = append(r.quotes[key], *quote)
	return nil
}

func (r *MemoryQuoteRepository) FindFirst(ctx context.Context, currency entity.Currency, date time.Time) (*entity.CurrencyQuote, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	stored := r.quotes[memoryKey(currency, date)]
	if len(stored) == 0 {
		return nil, repository.ErrQuoteNotFound
	}

	quote := stored[0]
	return &quote, nil
}

// Size returns the number of stored quotes
func (r *MemoryQuoteRepository) Size() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	n := 0
	for _, quotes := range r.quotes {
		n += len(quotes)
	}
	return n
}

func (r *MemoryQuoteRepository) Close() error {
	return nil
}

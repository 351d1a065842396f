package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/damon-houk/cotacao/internal/domain/entity"
	"github.com/damon-houk/cotacao/internal/domain/repository"
	"github.com/dgraph-io/badger/v3"
)

const (
	quoteKeyPrefix = "quote:"
	quoteSeqKey    = "seq:quote"
	seqBandwidth   = 100
)

// BadgerQuoteRepository implements the quote repository interface using BadgerDB.
// Keys are quote:{CUR}:{YYYY-MM-DD}:{seq}, so a prefix scan yields quotes
// for a currency and date in insertion order.
type BadgerQuoteRepository struct {
	db  *badger.DB
	seq *badger.Sequence
}

// NewBadgerQuoteRepository creates a new BadgerDB quote repository
func NewBadgerQuoteRepository(db *badger.DB) (*BadgerQuoteRepository, error) {
	seq, err := db.GetSequence([]byte(quoteSeqKey), seqBandwidth)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire quote sequence: %w", err)
	}

	return &BadgerQuoteRepository{db: db, seq: seq}, nil
}

func quoteLookupPrefix(currency entity.Currency, date time.Time) []byte {
	return []byte(fmt.Sprintf("%s%s:%s:", quoteKeyPrefix, currency, entity.FormatDate(date)))
}

// Store appends a quote under the next sequence number
func (r *BadgerQuoteRepository) Store(ctx context.Context, quote *entity.CurrencyQuote) error {
	if err := quote.Validate(); err != nil {
		return fmt.Errorf("invalid quote: %w", err)
	}

	data, err := json.Marshal(quote)
	if err != nil {
		return fmt.Errorf("failed to marshal quote: %w", err)
	}

	n, err := r.seq.Next()
	if err != nil {
		return fmt.Errorf("failed to allocate quote sequence: %w", err)
	}

	key := append(quoteLookupPrefix(quote.TargetCurrency, quote.Date), []byte(fmt.Sprintf("%020d", n))...)

	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
	if err != nil {
		return fmt.Errorf("failed to store quote: %w", err)
	}

	return nil
}

// FindFirst retrieves the earliest quote stored for a currency and date
func (r *BadgerQuoteRepository) FindFirst(ctx context.Context, currency entity.Currency, date time.Time) (*entity.CurrencyQuote, error) {
	prefix := quoteLookupPrefix(currency, date)
	var quote *entity.CurrencyQuote

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		it.Seek(prefix)
		if !it.ValidForPrefix(prefix) {
			return repository.ErrQuoteNotFound
		}

		return it.Item().Value(func(val []byte) error {
			var q entity.CurrencyQuote
			if err := json.Unmarshal(val, &q); err != nil {
				return err
			}
			quote = &q
			return nil
		})
	})

	if errors.Is(err, repository.ErrQuoteNotFound) {
		return nil, err
	}

	if err != nil {
		return nil, fmt.Errorf("failed to retrieve quote: %w", err)
	}

	return quote, nil
}

// Close returns unused sequence numbers to the database. The DB itself is
// left open for its owner to close.
func (r *BadgerQuoteRepository) Close() error {
	if err := r.seq.Release(); err != nil {
		return fmt.Errorf("failed to release quote sequence: %w", err)
	}
	return nil
}

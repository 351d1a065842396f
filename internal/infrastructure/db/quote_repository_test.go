package db

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/damon-houk/cotacao/internal/config"
	"github.com/damon-houk/cotacao/internal/domain/entity"
	"github.com/damon-houk/cotacao/internal/domain/repository"
	"github.com/damon-houk/cotacao/internal/infrastructure/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closableRepository interface {
	repository.QuoteRepository
	Close() error
}

func newBadgerRepo(t *testing.T) closableRepository {
	t.Helper()

	bdb, err := OpenBadger(t.TempDir())
	require.NoError(t, err)

	repo, err := NewBadgerQuoteRepository(bdb)
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, repo.Close())
		assert.NoError(t, bdb.Close())
	})
	return repo
}

func newSQLiteRepo(t *testing.T) closableRepository {
	t.Helper()

	gdb, err := OpenSQLite(filepath.Join(t.TempDir(), "quotes.db"))
	require.NoError(t, err, "failed to initialize test database")

	repo := NewGormQuoteRepository(gdb)
	t.Cleanup(func() { assert.NoError(t, repo.Close()) })
	return repo
}

func newMemoryRepo(t *testing.T) closableRepository {
	return NewMemoryQuoteRepository()
}

func TestQuoteRepositories(t *testing.T) {
	factories := map[string]func(t *testing.T) closableRepository{
		"badger": newBadgerRepo,
		"sqlite": newSQLiteRepo,
		"memory": newMemoryRepo,
	}

	for name, newRepo := range factories {
		t.Run(name, func(t *testing.T) {
			testQuoteRepositoryContract(t, newRepo)
		})
	}
}

func testQuoteRepositoryContract(t *testing.T, newRepo func(t *testing.T) closableRepository) {
	ctx := context.Background()
	date := time.Date(2023, 6, 6, 0, 0, 0, 0, time.UTC)

	t.Run("Store and find", func(t *testing.T) {
		repo := newRepo(t)

		quote := entity.NewCurrencyQuote(entity.BRL, decimal.RequireFromString("4.9312345678901234567"), date)
		require.NoError(t, repo.Store(ctx, quote))

		found, err := repo.FindFirst(ctx, entity.BRL, date)
		require.NoError(t, err)
		assert.Equal(t, quote.ID, found.ID)
		assert.Equal(t, entity.USD, found.BaseCurrency)
		assert.Equal(t, entity.BRL, found.TargetCurrency)
		assert.True(t, date.Equal(found.Date))
		assert.Equal(t, "4.9312345678901234567", found.Quote.String())
	})

	t.Run("First inserted wins", func(t *testing.T) {
		repo := newRepo(t)

		first := entity.NewCurrencyQuote(entity.EUR, decimal.RequireFromString("0.93"), date)
		second := entity.NewCurrencyQuote(entity.EUR, decimal.RequireFromString("0.95"), date)
		require.NoError(t, repo.Store(ctx, first))
		require.NoError(t, repo.Store(ctx, second))

		found, err := repo.FindFirst(ctx, entity.EUR, date)
		require.NoError(t, err)
		assert.Equal(t, first.ID, found.ID)
		assert.True(t, found.Quote.Equal(decimal.RequireFromString("0.93")))
	})

	t.Run("Lookup is keyed by currency and date", func(t *testing.T) {
		repo := newRepo(t)

		require.NoError(t, repo.Store(ctx, entity.NewCurrencyQuote(entity.JPY, decimal.NewFromInt(139), date)))

		_, err := repo.FindFirst(ctx, entity.BRL, date)
		assert.ErrorIs(t, err, repository.ErrQuoteNotFound)

		_, err = repo.FindFirst(ctx, entity.JPY, date.AddDate(0, 0, 1))
		assert.ErrorIs(t, err, repository.ErrQuoteNotFound)
	})

	t.Run("Zero quote is stored", func(t *testing.T) {
		repo := newRepo(t)

		require.NoError(t, repo.Store(ctx, entity.NewCurrencyQuote(entity.JPY, decimal.Zero, date)))

		found, err := repo.FindFirst(ctx, entity.JPY, date)
		require.NoError(t, err)
		assert.True(t, found.Quote.IsZero())
	})

	t.Run("Invalid quote is rejected", func(t *testing.T) {
		repo := newRepo(t)

		quote := entity.NewCurrencyQuote(entity.BRL, decimal.NewFromInt(-1), date)
		assert.Error(t, repo.Store(ctx, quote))

		_, err := repo.FindFirst(ctx, entity.BRL, date)
		assert.ErrorIs(t, err, repository.ErrQuoteNotFound)
	})
}

func TestQuoteRepositoriesConcurrentStore(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping concurrent store test in short mode")
	}

	ctx := context.Background()
	date := time.Date(2023, 6, 6, 0, 0, 0, 0, time.UTC)

	for name, newRepo := range map[string]func(t *testing.T) closableRepository{
		"badger": newBadgerRepo,
		"memory": newMemoryRepo,
	} {
		t.Run(name, func(t *testing.T) {
			repo := newRepo(t)

			var wg sync.WaitGroup
			for i := 0; i < 50; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					q := entity.NewCurrencyQuote(entity.BRL, decimal.NewFromInt(int64(i)), date)
					assert.NoError(t, repo.Store(ctx, q), fmt.Sprintf("store %d", i))
				}(i)
			}
			wg.Wait()

			_, err := repo.FindFirst(ctx, entity.BRL, date)
			assert.NoError(t, err)
		})
	}
}

func TestBadgerQuoteRepositoryOrderSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	date := time.Date(2023, 5, 4, 0, 0, 0, 0, time.UTC)

	bdb, err := OpenBadger(dir)
	require.NoError(t, err)
	repo, err := NewBadgerQuoteRepository(bdb)
	require.NoError(t, err)

	first := entity.NewCurrencyQuote(entity.BRL, decimal.RequireFromString("5.01"), date)
	require.NoError(t, repo.Store(ctx, first))
	require.NoError(t, repo.Close())
	require.NoError(t, bdb.Close())

	bdb, err = OpenBadger(dir)
	require.NoError(t, err)
	repo, err = NewBadgerQuoteRepository(bdb)
	require.NoError(t, err)
	defer func() {
		repo.Close()
		bdb.Close()
	}()

	require.NoError(t, repo.Store(ctx, entity.NewCurrencyQuote(entity.BRL, decimal.RequireFromString("5.02"), date)))

	found, err := repo.FindFirst(ctx, entity.BRL, date)
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)
}

func TestOpenQuoteStore(t *testing.T) {
	log := logger.NewJSONLogger(nil, logger.ErrorLevel)
	ctx := context.Background()
	date := time.Date(2023, 6, 6, 0, 0, 0, 0, time.UTC)

	drivers := []config.Storage{
		{Driver: config.DriverBadger, BadgerPath: filepath.Join(t.TempDir(), "badger")},
		{Driver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "cotacao.db")},
		{Driver: config.DriverMemory},
	}

	for _, cfg := range drivers {
		t.Run(cfg.Driver, func(t *testing.T) {
			store, err := OpenQuoteStore(cfg, log)
			require.NoError(t, err)
			assert.Equal(t, cfg.Driver, store.Driver)

			require.NoError(t, store.Store(ctx, entity.NewCurrencyQuote(entity.EUR, decimal.RequireFromString("0.93"), date)))
			_, err = store.FindFirst(ctx, entity.EUR, date)
			assert.NoError(t, err)

			assert.NoError(t, store.Close())
		})
	}

	t.Run("unknown driver", func(t *testing.T) {
		_, err := OpenQuoteStore(config.Storage{Driver: "mongo"}, log)
		assert.ErrorContains(t, err, "unknown storage driver")
	})
}

package db

import (
	"errors"
	"fmt"

	"github.com/damon-houk/cotacao/internal/config"
	"github.com/damon-houk/cotacao/internal/domain/repository"
	"github.com/damon-houk/cotacao/internal/infrastructure/logger"
)

// QuoteStore is an open quote repository together with its backing resources
type QuoteStore struct {
	repository.QuoteRepository
	Driver  string
	closers []func() error
}

// Close releases the store's resources in reverse order of acquisition
func (s *QuoteStore) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// OpenQuoteStore builds the quote repository selected by cfg.Driver
func OpenQuoteStore(cfg config.Storage, log logger.Logger) (*QuoteStore, error) {
	log = logger.OrDefault(log)

	store := &QuoteStore{Driver: cfg.Driver}

	switch cfg.Driver {
	case config.DriverBadger:
		bdb, err := OpenBadger(cfg.BadgerPath)
		if err != nil {
			return nil, err
		}

		repo, err := NewBadgerQuoteRepository(bdb)
		if err != nil {
			_ = bdb.Close()
			return nil, err
		}

		store.QuoteRepository = repo
		store.closers = []func() error{bdb.Close, repo.Close}

	case config.DriverSQLite, config.DriverPostgres:
		open, target := OpenSQLite, cfg.SQLitePath
		if cfg.Driver == config.DriverPostgres {
			open, target = OpenPostgres, cfg.PostgresDSN
		}

		gdb, err := open(target)
		if err != nil {
			return nil, err
		}

		repo := NewGormQuoteRepository(gdb)
		store.QuoteRepository = repo
		store.closers = []func() error{repo.Close}

	case config.DriverMemory:
		repo := NewMemoryQuoteRepository()
		store.QuoteRepository = repo
		store.closers = []func() error{repo.Close}

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}

	log.Info("Quote store opened", map[string]interface{}{
		"driver": cfg.Driver,
	})

	return store, nil
}

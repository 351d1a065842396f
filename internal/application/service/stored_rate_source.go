package service

import (
	"context"
	"errors"
	"time"

	"github.com/damon-houk/cotacao/internal/domain/entity"
	"github.com/damon-houk/cotacao/internal/domain/repository"
	domainsvc "github.com/damon-houk/cotacao/internal/domain/service"
	"github.com/damon-houk/cotacao/internal/infrastructure/logger"
	"github.com/damon-houk/cotacao/internal/infrastructure/middleware"
)

// StoredRateSource answers from previously persisted quotes only
type StoredRateSource struct {
	repo     repository.QuoteRepository
	observer QuoteObserver
	logger   logger.Logger
}

// NewStoredRateSource creates a stored source; observer may be nil
func NewStoredRateSource(repo repository.QuoteRepository, observer QuoteObserver, log logger.Logger) *StoredRateSource {
	if observer == nil {
		observer = nopObserver{}
	}

	return &StoredRateSource{
		repo:     repo,
		observer: observer,
		logger:   logger.OrDefault(log),
	}
}

func (s *StoredRateSource) Kind() domainsvc.SourceKind {
	return domainsvc.SourceStored
}

// Fetch returns the first quote stored for the date, NotFound when there is none
func (s *StoredRateSource) Fetch(ctx context.Context, currency entity.Currency, date time.Time) (domainsvc.RateResult, error) {
	quote, err := s.repo.FindFirst(ctx, currency, date)
	if errors.Is(err, repository.ErrQuoteNotFound) {
		s.observer.ObserveQuote(string(domainsvc.SourceStored), domainsvc.NotFound.String())
		return domainsvc.MissingRate(), nil
	}
	if err != nil {
		s.logger.Error("Failed to read stored quote", map[string]interface{}{
			"request_id": middleware.GetRequestID(ctx),
			"currency":   currency.String(),
			"date":       entity.FormatDate(date),
			"error":      err.Error(),
		})
		return domainsvc.RateResult{}, err
	}

	s.observer.ObserveQuote(string(domainsvc.SourceStored), domainsvc.Found.String())
	return domainsvc.FoundRate(quote.Quote), nil
}

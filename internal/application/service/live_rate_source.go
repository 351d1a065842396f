package service

import (
	"context"
	"time"

	"github.com/damon-houk/cotacao/internal/domain/entity"
	"github.com/damon-houk/cotacao/internal/domain/repository"
	domainsvc "github.com/damon-houk/cotacao/internal/domain/service"
	"github.com/damon-houk/cotacao/internal/infrastructure/logger"
	"github.com/damon-houk/cotacao/internal/infrastructure/middleware"
)

// QuoteObserver receives per-date outcomes for instrumentation
type QuoteObserver interface {
	ObserveQuote(source, outcome string)
	ObservePersistFailure()
}

type nopObserver struct{}

func (nopObserver) ObserveQuote(string, string) {}
func (nopObserver) ObservePersistFailure()      {}

// LiveRateSource asks the provider for each date and stores every answer it gets
type LiveRateSource struct {
	provider domainsvc.RateProvider
	repo     repository.QuoteRepository
	observer QuoteObserver
	logger   logger.Logger
}

// NewLiveRateSource creates a live source; observer may be nil
func NewLiveRateSource(provider domainsvc.RateProvider, repo repository.QuoteRepository, observer QuoteObserver, log logger.Logger) *LiveRateSource {
	if observer == nil {
		observer = nopObserver{}
	}

	return &LiveRateSource{
		provider: provider,
		repo:     repo,
		observer: observer,
		logger:   logger.OrDefault(log),
	}
}

func (s *LiveRateSource) Kind() domainsvc.SourceKind {
	return domainsvc.SourceLive
}

// Fetch never returns an error: provider failures become FetchFailed and
// persistence failures are logged.
func (s *LiveRateSource) Fetch(ctx context.Context, currency entity.Currency, date time.Time) (domainsvc.RateResult, error) {
	requestID := middleware.GetRequestID(ctx)
	day := entity.FormatDate(date)

	table, err := s.provider.FetchRates(ctx, entity.BaseCurrency, date)
	if err != nil {
		s.logger.Warn("Failed to fetch rates from provider", map[string]interface{}{
			"request_id": requestID,
			"currency":   currency.String(),
			"date":       day,
			"error":      err.Error(),
		})
		s.observer.ObserveQuote(string(domainsvc.SourceLive), domainsvc.FetchFailed.String())
		return domainsvc.FailedRate(), nil
	}

	result := domainsvc.UnavailableRate()
	if rate, ok := table.Rate(currency); ok {
		result = domainsvc.FoundRate(rate)
	} else {
		s.logger.Info("Provider did not publish currency", map[string]interface{}{
			"request_id": requestID,
			"currency":   currency.String(),
			"date":       day,
		})
	}

	// the provider answered, so the date is recorded even when the currency was absent
	quote := entity.NewCurrencyQuote(currency, result.Value, date)
	if err := s.repo.Store(ctx, quote); err != nil {
		s.logger.Error("Failed to persist quote", map[string]interface{}{
			"request_id": requestID,
			"currency":   currency.String(),
			"date":       day,
			"error":      err.Error(),
		})
		s.observer.ObservePersistFailure()
	} else {
		s.logger.Debug("Persisted quote", map[string]interface{}{
			"request_id": requestID,
			"id":         quote.ID,
			"currency":   currency.String(),
			"date":       day,
			"quote":      quote.Quote.String(),
		})
	}

	s.observer.ObserveQuote(string(domainsvc.SourceLive), result.Kind.String())
	return result, nil
}

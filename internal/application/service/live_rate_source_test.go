package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/damon-houk/cotacao/internal/domain/entity"
	domainsvc "github.com/damon-houk/cotacao/internal/domain/service"
	"github.com/damon-houk/cotacao/internal/infrastructure/logger"
	"github.com/damon-houk/cotacao/internal/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLiveRateSource(t *testing.T) {
	ctx := context.Background()
	log := logger.NewJSONLogger(nil, logger.ErrorLevel)
	date := time.Date(2023, 6, 6, 0, 0, 0, 0, time.UTC)

	t.Run("Published rate is returned and persisted", func(t *testing.T) {
		provider := new(mocks.MockRateProvider)
		repo := new(mocks.MockQuoteRepository)
		observer := new(mocks.MockQuoteObserver)
		source := NewLiveRateSource(provider, repo, observer, log)

		table := &entity.RateTable{
			Base:  entity.USD,
			Date:  date,
			Rates: map[string]decimal.Decimal{"BRL": decimal.RequireFromString("4.9312"), "EUR": decimal.RequireFromString("0.93")},
		}
		provider.On("FetchRates", ctx, entity.USD, date).Return(table, nil).Once()
		repo.On("Store", ctx, mock.MatchedBy(func(q *entity.CurrencyQuote) bool {
			return q.BaseCurrency == entity.USD &&
				q.TargetCurrency == entity.BRL &&
				q.Quote.Equal(decimal.RequireFromString("4.9312")) &&
				q.Date.Equal(date) &&
				q.ID != ""
		})).Return(nil).Once()
		observer.On("ObserveQuote", "live", "found").Once()

		result, err := source.Fetch(ctx, entity.BRL, date)

		require.NoError(t, err)
		assert.Equal(t, domainsvc.Found, result.Kind)
		assert.True(t, result.Available)
		assert.True(t, result.Value.Equal(decimal.RequireFromString("4.9312")))
		assert.Equal(t, domainsvc.SourceLive, source.Kind())

		provider.AssertExpectations(t)
		repo.AssertExpectations(t)
		observer.AssertExpectations(t)
	})

	t.Run("Missing currency persists a zero quote", func(t *testing.T) {
		provider := new(mocks.MockRateProvider)
		repo := new(mocks.MockQuoteRepository)
		source := NewLiveRateSource(provider, repo, nil, log)

		table := &entity.RateTable{Base: entity.USD, Date: date, Rates: map[string]decimal.Decimal{"EUR": decimal.RequireFromString("0.93")}}
		provider.On("FetchRates", ctx, entity.USD, date).Return(table, nil).Once()
		repo.On("Store", ctx, mock.MatchedBy(func(q *entity.CurrencyQuote) bool {
			return q.TargetCurrency == entity.JPY && q.Quote.IsZero()
		})).Return(nil).Once()

		result, err := source.Fetch(ctx, entity.JPY, date)

		require.NoError(t, err)
		assert.Equal(t, domainsvc.Found, result.Kind)
		assert.False(t, result.Available)
		assert.True(t, result.Value.IsZero())

		repo.AssertExpectations(t)
	})

	t.Run("Provider failure is reported and nothing is stored", func(t *testing.T) {
		provider := new(mocks.MockRateProvider)
		repo := new(mocks.MockQuoteRepository)
		observer := new(mocks.MockQuoteObserver)
		source := NewLiveRateSource(provider, repo, observer, log)

		provider.On("FetchRates", ctx, entity.USD, date).Return(nil, errors.New("status 503")).Once()
		observer.On("ObserveQuote", "live", "fetch_failed").Once()

		result, err := source.Fetch(ctx, entity.BRL, date)

		require.NoError(t, err)
		assert.Equal(t, domainsvc.FetchFailed, result.Kind)

		repo.AssertNotCalled(t, "Store", mock.Anything, mock.Anything)
		observer.AssertExpectations(t)
	})

	t.Run("Persist failure does not change the outcome", func(t *testing.T) {
		provider := new(mocks.MockRateProvider)
		repo := new(mocks.MockQuoteRepository)
		observer := new(mocks.MockQuoteObserver)
		source := NewLiveRateSource(provider, repo, observer, log)

		table := &entity.RateTable{Base: entity.USD, Date: date, Rates: map[string]decimal.Decimal{"EUR": decimal.RequireFromString("0.93")}}
		provider.On("FetchRates", ctx, entity.USD, date).Return(table, nil).Once()
		repo.On("Store", ctx, mock.Anything).Return(errors.New("disk full")).Once()
		observer.On("ObservePersistFailure").Once()
		observer.On("ObserveQuote", "live", "found").Once()

		result, err := source.Fetch(ctx, entity.EUR, date)

		require.NoError(t, err)
		assert.Equal(t, domainsvc.Found, result.Kind)
		assert.True(t, result.Value.Equal(decimal.RequireFromString("0.93")))
		observer.AssertExpectations(t)
	})
}

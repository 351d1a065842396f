// Package mocks holds testify mocks for the domain ports
package mocks

import (
	"context"
	"time"

	"github.com/damon-houk/cotacao/internal/domain/entity"
	domainsvc "github.com/damon-houk/cotacao/internal/domain/service"
	"github.com/damon-houk/cotacao/internal/infrastructure/logger"
	"github.com/stretchr/testify/mock"
)

// MockQuoteRepository mocks the QuoteRepository interface
type MockQuoteRepository struct {
	mock.Mock
}

func (m *MockQuoteRepository) Store(ctx context.Context, quote *entity.CurrencyQuote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}

func (m *MockQuoteRepository) FindFirst(ctx context.Context, currency entity.Currency, date time.Time) (*entity.CurrencyQuote, error) {
	args := m.Called(ctx, currency, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CurrencyQuote), args.Error(1)
}

// MockRateProvider mocks the external rate provider
type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) FetchRates(ctx context.Context, base entity.Currency, date time.Time) (*entity.RateTable, error) {
	args := m.Called(ctx, base, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RateTable), args.Error(1)
}

// MockRateSource mocks a RateSource of a fixed kind
type MockRateSource struct {
	mock.Mock
	SourceKind domainsvc.SourceKind
}

func (m *MockRateSource) Kind() domainsvc.SourceKind {
	return m.SourceKind
}

func (m *MockRateSource) Fetch(ctx context.Context, currency entity.Currency, date time.Time) (domainsvc.RateResult, error) {
	args := m.Called(ctx, currency, date)
	return args.Get(0).(domainsvc.RateResult), args.Error(1)
}

// MockQuoteObserver mocks the instrumentation hook of the rate sources
type MockQuoteObserver struct {
	mock.Mock
}

func (m *MockQuoteObserver) ObserveQuote(source, outcome string) {
	m.Called(source, outcome)
}

func (m *MockQuoteObserver) ObservePersistFailure() {
	m.Called()
}

// MockLogger mocks the logger interface
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Info(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Warn(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Error(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Fatal(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) WithField(key string, value interface{}) logger.Logger {
	args := m.Called(key, value)
	return args.Get(0).(logger.Logger)
}

func (m *MockLogger) WithFields(fields map[string]interface{}) logger.Logger {
	args := m.Called(fields)
	return args.Get(0).(logger.Logger)
}

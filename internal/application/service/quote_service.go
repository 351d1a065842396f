package service

import (
	"context"
	"fmt"
	"time"

	"github.com/damon-houk/cotacao/internal/domain/entity"
	domainsvc "github.com/damon-houk/cotacao/internal/domain/service"
	"github.com/damon-houk/cotacao/internal/infrastructure/logger"
	"github.com/damon-houk/cotacao/internal/infrastructure/middleware"
	"github.com/shopspring/decimal"
)

// QuoteRequest is a raw, unvalidated lookup as received from a client
type QuoteRequest struct {
	Source    domainsvc.SourceKind
	Currency  string
	StartDate string
	EndDate   string
}

// QuoteResult holds one line per requested date plus the raw values.
// Values skips dates whose fetch failed, so it can be shorter than Dates.
type QuoteResult struct {
	Source   domainsvc.SourceKind `json:"source"`
	Currency entity.Currency      `json:"currency"`
	Results  []string             `json:"results"`
	Dates    []time.Time          `json:"dates"`
	Values   []decimal.Decimal    `json:"values"`
	Symbol   string               `json:"symbol"`
	Name     string               `json:"name"`
}

// Option configures a QuoteService
type Option func(*QuoteService)

// WithClock replaces time.Now as the source of today's date
func WithClock(now func() time.Time) Option {
	return func(s *QuoteService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the timezone in which today's calendar date is taken
func WithLocation(loc *time.Location) Option {
	return func(s *QuoteService) {
		if loc != nil {
			s.location = loc
		}
	}
}

// QuoteService validates quote requests and collects per-date rates
type QuoteService struct {
	sources  map[domainsvc.SourceKind]domainsvc.RateSource
	now      func() time.Time
	location *time.Location
	logger   logger.Logger
}

// NewQuoteService creates a service dispatching to the given sources by kind
func NewQuoteService(sources []domainsvc.RateSource, log logger.Logger, opts ...Option) *QuoteService {
	s := &QuoteService{
		sources:  make(map[domainsvc.SourceKind]domainsvc.RateSource, len(sources)),
		now:      time.Now,
		location: time.Local,
		logger:   logger.OrDefault(log),
	}

	for _, src := range sources {
		s.sources[src.Kind()] = src
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Today returns the current calendar date in the configured location
func (s *QuoteService) Today() time.Time {
	return entity.DateOf(s.now().In(s.location))
}

// Handle validates req and fetches a rate for every date in its range.
// A stored lookup stops at the first date with no data.
func (s *QuoteService) Handle(ctx context.Context, req QuoteRequest) (*QuoteResult, error) {
	requestID := middleware.GetRequestID(ctx)

	if req.EndDate == "" {
		req.EndDate = req.StartDate
	}

	s.logger.Info("Handling quote request", map[string]interface{}{
		"request_id": requestID,
		"source":     string(req.Source),
		"currency":   req.Currency,
		"start_date": req.StartDate,
		"end_date":   req.EndDate,
	})

	today := s.Today()
	currency, dateRange, err := ValidateRequest(req.Currency, req.StartDate, req.EndDate, today)
	if err != nil {
		s.logger.Info("Rejected quote request", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		return nil, err
	}

	source, ok := s.sources[req.Source]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, req.Source)
	}

	descriptor := currency.Descriptor()
	result := &QuoteResult{
		Source:   req.Source,
		Currency: currency,
		Results:  []string{},
		Dates:    dateRange.Dates(),
		Values:   []decimal.Decimal{},
		Symbol:   descriptor.Symbol,
		Name:     descriptor.Name,
	}

	for _, date := range result.Dates {
		rate, err := source.Fetch(ctx, currency, date)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s quote for %s: %w", currency, entity.FormatDate(date), err)
		}

		switch rate.Kind {
		case domainsvc.Found:
			result.Results = append(result.Results, formatQuoteLine(currency, date, rate))
			result.Values = append(result.Values, rate.Value)
		case domainsvc.FetchFailed:
			result.Results = append(result.Results, fmt.Sprintf("failed to fetch quote for %s", entity.FormatDate(date)))
		case domainsvc.NotFound:
			s.logger.Info("No stored quote for date", map[string]interface{}{
				"request_id": requestID,
				"currency":   currency.String(),
				"date":       entity.FormatDate(date),
			})
			return nil, fmt.Errorf("%w: %s on %s", ErrNoStoredData, currency, entity.FormatDate(date))
		}
	}

	s.logger.Info("Quote request completed", map[string]interface{}{
		"request_id": requestID,
		"source":     string(req.Source),
		"currency":   currency.String(),
		"range":      dateRange.String(),
		"results":    len(result.Results),
		"values":     len(result.Values),
	})

	return result, nil
}

func formatQuoteLine(currency entity.Currency, date time.Time, rate domainsvc.RateResult) string {
	value := "N/A"
	if rate.Available {
		value = rate.Value.String()
	}
	return fmt.Sprintf("Date: %s, %s→%s: %s", entity.FormatDate(date), entity.BaseCurrency, currency, value)
}

// Package service defines the domain ports used to obtain rates
package service

import (
	"context"
	"time"

	"github.com/damon-houk/cotacao/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// SourceKind selects where rates come from
type SourceKind string

const (
	// SourceLive queries the external provider and persists what it returns
	SourceLive SourceKind = "live"
	// SourceStored reads previously persisted quotes only
	SourceStored SourceKind = "stored"
)

// ResultKind classifies the outcome of a single per-date fetch
type ResultKind int

const (
	Found ResultKind = iota
	NotFound
	FetchFailed
)

func (k ResultKind) String() string {
	switch k {
	case Found:
		return "found"
	case NotFound:
		return "not_found"
	case FetchFailed:
		return "fetch_failed"
	default:
		return "unknown"
	}
}

// RateResult is the outcome of fetching one currency on one date.
// Available is false when the provider answered but did not publish the
// currency; Value is then zero.
type RateResult struct {
	Kind      ResultKind
	Value     decimal.Decimal
	Available bool
}

// FoundRate wraps a published rate
func FoundRate(v decimal.Decimal) RateResult {
	return RateResult{Kind: Found, Value: v, Available: true}
}

// UnavailableRate is a successful fetch that lacked the requested currency
func UnavailableRate() RateResult {
	return RateResult{Kind: Found, Value: decimal.Zero}
}

// MissingRate reports that nothing is known for the date
func MissingRate() RateResult {
	return RateResult{Kind: NotFound}
}

// FailedRate reports that the provider could not be queried
func FailedRate() RateResult {
	return RateResult{Kind: FetchFailed}
}

// RateSource retrieves the USD rate of a currency on a date
type RateSource interface {
	// Kind identifies the source for routing and metrics
	Kind() SourceKind

	// Fetch returns the per-date outcome. A non-nil error means the source
	// itself is broken (storage I/O) rather than the date lacking data.
	Fetch(ctx context.Context, currency entity.Currency, date time.Time) (RateResult, error)
}

// RateProvider defines the interface for the external rate publisher
type RateProvider interface {
	// FetchRates retrieves every rate published for base on date
	FetchRates(ctx context.Context, base entity.Currency, date time.Time) (*entity.RateTable, error)
}

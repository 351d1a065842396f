package handler

import (
	"github.com/damon-houk/cotacao/internal/application/service"
	"github.com/damon-houk/cotacao/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error       string `json:"error"`
	Status      int    `json:"status"`
	Description string `json:"description,omitempty"`
	RequestID   string `json:"request_id,omitempty"`
}

// QuoteResponse represents the response for the quote endpoints
type QuoteResponse struct {
	Source   string            `json:"source"`
	Currency string            `json:"currency"`
	Name     string            `json:"name"`
	Symbol   string            `json:"symbol"`
	Results  []string          `json:"results"`
	Dates    []string          `json:"dates"`
	Values   []decimal.Decimal `json:"values"`
}

// CurrencyOption is one selectable currency on the index page
type CurrencyOption struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// IndexResponse describes what the service can quote
type IndexResponse struct {
	Currencies   []CurrencyOption `json:"currencies"`
	MaxRangeDays int              `json:"max_range_days"`
	Today        string           `json:"today"`
}

// chartPoint is one row of the HTML quote table
type chartPoint struct {
	Date    string
	Value   string
	Percent int
}

// quotePage is the HTML view of a QuoteResponse
type quotePage struct {
	QuoteResponse
	Points []chartPoint
}

func newQuoteResponse(result *service.QuoteResult) QuoteResponse {
	dates := make([]string, len(result.Dates))
	for i, d := range result.Dates {
		dates[i] = entity.FormatDate(d)
	}

	return QuoteResponse{
		Source:   string(result.Source),
		Currency: result.Currency.String(),
		Name:     result.Name,
		Symbol:   result.Symbol,
		Results:  result.Results,
		Dates:    dates,
		Values:   result.Values,
	}
}

// newQuotePage pairs dates with values for the table. When a fetch failed
// the lists no longer line up and only the result lines are shown.
func newQuotePage(resp QuoteResponse) quotePage {
	page := quotePage{QuoteResponse: resp}
	if len(resp.Values) == 0 || len(resp.Values) != len(resp.Dates) {
		return page
	}

	max := decimal.Max(resp.Values[0], resp.Values[1:]...)
	for i, v := range resp.Values {
		percent := 0
		if max.IsPositive() {
			percent = int(v.Div(max).Mul(decimal.NewFromInt(100)).IntPart())
		}
		page.Points = append(page.Points, chartPoint{
			Date:    resp.Dates[i],
			Value:   v.String(),
			Percent: percent,
		})
	}
	return page
}

func newIndexResponse(today string) IndexResponse {
	options := make([]CurrencyOption, 0, len(entity.SupportedCurrencies))
	for _, c := range entity.SupportedCurrencies {
		d := c.Descriptor()
		options = append(options, CurrencyOption{Code: c.String(), Name: d.Name, Symbol: d.Symbol})
	}

	return IndexResponse{
		Currencies:   options,
		MaxRangeDays: entity.MaxRangeDays,
		Today:        today,
	}
}

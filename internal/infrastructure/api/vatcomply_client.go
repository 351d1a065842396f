package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/damon-houk/cotacao/internal/domain/entity"
	"github.com/damon-houk/cotacao/internal/infrastructure/logger"
	"github.com/damon-houk/cotacao/internal/infrastructure/middleware"
	"github.com/shopspring/decimal"
)

const (
	// DefaultBaseURL is the public VATComply endpoint
	DefaultBaseURL = "https://api.vatcomply.com"
	ratesPath      = "/rates"

	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 1 << 20
)

// CallObserver is notified of every provider round trip
type CallObserver interface {
	ObserveProviderCall(ok bool)
}

// VatComplyClient fetches daily reference rates from VATComply
type VatComplyClient struct {
	baseURL    string
	httpClient *http.Client
	observer   CallObserver
	logger     logger.Logger
}

// NewVatComplyClient creates a client; an empty baseURL selects DefaultBaseURL
// and a nil httpClient gets a 10 second timeout
func NewVatComplyClient(baseURL string, httpClient *http.Client, log logger.Logger) *VatComplyClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: defaultTimeout,
		}
	}

	return &VatComplyClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger.OrDefault(log),
	}
}

// WithObserver attaches a call observer and returns the client
func (c *VatComplyClient) WithObserver(observer CallObserver) *VatComplyClient {
	c.observer = observer
	return c
}

// RatesResponse is the body returned by GET /rates
type RatesResponse struct {
	Date  string                     `json:"date"`
	Base  string                     `json:"base"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// FetchRates retrieves every rate published against base on date
func (c *VatComplyClient) FetchRates(ctx context.Context, base entity.Currency, date time.Time) (table *entity.RateTable, err error) {
	defer func() {
		if c.observer != nil {
			c.observer.ObserveProviderCall(err == nil)
		}
	}()

	query := url.Values{}
	query.Set("base", base.String())
	query.Set("date", entity.FormatDate(date))
	reqURL := c.baseURL + ratesPath + "?" + query.Encode()

	requestID := middleware.GetRequestID(ctx)
	c.logger.Debug("Requesting provider rates", map[string]interface{}{
		"request_id": requestID,
		"url":        reqURL,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Add("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("Error closing response body", map[string]interface{}{
				"request_id": requestID,
				"error":      closeErr.Error(),
			})
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug("Provider responded", map[string]interface{}{
		"request_id": requestID,
		"status":     resp.StatusCode,
		"bytes":      len(body),
	})

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider returned error status: %d, body: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var ratesResp RatesResponse
	if err := json.Unmarshal(body, &ratesResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	// the provider answers weekends with the last business day
	rateDate := entity.DateOf(date)
	if ratesResp.Date != "" {
		if published, err := entity.ParseDate(ratesResp.Date); err == nil {
			rateDate = published
		}
	}

	respBase := base
	if ratesResp.Base != "" {
		respBase = entity.Currency(strings.ToUpper(ratesResp.Base))
	}

	rates := ratesResp.Rates
	if rates == nil {
		rates = map[string]decimal.Decimal{}
	}

	return &entity.RateTable{
		Base:  respBase,
		Date:  rateDate,
		Rates: rates,
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

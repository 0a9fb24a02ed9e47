// Package exchangerate implements the rate provider port against an
// exchangeratesapi.io-compatible HTTP endpoint.
package exchangerate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/CHSevero/currency-exchange-api/internal/core/domain"
	portsprov "github.com/CHSevero/currency-exchange-api/internal/core/ports/providers"
	"github.com/sethvargo/go-retry"
	"github.com/shopspring/decimal"
)

const (
	fetchMaxRetries = 2
	fetchRetryBase  = 250 * time.Millisecond
)

// Client fetches rate tables over HTTP. Success is a 200 response with a JSON
// body containing a "rates" object; anything else is a fetch failure.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

var _ portsprov.RateProvider = (*Client)(nil)

// NewClient creates a provider client. The timeout bounds each attempt.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ratesResponse is the provider payload. Rates decode as json.Number so no
// value ever passes through a binary float.
type ratesResponse struct {
	Rates map[string]json.Number `json:"rates"`
}

// FetchRates retrieves the rate table for baseCurrency. Transport failures
// and 5xx responses are retried with fibonacci backoff; client errors and
// malformed payloads fail immediately.
func (c *Client) FetchRates(ctx context.Context, baseCurrency string) (domain.RateTable, error) {
	var table domain.RateTable

	backoff := retry.WithMaxRetries(fetchMaxRetries, retry.NewFibonacci(fetchRetryBase))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		rates, err := c.fetchOnce(ctx, baseCurrency)
		if err != nil {
			return err
		}
		table = rates
		return nil
	})
	if err != nil {
		return nil, err
	}
	return table, nil
}

func (c *Client) fetchOnce(ctx context.Context, baseCurrency string) (domain.RateTable, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid rate provider URL: %w", err)
	}
	q := u.Query()
	q.Set("base", baseCurrency)
	q.Set("access_key", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build rate provider request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, retry.RetryableError(fmt.Errorf("failed to fetch rates from provider: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		statusErr := fmt.Errorf("rate provider returned status %d", resp.StatusCode)
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, retry.RetryableError(statusErr)
		}
		return nil, statusErr
	}

	var payload ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("error decoding rate provider response: %w", err)
	}
	if payload.Rates == nil {
		return nil, errors.New("rate provider response missing rates field")
	}

	rates := make(map[string]decimal.Decimal, len(payload.Rates))
	for code, raw := range payload.Rates {
		rate, err := decimal.NewFromString(raw.String())
		if err != nil {
			return nil, fmt.Errorf("invalid rate %q for %s in provider response: %w", raw.String(), code, err)
		}
		rates[code] = rate
	}

	return domain.NewRateTable(baseCurrency, rates), nil
}

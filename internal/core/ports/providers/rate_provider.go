package providers

import (
	"context"

	"github.com/CHSevero/currency-exchange-api/internal/core/domain"
)

// RateProvider fetches a live rate table from an external rate service.
type RateProvider interface {
	// FetchRates retrieves the full rate table for the given base currency.
	// Any transport error, non-success status or malformed payload is a fetch
	// failure; callers treat all failure shapes identically.
	FetchRates(ctx context.Context, baseCurrency string) (domain.RateTable, error)
}

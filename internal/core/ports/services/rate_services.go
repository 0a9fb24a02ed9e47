package services

import (
	"context"

	"github.com/shopspring/decimal"
)

// RateSvcFacade exposes exchange-rate lookups backed by the cache/fallback
// engine.
type RateSvcFacade interface {
	// GetExchangeRate returns the rate from fromCurrency to toCurrency,
	// rounded to 9 decimal places. Identical currencies yield exactly 1
	// without any fetch or store access.
	GetExchangeRate(ctx context.Context, fromCurrency, toCurrency string) (decimal.Decimal, error)
}

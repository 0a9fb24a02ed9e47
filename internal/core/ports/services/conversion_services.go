package services

import (
	"context"

	"github.com/CHSevero/currency-exchange-api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConversionSvcFacade exposes the currency conversion operation.
type ConversionSvcFacade interface {
	// Convert validates the amount, obtains a rate, computes the converted
	// amount at display precision and persists exactly one transaction.
	// The returned transaction carries the stored identifier and timestamp.
	Convert(ctx context.Context, userID, fromCurrency, toCurrency string, amount decimal.Decimal) (*domain.Transaction, error)
}

package dto

import "github.com/shopspring/decimal"

// ExchangeRateResponse defines the structure for API responses containing a
// looked-up exchange rate (9 decimal places).
type ExchangeRateResponse struct {
	FromCurrency string          `json:"fromCurrency"`
	ToCurrency   string          `json:"toCurrency"`
	Rate         decimal.Decimal `json:"rate"`
}

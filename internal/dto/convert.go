package dto

import (
	"time"

	"github.com/CHSevero/currency-exchange-api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConvertRequest defines the structure for a currency conversion call.
type ConvertRequest struct {
	UserID       string          `json:"userID" binding:"required"`
	FromCurrency string          `json:"fromCurrency" binding:"required,currencycode"`
	ToCurrency   string          `json:"toCurrency" binding:"required,currencycode"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
}

// MoneyAmount pairs an amount with its currency code.
type MoneyAmount struct {
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
}

// ConvertResponse defines the structure for API responses to a conversion.
type ConvertResponse struct {
	TransactionID string          `json:"transactionID"`
	UserID        string          `json:"userID"`
	From          MoneyAmount     `json:"from"`
	To            MoneyAmount     `json:"to"`
	Rate          decimal.Decimal `json:"rate"`
	Timestamp     time.Time       `json:"timestamp"`
}

// ToConvertResponse converts a stored domain.Transaction to a ConvertResponse DTO
func ToConvertResponse(txn *domain.Transaction) ConvertResponse {
	return ConvertResponse{
		TransactionID: txn.TransactionID,
		UserID:        txn.UserID,
		From: MoneyAmount{
			Currency: txn.SourceCurrency,
			Amount:   txn.SourceAmount,
		},
		To: MoneyAmount{
			Currency: txn.TargetCurrency,
			Amount:   txn.TargetAmount,
		},
		Rate:      txn.ExchangeRate,
		Timestamp: txn.Timestamp,
	}
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction records a single completed currency conversion. It is created
// exactly once per successful conversion and is immutable afterwards.
// ExchangeRate and TargetAmount are stored at display precision (2 dp).
type Transaction struct {
	TransactionID  string          `json:"transactionID"` // Primary Key (UUID)
	UserID         string          `json:"userID"`
	SourceCurrency string          `json:"sourceCurrency"`
	TargetCurrency string          `json:"targetCurrency"`
	SourceAmount   decimal.Decimal `json:"sourceAmount"`
	TargetAmount   decimal.Decimal `json:"targetAmount"`
	ExchangeRate   decimal.Decimal `json:"exchangeRate"`
	Timestamp      time.Time       `json:"timestamp"` // UTC
}

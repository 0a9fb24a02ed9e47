package dto

import (
	"time"

	"github.com/CHSevero/currency-exchange-api/internal/core/domain"
)

// ListTransactionsParams carries pagination and date-range filters for a
// transaction-history query. Nil fields mean "no filter".
type ListTransactionsParams struct {
	Limit    int
	Offset   int
	FromDate *time.Time
	ToDate   *time.Time
}

// TransactionResponse mirrors ConvertResponse for a historical transaction.
type TransactionResponse = ConvertResponse

// TransactionListResponse defines the structure for transaction-history
// responses. Count is the number of returned entries, Total the number of
// transactions matching the filters before pagination.
type TransactionListResponse struct {
	UserID       string                `json:"userID"`
	Transactions []TransactionResponse `json:"transactions"`
	Count        int                   `json:"count"`
	Total        int64                 `json:"total"`
}

// ToTransactionListResponse converts domain transactions to a list response DTO.
func ToTransactionListResponse(userID string, txns []domain.Transaction, total int64) *TransactionListResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToConvertResponse(&txns[i])
	}
	return &TransactionListResponse{
		UserID:       userID,
		Transactions: responses,
		Count:        len(responses),
		Total:        total,
	}
}

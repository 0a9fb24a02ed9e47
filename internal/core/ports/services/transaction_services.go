package services

import (
	"context"

	"github.com/CHSevero/currency-exchange-api/internal/dto"
)

// TransactionSvcFacade exposes conversion-history queries.
type TransactionSvcFacade interface {
	// ListUserTransactions returns a user's conversion history newest-first
	// with optional pagination and date-range filtering. A user with no
	// transactions at all yields apperrors.ErrNotFound.
	ListUserTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.TransactionListResponse, error)
}

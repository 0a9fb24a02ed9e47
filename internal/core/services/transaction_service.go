package services

import (
	"context"
	"fmt"
	"time"

	"github.com/CHSevero/currency-exchange-api/internal/apperrors"
	portsrepo "github.com/CHSevero/currency-exchange-api/internal/core/ports/repositories"
	"github.com/CHSevero/currency-exchange-api/internal/dto"
)

// TransactionService provides conversion-history queries.
type TransactionService struct {
	txnRepo portsrepo.TransactionRepositoryFacade
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade) *TransactionService {
	return &TransactionService{txnRepo: txnRepo}
}

// ListUserTransactions returns a user's transaction history newest-first,
// with optional UTC date-range filtering and limit/offset pagination.
func (s *TransactionService) ListUserTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.TransactionListResponse, error) {
	// Existence check is independent of the date filters: an unknown user is
	// a 404, an empty filtered window is an empty page.
	totalForUser, err := s.txnRepo.CountTransactions(ctx, userID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions in service: %w", err)
	}
	if totalForUser == 0 {
		return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
	}

	fromDate := normalizeUTC(params.FromDate)
	toDate := normalizeUTC(params.ToDate)

	total, err := s.txnRepo.CountTransactions(ctx, userID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("failed to count filtered transactions in service: %w", err)
	}

	txns, err := s.txnRepo.ListTransactions(ctx, userID, params.Limit, params.Offset, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions in service: %w", err)
	}

	return dto.ToTransactionListResponse(userID, txns, total), nil
}

func normalizeUTC(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}

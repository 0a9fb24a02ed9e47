package repositories

import (
	"context"
	"time"

	"github.com/CHSevero/currency-exchange-api/internal/core/domain"
)

// TransactionWriter defines write operations for conversion transactions
type TransactionWriter interface {
	// SaveTransaction persists a new transaction and returns the stored row,
	// including the identifier and timestamp as persisted.
	SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error)
}

// TransactionReader defines read operations for conversion transactions
type TransactionReader interface {
	// ListTransactions returns a user's transactions newest-first, optionally
	// bounded by a UTC date range. limit <= 0 means no limit.
	ListTransactions(ctx context.Context, userID string, limit, offset int, fromDate, toDate *time.Time) ([]domain.Transaction, error)

	// CountTransactions counts a user's transactions within the optional UTC
	// date range.
	CountTransactions(ctx context.Context, userID string, fromDate, toDate *time.Time) (int64, error)
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionWriter
	TransactionReader
}

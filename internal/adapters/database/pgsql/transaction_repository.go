package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/CHSevero/currency-exchange-api/internal/core/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxTransactionRepository implements the transaction repository ports using pgxpool.
type PgxTransactionRepository struct {
	db *pgxpool.Pool
}

// NewTransactionRepository creates a new PgxTransactionRepository.
func NewTransactionRepository(db *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{db: db}
}

// SaveTransaction inserts a new conversion transaction and returns the stored
// row, reading the identifier and timestamp back as persisted.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	query := `
		INSERT INTO transactions (
			transaction_id, user_id, source_currency, target_currency,
			source_amount, target_amount, exchange_rate, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING transaction_id, created_at
	`
	stored := txn
	err := r.db.QueryRow(ctx, query,
		txn.TransactionID, txn.UserID, txn.SourceCurrency, txn.TargetCurrency,
		txn.SourceAmount, txn.TargetAmount, txn.ExchangeRate, txn.Timestamp,
	).Scan(&stored.TransactionID, &stored.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("error inserting transaction: %w", err)
	}
	return &stored, nil
}

// ListTransactions returns a user's transactions newest-first with optional
// date-range filtering and limit/offset pagination.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, userID string, limit, offset int, fromDate, toDate *time.Time) ([]domain.Transaction, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT transaction_id, user_id, source_currency, target_currency,
		       source_amount, target_amount, exchange_rate, created_at
		FROM transactions
		WHERE user_id = $1
	`)
	args := []any{userID}
	args = appendDateFilters(&sb, args, fromDate, toDate)

	sb.WriteString(" ORDER BY created_at DESC")
	if limit > 0 {
		sb.WriteString(" LIMIT $" + strconv.Itoa(len(args)+1))
		args = append(args, limit)
	}
	if offset > 0 {
		sb.WriteString(" OFFSET $" + strconv.Itoa(len(args)+1))
		args = append(args, offset)
	}

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("error listing transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		var txn domain.Transaction
		err := rows.Scan(
			&txn.TransactionID, &txn.UserID, &txn.SourceCurrency, &txn.TargetCurrency,
			&txn.SourceAmount, &txn.TargetAmount, &txn.ExchangeRate, &txn.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning transaction row: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}

// CountTransactions counts a user's transactions within the optional date range.
func (r *PgxTransactionRepository) CountTransactions(ctx context.Context, userID string, fromDate, toDate *time.Time) (int64, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT COUNT(*) FROM transactions WHERE user_id = $1`)
	args := []any{userID}
	args = appendDateFilters(&sb, args, fromDate, toDate)

	var count int64
	if err := r.db.QueryRow(ctx, sb.String(), args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting transactions: %w", err)
	}
	return count, nil
}

func appendDateFilters(sb *strings.Builder, args []any, fromDate, toDate *time.Time) []any {
	if fromDate != nil {
		sb.WriteString(" AND created_at >= $" + strconv.Itoa(len(args)+1))
		args = append(args, *fromDate)
	}
	if toDate != nil {
		sb.WriteString(" AND created_at <= $" + strconv.Itoa(len(args)+1))
		args = append(args, *toDate)
	}
	return args
}

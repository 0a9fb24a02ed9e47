package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/CHSevero/currency-exchange-api/internal/apperrors"
	"github.com/CHSevero/currency-exchange-api/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxRateSnapshotRepository implements the snapshot repository ports using pgxpool.
type PgxRateSnapshotRepository struct {
	db *pgxpool.Pool
}

// NewRateSnapshotRepository creates a new PgxRateSnapshotRepository.
func NewRateSnapshotRepository(db *pgxpool.Pool) *PgxRateSnapshotRepository {
	return &PgxRateSnapshotRepository{db: db}
}

// SaveSnapshot inserts a new rate snapshot. Snapshots are append-only.
func (r *PgxRateSnapshotRepository) SaveSnapshot(ctx context.Context, snapshot domain.RateSnapshot) error {
	ratesJSON, err := json.Marshal(snapshot.Rates)
	if err != nil {
		return fmt.Errorf("error serializing snapshot rates: %w", err)
	}

	query := `
		INSERT INTO exchange_rate_snapshots (
			snapshot_id, base_currency, rates, last_updated
		) VALUES ($1, $2, $3, $4)
	`
	_, err = r.db.Exec(ctx, query,
		snapshot.SnapshotID, snapshot.BaseCurrency, ratesJSON, snapshot.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("error inserting rate snapshot: %w", err)
	}
	return nil
}

// FindLatestSnapshot retrieves the most-recently-updated snapshot for the
// given base currency.
func (r *PgxRateSnapshotRepository) FindLatestSnapshot(ctx context.Context, baseCurrency string) (*domain.RateSnapshot, error) {
	query := `
		SELECT snapshot_id, base_currency, rates, last_updated
		FROM exchange_rate_snapshots
		WHERE base_currency = $1
		ORDER BY last_updated DESC
		LIMIT 1
	`
	snapshot := &domain.RateSnapshot{}
	var ratesJSON []byte
	err := r.db.QueryRow(ctx, query, baseCurrency).Scan(
		&snapshot.SnapshotID, &snapshot.BaseCurrency, &ratesJSON, &snapshot.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding latest rate snapshot: %w", err)
	}

	if err := json.Unmarshal(ratesJSON, &snapshot.Rates); err != nil {
		return nil, fmt.Errorf("error deserializing snapshot rates: %w", err)
	}
	return snapshot, nil
}

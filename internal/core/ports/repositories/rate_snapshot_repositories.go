package repositories

import (
	"context"

	"github.com/CHSevero/currency-exchange-api/internal/core/domain"
)

// RateSnapshotReader defines read operations for persisted rate snapshots
type RateSnapshotReader interface {
	// FindLatestSnapshot retrieves the most-recently-updated snapshot for the
	// given base currency, or apperrors.ErrNotFound when none exists.
	FindLatestSnapshot(ctx context.Context, baseCurrency string) (*domain.RateSnapshot, error)
}

// RateSnapshotWriter defines write operations for persisted rate snapshots
type RateSnapshotWriter interface {
	// SaveSnapshot persists a new snapshot. Snapshots accumulate; existing
	// rows are never updated or deleted.
	SaveSnapshot(ctx context.Context, snapshot domain.RateSnapshot) error
}

// RateSnapshotRepositoryFacade combines all snapshot-related repository interfaces
type RateSnapshotRepositoryFacade interface {
	RateSnapshotReader
	RateSnapshotWriter
}

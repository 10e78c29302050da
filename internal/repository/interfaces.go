package repository

import (
	"context"
	"time"

	"autoparts-storefront-api/internal/model"
)

// SnapshotRepository defines persistence for reconciled inventory
// snapshots. Snapshots let the storefront keep serving inventory when the
// CMS is unreachable.
type SnapshotRepository interface {
	// SaveSnapshot persists a reconciliation result and returns its id.
	SaveSnapshot(ctx context.Context, takenAt time.Time, items []model.NormalizedItem) (int64, error)

	// LatestSnapshot returns the most recent snapshot, or nil when none
	// has been stored yet.
	LatestSnapshot(ctx context.Context) (*model.Snapshot, error)

	// PruneSnapshots deletes snapshots older than the threshold and
	// returns how many were removed.
	PruneSnapshots(ctx context.Context, olderThan time.Duration) (int64, error)

	// GetStats returns statistics about the snapshot store.
	GetStats(ctx context.Context) (map[string]interface{}, error)

	// Close closes the repository connection.
	Close() error
}

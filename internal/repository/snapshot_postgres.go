package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"autoparts-storefront-api/internal/model"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresSnapshotRepository implements SnapshotRepository using PostgreSQL.
type PostgresSnapshotRepository struct {
	db *sql.DB
}

// NewPostgresSnapshotRepository creates a new PostgreSQL snapshot repository.
func NewPostgresSnapshotRepository(dsn string) (*PostgresSnapshotRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open PostgreSQL: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	if err := createPostgresTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("[PostgresSnapshotRepository] Initialized")
	return &PostgresSnapshotRepository{db: db}, nil
}

func createPostgresTables(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS inventory_snapshots (
		id BIGSERIAL PRIMARY KEY,
		taken_at TIMESTAMPTZ NOT NULL,
		item_count INTEGER NOT NULL,
		items_json TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_snapshots_taken_at ON inventory_snapshots(taken_at);
	`
	_, err := db.Exec(query)
	return err
}

// SaveSnapshot persists a reconciliation result.
func (r *PostgresSnapshotRepository) SaveSnapshot(ctx context.Context, takenAt time.Time, items []model.NormalizedItem) (int64, error) {
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return 0, fmt.Errorf("failed to encode snapshot items: %w", err)
	}

	query := `INSERT INTO inventory_snapshots (taken_at, item_count, items_json) VALUES ($1, $2, $3) RETURNING id`

	var id int64
	err = r.db.QueryRowContext(ctx, query, takenAt, len(items), string(itemsJSON)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to save snapshot: %w", err)
	}

	return id, nil
}

// LatestSnapshot returns the most recent snapshot, or nil when none exists.
func (r *PostgresSnapshotRepository) LatestSnapshot(ctx context.Context) (*model.Snapshot, error) {
	query := `SELECT id, taken_at, item_count, items_json FROM inventory_snapshots ORDER BY taken_at DESC, id DESC LIMIT 1`

	var (
		snap      model.Snapshot
		itemsJSON string
	)
	err := r.db.QueryRowContext(ctx, query).Scan(&snap.ID, &snap.TakenAt, &snap.ItemCount, &itemsJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest snapshot: %w", err)
	}

	if err := json.Unmarshal([]byte(itemsJSON), &snap.Items); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot items: %w", err)
	}

	return &snap, nil
}

// PruneSnapshots deletes snapshots older than the threshold.
func (r *PostgresSnapshotRepository) PruneSnapshots(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)

	result, err := r.db.ExecContext(ctx, `DELETE FROM inventory_snapshots WHERE taken_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune snapshots: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		log.Printf("[PostgresSnapshotRepository] Pruned %d snapshots (threshold: %v)", deleted, olderThan)
	}

	return deleted, nil
}

// GetStats returns statistics about the snapshot store.
func (r *PostgresSnapshotRepository) GetStats(ctx context.Context) (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var count int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM inventory_snapshots").Scan(&count); err != nil {
		return nil, err
	}
	stats["total_snapshots"] = count

	var lastTaken sql.NullTime
	if err := r.db.QueryRowContext(ctx, "SELECT MAX(taken_at) FROM inventory_snapshots").Scan(&lastTaken); err == nil && lastTaken.Valid {
		stats["last_snapshot"] = lastTaken.Time
	}

	var sizeBytes sql.NullInt64
	if err := r.db.QueryRowContext(ctx, "SELECT pg_total_relation_size('inventory_snapshots')").Scan(&sizeBytes); err == nil && sizeBytes.Valid {
		stats["db_size_bytes"] = sizeBytes.Int64
	}

	return stats, nil
}

// Close closes the database connection.
func (r *PostgresSnapshotRepository) Close() error {
	return r.db.Close()
}

// Ensure PostgresSnapshotRepository implements SnapshotRepository
var _ SnapshotRepository = (*PostgresSnapshotRepository)(nil)

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"autoparts-storefront-api/internal/model"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
)

// MySQLSnapshotRepository implements SnapshotRepository using MySQL.
type MySQLSnapshotRepository struct {
	db *sql.DB
}

// NewMySQLSnapshotRepository creates a new MySQL snapshot repository.
func NewMySQLSnapshotRepository(dsn string) (*MySQLSnapshotRepository, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	if err := createMySQLTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("[MySQLSnapshotRepository] Initialized")
	return &MySQLSnapshotRepository{db: db}, nil
}

func createMySQLTables(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS inventory_snapshots (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		taken_at DATETIME NOT NULL,
		item_count INT NOT NULL,
		items_json LONGTEXT NOT NULL,
		INDEX idx_snapshots_taken_at (taken_at)
	)`
	_, err := db.Exec(query)
	return err
}

// SaveSnapshot persists a reconciliation result.
func (r *MySQLSnapshotRepository) SaveSnapshot(ctx context.Context, takenAt time.Time, items []model.NormalizedItem) (int64, error) {
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return 0, fmt.Errorf("failed to encode snapshot items: %w", err)
	}

	query := `INSERT INTO inventory_snapshots (taken_at, item_count, items_json) VALUES (?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, takenAt, len(items), string(itemsJSON))
	if err != nil {
		return 0, fmt.Errorf("failed to save snapshot: %w", err)
	}

	return result.LastInsertId()
}

// LatestSnapshot returns the most recent snapshot, or nil when none exists.
func (r *MySQLSnapshotRepository) LatestSnapshot(ctx context.Context) (*model.Snapshot, error) {
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
func (r *MySQLSnapshotRepository) PruneSnapshots(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)

	result, err := r.db.ExecContext(ctx, `DELETE FROM inventory_snapshots WHERE taken_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune snapshots: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		log.Printf("[MySQLSnapshotRepository] Pruned %d snapshots (threshold: %v)", deleted, olderThan)
	}

	return deleted, nil
}

// GetStats returns statistics about the snapshot store.
func (r *MySQLSnapshotRepository) GetStats(ctx context.Context) (map[string]interface{}, error) {
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

	return stats, nil
}

// Close closes the database connection.
func (r *MySQLSnapshotRepository) Close() error {
	return r.db.Close()
}

// Ensure MySQLSnapshotRepository implements SnapshotRepository
var _ SnapshotRepository = (*MySQLSnapshotRepository)(nil)

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"autoparts-storefront-api/internal/model"

	_ "modernc.org/sqlite" // Pure Go SQLite driver - no CGO required
)

// SQLiteSnapshotRepository implements SnapshotRepository using SQLite.
// Thread-safe with WAL mode for high-concurrency reads.
type SQLiteSnapshotRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteSnapshotRepository creates a new SQLite snapshot repository.
// dbPath is the path to the SQLite database file (e.g., "./data/snapshots.db")
func NewSQLiteSnapshotRepository(dbPath string) (*SQLiteSnapshotRepository, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=10000&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	// SQLite connection pool settings
	db.SetMaxOpenConns(1) // SQLite only supports 1 writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := createSQLiteTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("[SQLiteSnapshotRepository] Initialized with database: %s", dbPath)
	return &SQLiteSnapshotRepository{db: db}, nil
}

func createSQLiteTables(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS inventory_snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		taken_at DATETIME NOT NULL,
		item_count INTEGER NOT NULL,
		items_json TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_snapshots_taken_at ON inventory_snapshots(taken_at);
	`
	_, err := db.Exec(query)
	return err
}

// SaveSnapshot persists a reconciliation result.
func (r *SQLiteSnapshotRepository) SaveSnapshot(ctx context.Context, takenAt time.Time, items []model.NormalizedItem) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

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
func (r *SQLiteSnapshotRepository) LatestSnapshot(ctx context.Context) (*model.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

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
func (r *SQLiteSnapshotRepository) PruneSnapshots(ctx context.Context, olderThan time.Duration) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

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
		log.Printf("[SQLiteSnapshotRepository] Pruned %d snapshots (threshold: %v)", deleted, olderThan)
	}

	return deleted, nil
}

// GetStats returns statistics about the snapshot store.
func (r *SQLiteSnapshotRepository) GetStats(ctx context.Context) (map[string]interface{}, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

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

	// Database file size (approximate from page count)
	var pageCount, pageSize int64
	r.db.QueryRowContext(ctx, "PRAGMA page_count").Scan(&pageCount)
	r.db.QueryRowContext(ctx, "PRAGMA page_size").Scan(&pageSize)
	stats["db_size_bytes"] = pageCount * pageSize

	return stats, nil
}

// Close closes the database connection.
func (r *SQLiteSnapshotRepository) Close() error {
	return r.db.Close()
}

// Ensure SQLiteSnapshotRepository implements SnapshotRepository
var _ SnapshotRepository = (*SQLiteSnapshotRepository)(nil)

package service

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"autoparts-storefront-api/internal/repository"
)

// SnapshotRefresher periodically reconciles inventory and persists the
// result, so a snapshot is available when the CMS goes down. It also prunes
// snapshots past the retention window.
type SnapshotRefresher struct {
	inventory InventoryService
	snapshots repository.SnapshotRepository
	interval  time.Duration
	retention time.Duration

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewSnapshotRefresher creates a refresher. Call Start to begin the cycle.
func NewSnapshotRefresher(inventory InventoryService, snapshots repository.SnapshotRepository, interval, retention time.Duration) *SnapshotRefresher {
	return &SnapshotRefresher{
		inventory: inventory,
		snapshots: snapshots,
		interval:  interval,
		retention: retention,
		stopCh:    make(chan struct{}),
	}
}

// Start launches the background refresh loop. The first snapshot is taken
// immediately so a fresh deployment has a fallback as soon as possible.
func (r *SnapshotRefresher) Start() {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		log.Printf("[SnapshotRefresher] Started (interval: %v, retention: %v)", r.interval, r.retention)

		// Jittered initial delay so several instances do not hit the CMS
		// at the same moment after a deploy.
		if jitter := r.interval / 10; jitter > 0 {
			select {
			case <-time.After(time.Duration(rand.Int63n(int64(jitter)))):
			case <-r.stopCh:
				return
			}
		}

		r.RunNow()

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				r.RunNow()
			case <-r.stopCh:
				log.Printf("[SnapshotRefresher] Stopped")
				return
			}
		}
	}()
}

// Stop terminates the refresh loop and waits for a run in flight.
func (r *SnapshotRefresher) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopCh)
	})
	r.wg.Wait()
}

// RunNow performs one reconcile-and-persist cycle.
func (r *SnapshotRefresher) RunNow() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	view, err := r.inventory.Reconcile(ctx)
	if err != nil {
		log.Printf("[SnapshotRefresher] Reconcile failed, keeping previous snapshot: %v", err)
		return
	}
	// A snapshot-sourced view is itself the fallback; persisting it again
	// would only reset its age.
	if view.Source != "live" {
		return
	}

	id, err := r.snapshots.SaveSnapshot(ctx, view.TakenAt, view.Items)
	if err != nil {
		log.Printf("[SnapshotRefresher] Failed to persist snapshot: %v", err)
		return
	}
	log.Printf("[SnapshotRefresher] Saved snapshot %d with %d items", id, len(view.Items))

	if _, err := r.snapshots.PruneSnapshots(ctx, r.retention); err != nil {
		log.Printf("[SnapshotRefresher] Prune failed: %v", err)
	}
}

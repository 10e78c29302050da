package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"autoparts-storefront-api/internal/cache"
	"autoparts-storefront-api/internal/catalog"
	"autoparts-storefront-api/internal/cms"
	"autoparts-storefront-api/internal/model"
	"autoparts-storefront-api/internal/repository"
	"autoparts-storefront-api/pkg/apierror"
)

const (
	pathInventoryAll    = "/bulkloadinventory/all"
	pathInventoryCreate = "/bulkloadinventory/createOne"

	inventoryCacheKey = "inventory:view"
)

// InventoryService reconciles raw inventory records against the product
// catalog and serves the merged view.
type InventoryService interface {
	// List returns the reconciled inventory, from cache when fresh enough.
	List(ctx context.Context) (*model.InventoryView, error)

	// Reconcile fetches catalog and inventory from the CMS and merges them,
	// bypassing the cache. When the inventory fetch fails it falls back to
	// the latest persisted snapshot.
	Reconcile(ctx context.Context) (*model.InventoryView, error)

	// Create registers a new inventory record in the CMS and returns it
	// normalized.
	Create(ctx context.Context, input model.CreateInventoryInput) (*model.NormalizedItem, error)
}

type inventoryService struct {
	cms       *cms.Client
	cache     cache.Cache
	snapshots repository.SnapshotRepository
	cacheTTL  time.Duration
}

// NewInventoryService creates the inventory reconciliation service.
func NewInventoryService(client *cms.Client, c cache.Cache, snapshots repository.SnapshotRepository, cacheTTL time.Duration) InventoryService {
	return &inventoryService{
		cms:       client,
		cache:     c,
		snapshots: snapshots,
		cacheTTL:  cacheTTL,
	}
}

func (s *inventoryService) List(ctx context.Context) (*model.InventoryView, error) {
	if data, err := s.cache.Get(ctx, inventoryCacheKey); err == nil {
		var view model.InventoryView
		if err := json.Unmarshal(data, &view); err == nil {
			view.Source = "cache"
			return &view, nil
		}
		// Corrupt cache entry, drop it and reconcile.
		_ = s.cache.Delete(ctx, inventoryCacheKey)
	}

	view, err := s.Reconcile(ctx)
	if err != nil {
		return nil, err
	}

	// Only fresh reconciliations are worth caching; snapshot fallbacks are
	// already the degraded path.
	if view.Source == "live" {
		if data, err := json.Marshal(view); err == nil {
			_ = s.cache.Set(ctx, inventoryCacheKey, data, s.cacheTTL)
		}
		if s.snapshots != nil {
			if _, err := s.snapshots.SaveSnapshot(ctx, view.TakenAt, view.Items); err != nil {
				log.Printf("[InventoryService] Snapshot write-through failed: %v", err)
			}
		}
	}

	return view, nil
}

func (s *inventoryService) Reconcile(ctx context.Context) (*model.InventoryView, error) {
	var (
		productEntries []catalog.Entry
		recordEntries  []catalog.Entry
	)

	// Both fetches run concurrently. A catalog failure degrades to an empty
	// index (records keep their inline data); an inventory failure is the
	// error that aborts the group.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		entries, err := s.cms.GetList(gctx, pathProducts, nil)
		if err != nil {
			log.Printf("[InventoryService] Warning: product catalog fetch failed, continuing with empty index: %v", err)
			return nil
		}
		productEntries = entries
		return nil
	})

	g.Go(func() error {
		entries, err := s.cms.GetList(gctx, pathInventoryAll, nil)
		if err != nil {
			return err
		}
		recordEntries = entries
		return nil
	})

	if err := g.Wait(); err != nil {
		return s.snapshotFallback(ctx, err)
	}

	products := make([]*model.Product, 0, len(productEntries))
	for _, e := range productEntries {
		if p := catalog.NormalizeProduct(e); p != nil {
			products = append(products, p)
		}
	}
	idx := catalog.BuildIndex(products)

	items := make([]model.NormalizedItem, 0, len(recordEntries))
	for _, rec := range recordEntries {
		if item := catalog.NormalizeRecord(rec, idx, s.cms.BaseHost()); item != nil {
			items = append(items, *item)
		}
	}

	log.Printf("[InventoryService] Reconciled %d records against %d products", len(items), idx.Size())

	return &model.InventoryView{
		Items:   items,
		TakenAt: time.Now().UTC(),
		Source:  "live",
	}, nil
}

// snapshotFallback serves the latest persisted snapshot when the CMS is
// unreachable. With no snapshot available the upstream failure surfaces.
func (s *inventoryService) snapshotFallback(ctx context.Context, cause error) (*model.InventoryView, error) {
	if s.snapshots != nil {
		snap, err := s.snapshots.LatestSnapshot(ctx)
		if err != nil {
			log.Printf("[InventoryService] Snapshot lookup failed: %v", err)
		} else if snap != nil {
			log.Printf("[InventoryService] CMS unreachable, serving snapshot %d (%d items, taken %s): %v",
				snap.ID, snap.ItemCount, snap.TakenAt.Format(time.RFC3339), cause)
			return &model.InventoryView{
				Items:   snap.Items,
				TakenAt: snap.TakenAt,
				Source:  "snapshot",
				Stale:   true,
			}, nil
		}
	}

	log.Printf("[InventoryService] Inventory fetch failed with no snapshot to fall back on: %v", cause)
	return nil, apierror.Upstream("No se pudo cargar el inventario real.", cause)
}

func (s *inventoryService) Create(ctx context.Context, input model.CreateInventoryInput) (*model.NormalizedItem, error) {
	if input.Product == nil {
		return nil, apierror.ValidationError("Datos de inventario incompletos.", apierror.FieldError{
			Field:   "product",
			Message: "product is required",
		})
	}

	created, err := s.cms.PostEntity(ctx, pathInventoryCreate, input)
	if err != nil {
		log.Printf("[InventoryService] Create failed: %v", err)
		return nil, apierror.Upstream("No se pudo crear el registro de inventario.", err)
	}

	// The cached view no longer reflects the CMS.
	_ = s.cache.Delete(ctx, inventoryCacheKey)

	item := catalog.NormalizeRecord(created, nil, s.cms.BaseHost())
	if item == nil {
		return nil, apierror.Upstream("No se pudo crear el registro de inventario.", nil)
	}
	return item, nil
}

// Ensure inventoryService implements InventoryService
var _ InventoryService = (*inventoryService)(nil)

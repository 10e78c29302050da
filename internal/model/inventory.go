package model

import "time"

// Inventory status vocabulary used by the CMS.
const (
	StatusInStock    = "in_stock"
	StatusOutOfStock = "out_of_stock"
	StatusLowStock   = "low_stock"
)

// NormalizedItem is the flattened, display-ready inventory record produced
// by merging an inventory row with its resolved product. It is a derived,
// ephemeral view: never persisted as the source of truth, rebuilt on every
// reconciliation.
type NormalizedItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	SKU         *string  `json:"sku"`
	Stock       *float64 `json:"stock"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	Brand       *string  `json:"brand"`
	Type        *string  `json:"type"`
	Vendor      *string  `json:"vendor"`
	Status      *string  `json:"status"`
	StatusLabel *string  `json:"statusLabel"`
	Image       *string  `json:"image"`
	ProductID   *string  `json:"productId"`
}

// InventoryView is the reconciled inventory list returned to clients,
// annotated with where the data came from.
type InventoryView struct {
	Items   []NormalizedItem `json:"items"`
	TakenAt time.Time        `json:"taken_at"`
	// Source is "live" for a fresh reconciliation, "cache" for a cached
	// one and "snapshot" when serving persisted data because the CMS was
	// unreachable.
	Source string `json:"source"`
	Stale  bool   `json:"stale"`
}

// CreateInventoryInput is the payload for creating an inventory record.
// Product may be an id, a code or a nested object, exactly as the CMS
// accepts it.
type CreateInventoryInput struct {
	Product  interface{} `json:"product"`
	Quantity interface{} `json:"quantity"`
	Vendor   string      `json:"vendor,omitempty"`
}

// Snapshot is a persisted reconciliation result.
type Snapshot struct {
	ID        int64            `json:"id"`
	TakenAt   time.Time        `json:"taken_at"`
	ItemCount int              `json:"item_count"`
	Items     []NormalizedItem `json:"items"`
}

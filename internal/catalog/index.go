package catalog

import (
	"strings"

	"autoparts-storefront-api/internal/model"
)

// Index provides O(1) product lookup by identifier, document id, code and
// vendor code. Code keys are case-insensitive. Vendor codes may be shared
// by several products; the index tracks collisions so that vendor-only
// matches can be rejected when ambiguous.
type Index struct {
	byID        map[string]*model.Product
	byDoc       map[string]*model.Product
	byCode      map[string]*model.Product
	byVendor    map[string]*model.Product
	vendorCount map[string]int
	size        int
}

// BuildIndex constructs an Index from a product list. Absent or malformed
// keys are skipped silently; duplicate keys are last-wins for direct lookup.
func BuildIndex(products []*model.Product) *Index {
	idx := &Index{
		byID:        make(map[string]*model.Product),
		byDoc:       make(map[string]*model.Product),
		byCode:      make(map[string]*model.Product),
		byVendor:    make(map[string]*model.Product),
		vendorCount: make(map[string]int),
	}

	for _, p := range products {
		if p == nil {
			continue
		}
		idx.size++

		if k := strings.TrimSpace(p.ID); k != "" {
			idx.byID[k] = p
		}
		if k := strings.TrimSpace(p.DocumentID); k != "" {
			idx.byDoc[k] = p
		}
		if k := normalizeCode(p.Code); k != "" {
			idx.byCode[k] = p
		}
		if k := normalizeCode(p.VendorCode); k != "" {
			idx.byVendor[k] = p
			idx.vendorCount[k]++
		}
	}

	return idx
}

// ByIdentifier looks key up against the id map, then the document-id map.
func (idx *Index) ByIdentifier(key string) *model.Product {
	if idx == nil {
		return nil
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}
	if p, ok := idx.byID[key]; ok {
		return p
	}
	return idx.byDoc[key]
}

// ByCode looks a code or SKU up case-insensitively.
func (idx *Index) ByCode(code string) *model.Product {
	if idx == nil {
		return nil
	}
	return idx.byCode[normalizeCode(code)]
}

// ByVendorCode resolves a vendor code only when exactly one product carries
// it. Ambiguous vendor codes return nil so a record is never attached to
// the wrong product.
func (idx *Index) ByVendorCode(code string) *model.Product {
	if idx == nil {
		return nil
	}
	k := normalizeCode(code)
	if k == "" || idx.vendorCount[k] != 1 {
		return nil
	}
	return idx.byVendor[k]
}

// Size returns the number of products indexed.
func (idx *Index) Size() int {
	if idx == nil {
		return 0
	}
	return idx.size
}

func normalizeCode(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

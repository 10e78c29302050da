package catalog

import (
	"github.com/spf13/cast"

	"autoparts-storefront-api/internal/model"
	"autoparts-storefront-api/pkg/uid"
)

// StatusLabel maps the CMS status vocabulary to a display label.
// Unrecognized values pass through unchanged.
func StatusLabel(status string) string {
	switch status {
	case model.StatusInStock:
		return "Disponible"
	case model.StatusOutOfStock:
		return "Agotado"
	case model.StatusLowStock:
		return "Stock bajo"
	default:
		return status
	}
}

// NormalizeRecord resolves the best-matching product for a raw inventory
// record and folds its fields into a display-ready item. Matching is
// ordered and first-match-wins: identifiers, then codes, then an
// unambiguous vendor code. A record that matches nothing proceeds with
// whatever inline product data it carries. The routine never fails on
// malformed input; absent values become nil fields. baseHost is the CMS
// host used to absolutize relative media URLs.
func NormalizeRecord(rec Entry, idx *Index, baseHost string) *model.NormalizedItem {
	if len(rec) == 0 {
		return nil
	}

	embedded, bareRef := splitProductRef(rec.Raw("product"))

	matched := matchProduct(rec, embedded, bareRef, idx)
	inline := NormalizeProduct(embedded)

	// The matched catalog product is authoritative for descriptive and
	// price fields; inline data embedded on the record is the fallback.
	resolved := matched
	if resolved == nil {
		resolved = inline
	}

	item := &model.NormalizedItem{
		ID:     recordID(rec, resolved),
		Name:   recordName(rec, resolved),
		Vendor: strPtr(rec.Str("vendor")),
	}

	if resolved != nil {
		item.SKU = resolveSKU(rec, resolved)
		item.Price = resolved.DisplayPrice()
		item.Description = strPtr(resolved.Description)
		item.Brand = strPtr(resolved.VendorCode)
		item.Type = strPtr(resolved.Type)
	} else {
		item.SKU = strPtr(rec.Str("sku"))
	}
	if item.Description == nil {
		item.Description = strPtr(rec.Str("description"))
	}

	// The record's own operational fields always win over product data.
	item.Stock = resolveStock(rec)
	if status := rec.FirstStr("stock_status", "status"); status != "" {
		item.Status = strPtr(status)
		item.StatusLabel = strPtr(StatusLabel(status))
	}

	if image := resolveRecordImage(rec, resolved); image != "" {
		item.Image = strPtr(AbsoluteURL(image, baseHost))
	}

	switch {
	case matched != nil:
		item.ProductID = strPtr(matched.ID)
	case inline != nil:
		item.ProductID = strPtr(inline.ID)
	}

	return item
}

// splitProductRef separates the record's product reference into an embedded
// object and a bare scalar key, whichever shape the backend sent.
func splitProductRef(ref interface{}) (Entry, string) {
	switch v := ref.(type) {
	case nil:
		return nil, ""
	case map[string]interface{}:
		return Entry(v), ""
	case []interface{}:
		return nil, ""
	default:
		return nil, cast.ToString(v)
	}
}

// matchProduct runs the ordered candidate lookups and short-circuits on the
// first hit.
func matchProduct(rec, embedded Entry, bareRef string, idx *Index) *model.Product {
	if idx == nil || idx.Size() == 0 {
		return nil
	}

	emb := flatten(embedded)

	// Stage 1: identifiers, each tried against the id map then the
	// document-id map.
	for _, candidate := range []string{
		emb.Str("id"),
		emb.Str("documentId"),
		emb.FirstStr("productId", "product_id"),
		rec.FirstStr("productId", "product_id"),
		bareRef,
	} {
		if p := idx.ByIdentifier(candidate); p != nil {
			return p
		}
	}

	// Stage 2: codes, case-insensitive.
	for _, candidate := range []string{
		emb.Str("code"),
		emb.Str("sku"),
		emb.Str("productCode"),
		rec.Str("sku"),
		rec.Str("code"),
		rec.Str("productCode"),
	} {
		if candidate == "" {
			continue
		}
		if p := idx.ByCode(candidate); p != nil {
			return p
		}
	}

	// Stage 3: vendor code, accepted only when unambiguous.
	for _, candidate := range []string{
		rec.Str("vendor"),
		emb.FirstStr("vendorCode", "vendor_code"),
	} {
		if p := idx.ByVendorCode(candidate); p != nil {
			return p
		}
	}

	return nil
}

func recordID(rec Entry, resolved *model.Product) string {
	if id := rec.Str("id"); id != "" {
		return id
	}
	if resolved != nil && resolved.ID != "" {
		return resolved.ID
	}
	if docID := rec.Str("documentId"); docID != "" {
		return docID
	}
	if resolved != nil && resolved.DocumentID != "" {
		return resolved.DocumentID
	}
	return uid.New()
}

func recordName(rec Entry, resolved *model.Product) string {
	if resolved != nil && resolved.Name != "" {
		return resolved.Name
	}
	if name := rec.Str("name"); name != "" {
		return name
	}
	return FallbackProductName
}

func resolveSKU(rec Entry, resolved *model.Product) *string {
	for _, candidate := range []string{
		resolved.Code,
		resolved.VendorCode,
		rec.Str("sku"),
		resolved.DocumentID,
	} {
		if s := strPtr(candidate); s != nil {
			return s
		}
	}
	return nil
}

func resolveStock(rec Entry) *float64 {
	for _, key := range []string{"quantity", "stock", "available", "inventory", "total", "amount"} {
		if v, ok := rec[key]; ok {
			if f, parsed := ParseNumber(v); parsed {
				return &f
			}
		}
	}
	return nil
}

func resolveRecordImage(rec Entry, resolved *model.Product) string {
	if u := ResolveMediaURL(rec.Raw("image")); u != "" {
		return u
	}
	if u := ResolveMediaURL(rec.Raw("images")); u != "" {
		return u
	}
	if resolved != nil {
		return resolved.Image
	}
	return ""
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

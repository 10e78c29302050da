package catalog

import (
	"autoparts-storefront-api/internal/model"
)

// FallbackProductName is the display name used when neither the product nor
// the inventory record carries one.
const FallbackProductName = "Producto sin nombre"

// NormalizeProduct converts a raw CMS catalog entry into a Product.
// Attribute envelopes are flattened and every identifier/code alias the
// backend has used across drafts is probed. Returns nil for empty entries.
// Name is left empty when absent; callers decide when to apply
// FallbackProductName.
func NormalizeProduct(e Entry) *model.Product {
	if len(e) == 0 {
		return nil
	}

	data := flatten(e)

	id := e.Str("id")
	if id == "" {
		id = data.FirstStr("id", "documentId")
	}

	return &model.Product{
		ID:             id,
		DocumentID:     data.Str("documentId"),
		Name:           data.FirstStr("name", "productName", "title"),
		Code:           data.FirstStr("code", "sku", "productCode", "product_code", "productId"),
		Description:    data.Str("description"),
		VendorCode:     data.FirstStr("vendorCode", "vendor_code", "vendor"),
		SalePrice:      priceField(data, "salePrice", "sale_price", "sale_price_amount"),
		WholesalePrice: priceField(data, "wholesalePrice", "wholesale_price", "wholesale_price_amount"),
		RetailPrice:    priceField(data, "retailPrice", "retail_price", "retail_price_amount"),
		Type:           data.FirstStr("type", "category"),
		Image:          resolveEntryImage(data),
	}
}

func priceField(e Entry, keys ...string) *float64 {
	for _, key := range keys {
		if v, ok := e[key]; ok && v != nil {
			if f, parsed := ParseNumber(v); parsed {
				return &f
			}
		}
	}
	return nil
}

func resolveEntryImage(e Entry) string {
	if u := ResolveMediaURL(e.Raw("image")); u != "" {
		return u
	}
	return ResolveMediaURL(e.Raw("images"))
}

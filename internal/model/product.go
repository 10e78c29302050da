package model

// Product is the normalized catalog entity as resolved from the CMS.
// ID and DocumentID are kept as strings because the backend exposes both
// numeric ids and string document ids depending on the endpoint.
type Product struct {
	ID             string   `json:"id"`
	DocumentID     string   `json:"documentId,omitempty"`
	Name           string   `json:"name"`
	Code           string   `json:"code,omitempty"`
	Description    string   `json:"description,omitempty"`
	VendorCode     string   `json:"vendorCode,omitempty"`
	SalePrice      *float64 `json:"salePrice"`
	WholesalePrice *float64 `json:"wholesalePrice"`
	RetailPrice    *float64 `json:"retailPrice"`
	Type           string   `json:"type,omitempty"`
	Image          string   `json:"image,omitempty"`
}

// DisplayPrice returns the price to show for this product, chosen by
// priority: sale, then retail, then wholesale. Nil when no price is set.
func (p *Product) DisplayPrice() *float64 {
	switch {
	case p.SalePrice != nil:
		return p.SalePrice
	case p.RetailPrice != nil:
		return p.RetailPrice
	case p.WholesalePrice != nil:
		return p.WholesalePrice
	default:
		return nil
	}
}

// ProductInput is the payload accepted for product create/update operations.
// Price fields arrive as arbitrary JSON scalars and are sanitized before
// being forwarded to the CMS.
type ProductInput struct {
	Name           string      `json:"name"`
	Code           string      `json:"code,omitempty"`
	Description    string      `json:"description,omitempty"`
	VendorCode     string      `json:"vendorCode,omitempty"`
	SalePrice      interface{} `json:"salePrice,omitempty"`
	WholesalePrice interface{} `json:"wholesalePrice,omitempty"`
	RetailPrice    interface{} `json:"retailPrice,omitempty"`
	Type           string      `json:"type,omitempty"`
}

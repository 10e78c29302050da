package model

import "time"

// CartItem is a single line in a session cart.
type CartItem struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Image      *string `json:"image"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
	PriceLabel string  `json:"priceLabel"`
}

// Cart is the persisted cart state for one session.
type Cart struct {
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Total returns the cart total as a raw amount.
func (c *Cart) Total() float64 {
	var sum float64
	for _, item := range c.Items {
		sum += item.UnitPrice * float64(item.Quantity)
	}
	return sum
}

// ItemCount returns the total unit count across all lines.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// CartView is the cart plus derived totals, as returned to clients.
type CartView struct {
	Items          []CartItem `json:"items"`
	Total          float64    `json:"total"`
	TotalFormatted string     `json:"totalFormatted"`
	ItemCount      int        `json:"itemCount"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// AddCartItemInput is the payload for adding a product to a cart.
// Price is a flexible scalar: the storefront sends whatever price label it
// has, numeric or formatted.
type AddCartItemInput struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Image      *string     `json:"image,omitempty"`
	Price      interface{} `json:"price,omitempty"`
	PriceLabel string      `json:"priceLabel,omitempty"`
	Quantity   int         `json:"quantity,omitempty"`
}

package models

import "time"

// CartLine is a single line in a cart: one per product, quantity merged on add.
type CartLine struct {
	ProductID     string  `json:"id" bson:"productid"`
	Quantity      int     `json:"qty" bson:"quantity"`
	PriceSnapshot float64 `json:"priceSnapshot" bson:"priceSnapshot"`
}

// Cart is one client session's cart, keyed by a caller-supplied cart ID
// (the namespaced storage key of the SPA) or the authenticated user ID.
type Cart struct {
	CartID    string     `json:"cartId" bson:"cartid"`
	Lines     []CartLine `json:"items" bson:"lines"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updatedAt"`
}

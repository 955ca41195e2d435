package models

import "time"

type Customer struct {
	Name    string `json:"name" bson:"name"`
	Email   string `json:"email" bson:"email"`
	Phone   string `json:"phone" bson:"phone"`
	Address string `json:"address" bson:"address"`
}

type Payment struct {
	Method string `json:"method" bson:"method"`
	Last4  string `json:"last4,omitempty" bson:"last4,omitempty"`
}

type OrderItem struct {
	ProductID     string  `json:"id" bson:"productid"`
	Quantity      int     `json:"qty" bson:"quantity"`
	PriceSnapshot float64 `json:"priceSnapshot" bson:"priceSnapshot"`
}

// Order embeds its items so an upsert replaces header and lines in one
// atomic write. Item prices are snapshots taken at order time and are never
// recomputed from the catalog.
type Order struct {
	OrderID   string      `json:"id" bson:"orderid"`
	UserID    string      `json:"userId,omitempty" bson:"userid,omitempty"`
	Customer  Customer    `json:"customer" bson:"customer"`
	Payment   Payment     `json:"payment" bson:"payment"`
	Items     []OrderItem `json:"items" bson:"items"`
	Totals    *Totals     `json:"totals,omitempty" bson:"totals,omitempty"`
	Status    string      `json:"status" bson:"status"`
	CreatedAt time.Time   `json:"createdAt" bson:"createdAt"`
}

// Totals is the five-field pricing breakdown snapshotted onto an order.
type Totals struct {
	Subtotal float64 `json:"subtotal" bson:"subtotal"`
	Tax      float64 `json:"tax" bson:"tax"`
	Shipping float64 `json:"shipping" bson:"shipping"`
	Discount float64 `json:"discount" bson:"discount"`
	Total    float64 `json:"total" bson:"total"`
}

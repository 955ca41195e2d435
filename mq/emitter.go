package mq

import (
	"context"
	"encoding/json"
	"log"

	"nova/rdx"
)

// OrderEventsChannel carries placed-order notifications to live subscribers.
const OrderEventsChannel = "order-events"

// OrderEvent is the payload published when an order is placed or replaced.
type OrderEvent struct {
	OrderID   string  `json:"orderId"`
	Status    string  `json:"status"`
	ItemCount int     `json:"itemCount"`
	Total     float64 `json:"total"`
	Customer  string  `json:"customer"`
	CreatedAt string  `json:"createdAt"`
}

// EmitOrder publishes an order event to Redis. Best effort: a failed publish
// only loses the live notification, never the order itself.
func EmitOrder(ctx context.Context, event OrderEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("EmitOrder marshal error: %v", err)
		return
	}
	if err := rdx.Conn.Publish(ctx, OrderEventsChannel, data).Err(); err != nil {
		log.Printf("EmitOrder publish error: %v", err)
	}
}

// Package queue defines message payloads exchanged over the message broker.
package queue

// OrderTicket is the per-ticket slice of an OrderCreatedEvent.
type OrderTicket struct {
	FlightID uint64 `json:"flight_id"`
	Route    string `json:"route"`
	Row      uint32 `json:"row"`
	Seat     uint32 `json:"seat"`
}

// OrderCreatedEvent is published when an order is successfully placed.
// It carries enough information for downstream consumers to log, notify,
// or feed analytics without querying the primary database.
type OrderCreatedEvent struct {
	OrderID   uint64        `json:"order_id"`
	UserID    uint64        `json:"user_id"`
	Tickets   []OrderTicket `json:"tickets"`
	CreatedAt string        `json:"created_at"`
}

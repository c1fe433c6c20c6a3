package model

import "time"

// Order groups the tickets a user bought in a single purchase. An order is
// created atomically with its tickets: either every ticket row commits or
// nothing is persisted at all. Orders own their tickets exclusively, so
// deleting an order cascades to them.
type Order struct {
	ID        uint64    `json:"id"`         // orders.id
	UserID    uint64    `json:"-"`          // orders.user_id
	CreatedAt time.Time `json:"created_at"` // orders.created_at (server-assigned)
	Tickets   []Ticket  `json:"tickets"`
}

// Ticket reserves one (row, seat) place on a flight. The triple
// (flight, row, seat) is globally unique; row and seat are 1-based and
// bounded by the flight's airplane geometry.
type Ticket struct {
	ID       uint64 `json:"id"`     // tickets.id
	Row      uint32 `json:"row"`    // tickets.row_num
	Seat     uint32 `json:"seat"`   // tickets.seat_num
	FlightID uint64 `json:"flight"` // tickets.flight_id
	OrderID  uint64 `json:"-"`      // tickets.order_id
	// Display fields joined in when listing orders.
	RouteName string     `json:"route,omitempty"`
	FlightDep *time.Time `json:"flight_departure,omitempty"`
	FlightArr *time.Time `json:"flight_arrival,omitempty"`
}

// TicketSpec is the payload shape used when creating an order: the place
// being reserved plus the flight it is reserved on.
type TicketSpec struct {
	Row      uint32 `json:"row"`
	Seat     uint32 `json:"seat"`
	FlightID uint64 `json:"flight"`
}

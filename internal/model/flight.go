package model

import "time"

// Flight schedules an airplane on a route for a concrete time interval and
// carries a set of assigned crew members. DepartureDate must be strictly
// before ArrivalDate, and neither the airplane nor any crew member may be
// committed to another flight whose interval overlaps this one. Those
// rules are re-checked on every save, not only on first creation, because
// airplane, crew and times can all change independently over the flight's
// life.
//
// CrewIDs mirrors the flight_crew join table. RouteName and AirplaneName
// are joined in on read.
type Flight struct {
	ID            uint64    `json:"id"`             // flights.id
	RouteID       uint64    `json:"route"`          // flights.route_id
	AirplaneID    uint64    `json:"airplane"`       // flights.airplane_id
	DepartureDate time.Time `json:"departure_date"` // flights.departure_date (UTC)
	ArrivalDate   time.Time `json:"arrival_date"`   // flights.arrival_date (UTC)
	CrewIDs       []uint64  `json:"crew"`           // flight_crew.crew_id rows
	RouteName     string    `json:"route_name,omitempty"`
	AirplaneName  string    `json:"airplane_name,omitempty"`
}

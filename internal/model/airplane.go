package model

// AirplaneType is a simple reference entity grouping airplanes by model
// family. Type names are unique.
type AirplaneType struct {
	ID   uint64 `json:"id"`   // airplane_types.id
	Name string `json:"name"` // airplane_types.name (unique)
}

// Airplane describes a physical aircraft and its seat geometry. SeatRows
// and SeatsInRow must both be positive; together they bound the (row, seat)
// coordinates a ticket may reserve on any flight operated by this airplane.
//
// TypeName is joined in from airplane_types on read for display purposes.
type Airplane struct {
	ID         uint64 `json:"id"`            // airplanes.id
	Name       string `json:"name"`          // airplanes.name (unique)
	SeatRows   uint32 `json:"rows"`          // airplanes.seat_rows
	SeatsInRow uint32 `json:"seats_in_row"`  // airplanes.seats_in_row
	TypeID     uint64 `json:"airplane_type"` // airplanes.airplane_type_id
	TypeName   string `json:"type_name,omitempty"`
}

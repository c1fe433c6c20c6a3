package model

import "fmt"

// Route connects a source airport to a destination airport. The pair
// (source, destination) is unique and a route must never loop back onto
// its own source airport. Routes hold non-owning references to airports:
// deleting a route leaves both airports untouched.
//
// SourceName and DestinationName are joined in from the airports table on
// read so that the display name can be derived without extra queries.
type Route struct {
	ID              uint64 `json:"id"`               // routes.id
	SourceID        uint64 `json:"source"`           // routes.source_id
	DestinationID   uint64 `json:"destination"`      // routes.destination_id
	Distance        uint32 `json:"distance"`         // routes.distance (kilometres)
	SourceName      string `json:"source_name"`      // airports.name of the source
	DestinationName string `json:"destination_name"` // airports.name of the destination
}

// DisplayName derives the human-readable route label from the two airport
// names. It is recomputed on every read rather than stored.
func (r Route) DisplayName() string {
	return fmt.Sprintf("%s - %s", r.SourceName, r.DestinationName)
}

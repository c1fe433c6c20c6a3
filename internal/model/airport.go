package model

import "time"

// Airport represents a row in the `airports` table. Airport names are
// unique under case-insensitive comparison; the normalized (lower-cased)
// form is persisted in a dedicated column backed by a unique index so the
// database is the final arbiter of uniqueness.
//
// Fields:
//  ID             – primary key identifier.
//  Name           – display name, unique ignoring case.
//  ClosestBigCity – nearest large city served by the airport.
//  Country        – country the airport is located in.
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Airport struct {
	ID             uint64    `json:"id"`               // airports.id
	Name           string    `json:"name"`             // airports.name
	ClosestBigCity string    `json:"closest_big_city"` // airports.closest_big_city
	Country        string    `json:"country"`          // airports.country
	CreatedAt      time.Time `json:"-"`                // airports.created_at
	UpdatedAt      time.Time `json:"-"`                // airports.updated_at
}

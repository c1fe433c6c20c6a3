package model

// Crew represents a crew member who can be assigned to flights. A crew
// member may not be assigned to two flights whose schedules overlap.
type Crew struct {
	ID        uint64 `json:"id"`         // crew.id
	FirstName string `json:"first_name"` // crew.first_name
	LastName  string `json:"last_name"`  // crew.last_name
}

// FullName derives the display name from the first and last name.
func (c Crew) FullName() string {
	return c.FirstName + " " + c.LastName
}

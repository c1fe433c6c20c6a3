package schedule

import (
	"fmt"
	"time"
)

// Assignment is one committed (flight, interval) tuple belonging to a
// resource — an airplane or a crew member. Label identifies the resource
// owner in conflict messages (the airplane name, or the crew member's full
// name).
type Assignment struct {
	FlightID  uint64
	Departure time.Time
	Arrival   time.Time
	Label     string
}

// firstConflict scans assignments for the first one whose interval
// overlaps [departure, arrival), skipping the flight identified by
// excludeID so that editing a flight never conflicts with its own
// persisted interval. excludeID zero means "new flight, exclude nothing".
// The airplane scan and the crew scan both go through this single helper;
// one overlap per resource kind is enough to reject, so the scan stops at
// the first hit.
func firstConflict(assignments []Assignment, excludeID uint64, departure, arrival time.Time) (Assignment, bool) {
	for _, a := range assignments {
		if excludeID != 0 && a.FlightID == excludeID {
			continue
		}
		if Overlaps(departure, arrival, a.Departure, a.Arrival) {
			return a, true
		}
	}
	return Assignment{}, false
}

// CheckFlight validates a candidate flight schedule against the committed
// assignments of its airplane and crew members. excludeID is the id of the
// flight being edited (zero for a new flight). airplane holds every
// committed interval of the intended airplane; crew holds the concatenated
// committed intervals of every crew member in the candidate crew set.
//
// The airplane and crew checks run independently so both can report in the
// same pass; the returned map may carry "airplane" and "crew" keys at
// once. An inverted interval is reported under "schedule" alongside any
// resource conflicts, never instead of them.
func CheckFlight(departure, arrival time.Time, excludeID uint64, airplane, crew []Assignment) Violations {
	v := Violations{}
	if !departure.Before(arrival) {
		v["schedule"] = fmt.Sprintf(
			"departure date %s must be before arrival date %s",
			departure.UTC().Format(time.RFC3339), arrival.UTC().Format(time.RFC3339),
		)
	}
	if a, ok := firstConflict(airplane, excludeID, departure, arrival); ok {
		v["airplane"] = fmt.Sprintf(
			"airplane %s is already assigned to flight %d between %s and %s",
			a.Label, a.FlightID,
			a.Departure.UTC().Format(time.RFC3339), a.Arrival.UTC().Format(time.RFC3339),
		)
	}
	if a, ok := firstConflict(crew, excludeID, departure, arrival); ok {
		v["crew"] = fmt.Sprintf(
			"crew member %s is already assigned to flight %d between %s and %s",
			a.Label, a.FlightID,
			a.Departure.UTC().Format(time.RFC3339), a.Arrival.UTC().Format(time.RFC3339),
		)
	}
	return v
}

package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckFlightAirplaneConflict(t *testing.T) {
	// Airplane P committed to flight 1 at [10:00, 12:00).
	committed := []Assignment{
		{FlightID: 1, Departure: at(10, 0), Arrival: at(12, 0), Label: "Plane A"},
	}

	// Candidate at [11:00, 13:00) overlaps and must be rejected.
	v := CheckFlight(at(11, 0), at(13, 0), 0, committed, nil)
	require.True(t, v.Has("airplane"))
	assert.Contains(t, v["airplane"], "Plane A")
	assert.Contains(t, v["airplane"], "flight 1")
	assert.False(t, v.Has("crew"))
	assert.False(t, v.Has("schedule"))

	// Candidate at [12:00, 13:00) only touches the boundary and is fine.
	v = CheckFlight(at(12, 0), at(13, 0), 0, committed, nil)
	assert.Empty(t, v)
	assert.NoError(t, v.OrNil())
}

func TestCheckFlightExcludesEditedFlight(t *testing.T) {
	// Editing flight 7: its own persisted interval is still in storage and
	// must never count as a conflict against itself.
	committed := []Assignment{
		{FlightID: 7, Departure: at(10, 0), Arrival: at(12, 0), Label: "Plane A"},
	}
	v := CheckFlight(at(10, 30), at(12, 30), 7, committed, nil)
	assert.Empty(t, v)

	// A different flight on the same airplane still conflicts.
	committed = append(committed,
		Assignment{FlightID: 8, Departure: at(11, 0), Arrival: at(14, 0), Label: "Plane A"})
	v = CheckFlight(at(10, 30), at(12, 30), 7, committed, nil)
	assert.True(t, v.Has("airplane"))
	assert.Contains(t, v["airplane"], "flight 8")
}

func TestCheckFlightCrewConflict(t *testing.T) {
	crew := []Assignment{
		{FlightID: 3, Departure: at(9, 0), Arrival: at(11, 0), Label: "Jack Jones"},
		{FlightID: 4, Departure: at(15, 0), Arrival: at(17, 0), Label: "Jon Jones"},
	}
	v := CheckFlight(at(10, 0), at(12, 0), 0, nil, crew)
	require.True(t, v.Has("crew"))
	assert.Contains(t, v["crew"], "Jack Jones")
	assert.False(t, v.Has("airplane"))
}

func TestCheckFlightReportsBothResources(t *testing.T) {
	airplane := []Assignment{
		{FlightID: 1, Departure: at(10, 0), Arrival: at(12, 0), Label: "Plane A"},
	}
	crew := []Assignment{
		{FlightID: 2, Departure: at(10, 30), Arrival: at(11, 30), Label: "Jack Jones"},
	}
	// Both resource checks always run, so both keys surface together.
	v := CheckFlight(at(11, 0), at(13, 0), 0, airplane, crew)
	assert.True(t, v.Has("airplane"))
	assert.True(t, v.Has("crew"))
	assert.Len(t, v, 2)
}

func TestCheckFlightFirstConflictWins(t *testing.T) {
	// Multiple overlapping flights on the same airplane produce a single
	// "airplane" entry naming the first hit, not an accumulation.
	airplane := []Assignment{
		{FlightID: 1, Departure: at(10, 0), Arrival: at(12, 0), Label: "Plane A"},
		{FlightID: 2, Departure: at(11, 0), Arrival: at(13, 0), Label: "Plane A"},
	}
	v := CheckFlight(at(10, 30), at(12, 30), 0, airplane, nil)
	require.True(t, v.Has("airplane"))
	assert.Contains(t, v["airplane"], "flight 1")
	assert.Len(t, v, 1)
}

func TestCheckFlightInvertedInterval(t *testing.T) {
	v := CheckFlight(at(12, 0), at(10, 0), 0, nil, nil)
	require.True(t, v.Has("schedule"))

	// An inverted interval is reported alongside resource conflicts, not
	// instead of them.
	airplane := []Assignment{
		{FlightID: 1, Departure: at(9, 0), Arrival: at(13, 0), Label: "Plane A"},
	}
	v = CheckFlight(at(12, 0), at(10, 0), 0, airplane, nil)
	assert.True(t, v.Has("schedule"))
	assert.True(t, v.Has("airplane"))
}

func TestViolationsError(t *testing.T) {
	v := Violations{"seat": "seat must be between 1 and 6, got 9", "row": "row must be between 1 and 10, got 13"}
	// Deterministic key order regardless of insertion order.
	assert.Equal(t, "row: row must be between 1 and 10, got 13; seat: seat must be between 1 and 6, got 9", v.Error())

	var err error = v
	assert.Error(t, err)
	assert.NoError(t, Violations{}.OrNil())
}

package schedule

import "time"

// Overlaps reports whether the intervals [aStart, aEnd) and [bStart, bEnd)
// share at least one interior instant. Both inequalities are strict, so
// intervals that merely touch at an endpoint do not overlap: a flight may
// depart the minute another one arrives. The predicate is symmetric and
// total over any pair of instants.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aEnd.After(bStart) && aStart.Before(bEnd)
}

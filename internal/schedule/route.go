package schedule

import "fmt"

// CheckRouteEndpoints rejects a route whose source and destination are the
// same airport record. The comparison is by identity, not by name: two
// distinct airports could in principle share attributes, so only matching
// ids constitute a self-loop. The message names the airport on both ends.
func CheckRouteEndpoints(sourceID, destinationID uint64, sourceName, destinationName string) Violations {
	v := Violations{}
	if sourceID == destinationID {
		v["destination"] = fmt.Sprintf(
			"route cannot loop back onto its source: %s -> %s",
			sourceName, destinationName,
		)
	}
	return v
}

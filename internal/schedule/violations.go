// Package schedule implements the validation core that guards flight
// scheduling and booking integrity: the interval overlap predicate, the
// airplane/crew conflict scan, seat-bound checks and the route self-loop
// check. Everything in this package is pure; callers supply the committed
// state to validate against and commit the result themselves.
package schedule

import (
	"sort"
	"strings"
)

// Violations maps a field or resource name ("airplane", "crew", "schedule",
// "row", "seat", ...) to a human-readable message. An empty map means the
// candidate is valid. Violations implements error so repositories can
// return it directly from a save path; callers unwrap it with errors.As
// and surface every collected entry together, never just the first.
type Violations map[string]string

// Error joins the collected messages in deterministic key order.
func (v Violations) Error() string {
	if len(v) == 0 {
		return "no violations"
	}
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v[k])
	}
	return strings.Join(parts, "; ")
}

// Has reports whether a violation was recorded for the given key.
func (v Violations) Has(key string) bool {
	_, ok := v[key]
	return ok
}

// OrNil returns the map as an error, or nil when no violation was
// collected. Returning a typed nil map as error would always compare
// non-nil, hence this helper.
func (v Violations) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckRouteEndpoints(t *testing.T) {
	assert.Empty(t, CheckRouteEndpoints(1, 2, "Arlanda", "MUC"))

	// Same record on both ends: rejected, message names the airport twice.
	v := CheckRouteEndpoints(1, 1, "Arlanda", "Arlanda")
	require.True(t, v.Has("destination"))
	assert.Equal(t, "route cannot loop back onto its source: Arlanda -> Arlanda", v["destination"])
}

func TestCheckRouteEndpointsComparesIdentity(t *testing.T) {
	// Two distinct airports sharing a name are still a valid pair; the
	// check compares ids, not names.
	v := CheckRouteEndpoints(1, 2, "Twin", "Twin")
	assert.Empty(t, v)
}

package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckSeat(t *testing.T) {
	// 10 rows, 6 seats per row.
	assert.Empty(t, CheckSeat(1, 1, 10, 6))
	assert.Empty(t, CheckSeat(10, 6, 10, 6))

	v := CheckSeat(11, 3, 10, 6)
	require.True(t, v.Has("row"))
	assert.False(t, v.Has("seat"))
	assert.Contains(t, v["row"], "between 1 and 10")
	assert.Contains(t, v["row"], "got 11")

	v = CheckSeat(3, 0, 10, 6)
	assert.True(t, v.Has("seat"))
	assert.False(t, v.Has("row"))
}

func TestCheckSeatReportsBothFields(t *testing.T) {
	// Both coordinates out of range: both errors populate in one pass.
	v := CheckSeat(13, 9, 10, 6)
	require.Len(t, v, 2)
	assert.Contains(t, v["row"], "got 13")
	assert.Contains(t, v["seat"], "got 9")
}

func TestCheckSeatGeometry(t *testing.T) {
	assert.Empty(t, CheckSeatGeometry(10, 6))

	v := CheckSeatGeometry(0, 0)
	assert.True(t, v.Has("rows"))
	assert.True(t, v.Has("seats_in_row"))
}

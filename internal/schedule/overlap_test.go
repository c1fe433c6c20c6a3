package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2025, time.March, 10, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{"identical intervals", at(10, 0), at(12, 0), at(10, 0), at(12, 0), true},
		{"contained interval", at(10, 0), at(12, 0), at(10, 30), at(11, 30), true},
		{"partial overlap", at(10, 0), at(12, 0), at(11, 0), at(13, 0), true},
		{"touching endpoints", at(10, 0), at(12, 0), at(12, 0), at(13, 0), false},
		{"touching endpoints reversed", at(12, 0), at(13, 0), at(10, 0), at(12, 0), false},
		{"disjoint", at(10, 0), at(11, 0), at(12, 0), at(13, 0), false},
		{"one minute shared", at(10, 0), at(12, 1), at(12, 0), at(13, 0), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd))
		})
	}
}

func TestOverlapsIsSymmetric(t *testing.T) {
	pairs := [][4]time.Time{
		{at(10, 0), at(12, 0), at(11, 0), at(13, 0)},
		{at(10, 0), at(12, 0), at(12, 0), at(13, 0)},
		{at(9, 0), at(10, 0), at(10, 30), at(11, 0)},
		{at(8, 0), at(20, 0), at(9, 0), at(10, 0)},
	}
	for _, p := range pairs {
		assert.Equal(t,
			Overlaps(p[0], p[1], p[2], p[3]),
			Overlaps(p[2], p[3], p[0], p[1]),
		)
	}
}

func TestOverlapsSelf(t *testing.T) {
	// Any non-empty interval overlaps itself.
	assert.True(t, Overlaps(at(10, 0), at(12, 0), at(10, 0), at(12, 0)))
	// An empty interval has no interior to share.
	assert.False(t, Overlaps(at(10, 0), at(10, 0), at(10, 0), at(10, 0)))
}

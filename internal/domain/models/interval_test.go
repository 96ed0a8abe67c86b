// Copyright ExecDesk and its contributors.
// SPDX-License-Identifier: MIT

package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
}

func TestTimeInterval_Overlaps(t *testing.T) {
	tests := []struct {
		name     string
		a        TimeInterval
		b        TimeInterval
		expected bool
	}{
		{
			name:     "partial overlap",
			a:        NewTimeInterval(at(10, 0), at(11, 0)),
			b:        NewTimeInterval(at(10, 30), at(11, 30)),
			expected: true,
		},
		{
			name:     "touching endpoints do not overlap",
			a:        NewTimeInterval(at(10, 0), at(11, 0)),
			b:        NewTimeInterval(at(11, 0), at(12, 0)),
			expected: false,
		},
		{
			name:     "fully nested interval overlaps",
			a:        NewTimeInterval(at(9, 0), at(17, 0)),
			b:        NewTimeInterval(at(12, 0), at(12, 30)),
			expected: true,
		},
		{
			name:     "identical intervals overlap",
			a:        NewTimeInterval(at(10, 0), at(11, 0)),
			b:        NewTimeInterval(at(10, 0), at(11, 0)),
			expected: true,
		},
		{
			name:     "disjoint intervals do not overlap",
			a:        NewTimeInterval(at(8, 0), at(9, 0)),
			b:        NewTimeInterval(at(14, 0), at(15, 0)),
			expected: false,
		},
		{
			name:     "zero-duration probe never overlaps",
			a:        NewTimeInterval(at(10, 30), at(10, 30)),
			b:        NewTimeInterval(at(10, 0), at(11, 0)),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Overlaps(tt.b))
			// The predicate is symmetric.
			assert.Equal(t, tt.expected, tt.b.Overlaps(tt.a))
			assert.Equal(t, tt.expected, Overlaps(tt.a.Start, tt.a.End, tt.b.Start, tt.b.End))
		})
	}
}

func TestTimeInterval_IsValid(t *testing.T) {
	assert.True(t, NewTimeInterval(at(10, 0), at(10, 1)).IsValid())
	assert.False(t, NewTimeInterval(at(10, 0), at(10, 0)).IsValid())
	assert.False(t, NewTimeInterval(at(11, 0), at(10, 0)).IsValid())
}

func TestTimeInterval_Duration(t *testing.T) {
	assert.Equal(t, 90*time.Minute, NewTimeInterval(at(10, 0), at(11, 30)).Duration())
}

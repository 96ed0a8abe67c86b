// Copyright ExecDesk and its contributors.
// SPDX-License-Identifier: MIT

package models

import "time"

// TimeInterval is a half-open time range [Start, End). It is a value type
// embedded in meetings, tasks and leave periods, never persisted standalone.
type TimeInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewTimeInterval builds an interval from the given bounds.
func NewTimeInterval(start, end time.Time) TimeInterval {
	return TimeInterval{Start: start, End: end}
}

// IsValid reports whether the interval has a strictly positive duration.
// Zero-length and inverted intervals are rejected at every write boundary
// because a zero-duration probe never overlaps anything under the half-open
// definition.
func (i TimeInterval) IsValid() bool {
	return i.End.After(i.Start)
}

// Duration returns the length of the interval.
func (i TimeInterval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Overlaps reports whether the two half-open intervals intersect.
// Touching endpoints (i.End == other.Start) do not overlap.
func (i TimeInterval) Overlaps(other TimeInterval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Overlaps is the pure overlap predicate for two half-open intervals
// expressed as raw bounds: aStart < bEnd && bStart < aEnd.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

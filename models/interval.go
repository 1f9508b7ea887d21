package models

import "time"

// CalendarInterval is a transient busy period: either a real appointment's
// time range or a synthesized out-of-hours block. Never persisted.
type CalendarInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether two half-open intervals [Start, End) intersect.
// Intervals that only touch at an endpoint do not overlap.
func (i CalendarInterval) Overlaps(other CalendarInterval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

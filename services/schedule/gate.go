package schedule

import (
	"time"

	"consultorio/models"
)

// SlotClass is where a candidate instant falls relative to a day's
// working window.
type SlotClass int

const (
	ClassWithin SlotClass = iota
	ClassBefore
	ClassAfter
)

// ClassifyStart places the candidate instant's wall-clock time (UTC)
// against the day's [start, end] window, inclusive at both ends. The
// caller must check the day's Active flag first; an inactive day rejects
// the whole day regardless of time.
func ClassifyStart(instant time.Time, day models.DayAvailability) (SlotClass, error) {
	startMin, err := models.ParseClock(day.Start)
	if err != nil {
		return ClassWithin, err
	}
	endMin, err := models.ParseClock(day.End)
	if err != nil {
		return ClassWithin, err
	}

	t := instant.UTC()
	minutes := t.Hour()*60 + t.Minute()

	switch {
	case minutes < startMin:
		return ClassBefore, nil
	case minutes > endMin:
		return ClassAfter, nil
	default:
		return ClassWithin, nil
	}
}

// SameDate reports whether both instants fall on the same UTC calendar
// date. The working window is defined per day, so an interval that
// crosses midnight always runs past closing even when its end wall-clock
// time lands back inside the window.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

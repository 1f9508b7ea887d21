package models

import (
	"fmt"
	"time"
)

// DayAvailability is one day's working window. Start and End are wall-clock
// "HH:MM" strings; both are ignored when Active is false.
type DayAvailability struct {
	Active bool   `bson:"active" json:"active"`
	Start  string `bson:"start" json:"start"`
	End    string `bson:"end" json:"end"`
}

// WeeklyAvailability is the recurring per-day schedule embedded on the
// professional document. All seven days are always present.
type WeeklyAvailability struct {
	Monday    DayAvailability `bson:"monday" json:"monday"`
	Tuesday   DayAvailability `bson:"tuesday" json:"tuesday"`
	Wednesday DayAvailability `bson:"wednesday" json:"wednesday"`
	Thursday  DayAvailability `bson:"thursday" json:"thursday"`
	Friday    DayAvailability `bson:"friday" json:"friday"`
	Saturday  DayAvailability `bson:"saturday" json:"saturday"`
	Sunday    DayAvailability `bson:"sunday" json:"sunday"`
}

// DefaultWeeklyAvailability is synthesized when a professional has no
// stored schedule: weekdays 08:00-17:00, weekend closed.
func DefaultWeeklyAvailability() WeeklyAvailability {
	weekday := DayAvailability{Active: true, Start: "08:00", End: "17:00"}
	return WeeklyAvailability{
		Monday:    weekday,
		Tuesday:   weekday,
		Wednesday: weekday,
		Thursday:  weekday,
		Friday:    weekday,
		Saturday:  DayAvailability{Active: false, Start: "08:00", End: "12:00"},
		Sunday:    DayAvailability{Active: false, Start: "00:00", End: "00:00"},
	}
}

// Day resolves a time.Weekday into its availability entry. Gate and block
// generation both go through this single table.
func (w *WeeklyAvailability) Day(d time.Weekday) DayAvailability {
	switch d {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	default:
		return w.Sunday
	}
}

// Validate rejects any active day whose window is empty or inverted.
// Inactive days are not checked since their times are never read.
func (w *WeeklyAvailability) Validate() error {
	days := []struct {
		name string
		day  DayAvailability
	}{
		{"monday", w.Monday}, {"tuesday", w.Tuesday}, {"wednesday", w.Wednesday},
		{"thursday", w.Thursday}, {"friday", w.Friday}, {"saturday", w.Saturday},
		{"sunday", w.Sunday},
	}
	for _, d := range days {
		if !d.day.Active {
			continue
		}
		start, err := ParseClock(d.day.Start)
		if err != nil {
			return fmt.Errorf("%s: %w", d.name, err)
		}
		end, err := ParseClock(d.day.End)
		if err != nil {
			return fmt.Errorf("%s: %w", d.name, err)
		}
		if start >= end {
			return fmt.Errorf("%s: start %q must be before end %q", d.name, d.day.Start, d.day.End)
		}
	}
	return nil
}

// ParseClock converts an "HH:MM" string into minutes from midnight.
func ParseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", s)
	}
	return h*60 + m, nil
}

package schedule

import (
	"testing"
	"time"

	"consultorio/models"
)

// March 2, 2026 is a Monday.
func monday(hour, min int) time.Time {
	return time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
}

func TestClassifyStart(t *testing.T) {
	day := models.DayAvailability{Active: true, Start: "09:00", End: "17:00"}

	cases := []struct {
		name    string
		instant time.Time
		want    SlotClass
	}{
		{"well before", monday(7, 30), ClassBefore},
		{"one minute before", monday(8, 59), ClassBefore},
		{"exactly at opening", monday(9, 0), ClassWithin},
		{"mid window", monday(12, 15), ClassWithin},
		{"exactly at closing", monday(17, 0), ClassWithin},
		{"one minute after", monday(17, 1), ClassAfter},
		{"well after", monday(22, 0), ClassAfter},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ClassifyStart(tc.instant, day)
			if err != nil {
				t.Fatalf("ClassifyStart: %v", err)
			}
			if got != tc.want {
				t.Fatalf("ClassifyStart(%s) = %v, want %v", tc.instant.Format("15:04"), got, tc.want)
			}
		})
	}
}

// Advancing the candidate through the day must move the classification
// monotonically: before, then within, then after, never back.
func TestClassifyStartMonotonic(t *testing.T) {
	day := models.DayAvailability{Active: true, Start: "09:00", End: "17:00"}

	rank := map[SlotClass]int{ClassBefore: 0, ClassWithin: 1, ClassAfter: 2}
	prev := -1
	for min := 0; min < 24*60; min += 7 {
		instant := monday(min/60, min%60)
		class, err := ClassifyStart(instant, day)
		if err != nil {
			t.Fatalf("ClassifyStart at %s: %v", instant.Format("15:04"), err)
		}
		if rank[class] < prev {
			t.Fatalf("classification regressed at %s", instant.Format("15:04"))
		}
		prev = rank[class]
	}
}

func TestClassifyStartNonUTCInput(t *testing.T) {
	day := models.DayAvailability{Active: true, Start: "09:00", End: "17:00"}

	// 10:00 UTC expressed in a +05:00 zone; classification reads UTC wall time.
	zone := time.FixedZone("UTC+5", 5*3600)
	instant := time.Date(2026, 3, 2, 15, 0, 0, 0, zone)

	class, err := ClassifyStart(instant, day)
	if err != nil {
		t.Fatalf("ClassifyStart: %v", err)
	}
	if class != ClassWithin {
		t.Fatalf("expected ClassWithin for 10:00 UTC, got %v", class)
	}
}

func TestClassifyStartBadClock(t *testing.T) {
	day := models.DayAvailability{Active: true, Start: "nine", End: "17:00"}
	if _, err := ClassifyStart(monday(10, 0), day); err == nil {
		t.Fatal("expected error for unparseable window")
	}
}

func TestSameDate(t *testing.T) {
	if !SameDate(monday(0, 0), monday(23, 59)) {
		t.Fatal("instants on the same date reported as different")
	}
	if SameDate(monday(23, 59), monday(23, 59).Add(time.Minute)) {
		t.Fatal("midnight rollover reported as the same date")
	}

	// Comparison is by UTC date regardless of the input zone.
	lima := time.FixedZone("UTC-5", -5*3600)
	if !SameDate(time.Date(2026, 3, 2, 20, 0, 0, 0, lima), time.Date(2026, 3, 3, 1, 0, 0, 0, time.UTC)) {
		t.Fatal("zone-shifted instants on the same UTC date reported as different")
	}
}

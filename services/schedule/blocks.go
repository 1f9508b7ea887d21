package schedule

import (
	"time"

	"consultorio/models"
)

// DefaultHorizonDays is how far ahead the public calendar shows busy blocks.
const DefaultHorizonDays = 90

// endOfDay is the last representable instant of a calendar day.
var endOfDay = 24*time.Hour - time.Millisecond

// GenerateBlocks derives the out-of-hours busy blocks for public display.
// For each date from the day of `from` (midnight UTC) through horizonDays
// ahead: an inactive day yields one block covering the whole day; an
// active day yields a pre-work block when the window starts after midnight
// and a post-work block when it ends before midnight. The working window
// itself is never blocked.
//
// The result is deterministic for a given schedule and `from`, and blocks
// within one day never overlap.
func GenerateBlocks(weekly models.WeeklyAvailability, from time.Time, horizonDays int) []models.CalendarInterval {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}

	day := from.UTC()
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	var blocks []models.CalendarInterval
	for i := 0; i <= horizonDays; i++ {
		date := midnight.AddDate(0, 0, i)
		avail := weekly.Day(date.Weekday())

		if !avail.Active {
			blocks = append(blocks, models.CalendarInterval{
				Start: date,
				End:   date.Add(endOfDay),
			})
			continue
		}

		startMin, err := models.ParseClock(avail.Start)
		if err != nil {
			continue
		}
		endMin, err := models.ParseClock(avail.End)
		if err != nil {
			continue
		}

		if startMin > 0 {
			blocks = append(blocks, models.CalendarInterval{
				Start: date,
				End:   date.Add(time.Duration(startMin) * time.Minute),
			})
		}
		if endMin < 24*60 {
			blocks = append(blocks, models.CalendarInterval{
				Start: date.Add(time.Duration(endMin) * time.Minute),
				End:   date.Add(endOfDay),
			})
		}
	}
	return blocks
}

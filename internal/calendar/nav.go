package calendar

import (
	"time"

	"github.com/danielwaldman/cadence/internal/domain"
)

// Next advances the anchor one step forward for the given view: one calendar
// month, one week, or one day. Month steps normalize the anchor to the first
// of the month, which sidesteps day-of-month overflow (anchoring on the 31st
// can never spill past a 30-day month).
func Next(mode ViewMode, anchor domain.Day) domain.Day {
	switch mode {
	case ViewWeek:
		return anchor.AddDays(7)
	case ViewDay:
		return anchor.AddDays(1)
	default:
		return stepMonth(anchor, 1)
	}
}

// Prev steps the anchor one step backward for the given view.
func Prev(mode ViewMode, anchor domain.Day) domain.Day {
	switch mode {
	case ViewWeek:
		return anchor.AddDays(-7)
	case ViewDay:
		return anchor.AddDays(-1)
	default:
		return stepMonth(anchor, -1)
	}
}

// Today resets the anchor to the current date regardless of view. The now
// argument keeps callers and tests in charge of the clock.
func Today(mode ViewMode, now time.Time) domain.Day {
	return domain.DayOf(now)
}

func stepMonth(anchor domain.Day, delta int) domain.Day {
	// Normalize to day 1 before stepping; time.AddDate on the 31st would
	// otherwise roll into the month after next.
	return domain.NewDay(anchor.Year, anchor.Month+time.Month(delta), 1)
}

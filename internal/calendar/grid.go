// Package calendar computes the visible day sets for the three schedule
// views and the navigation between them. Everything here is a pure function
// of (mode, anchor); fetching and rendering live elsewhere.
package calendar

import (
	"time"

	"github.com/danielwaldman/cadence/internal/domain"
)

// MonthRows is the fixed number of week rows in a month grid. Six rows cover
// every month layout, including 31-day months starting late in the week.
const MonthRows = 6

// MonthMatrix returns the 6x7 grid of days for the given month. Weeks run
// Sunday through Saturday. Cells that fall outside the month are zero-valued
// Days (check with IsZero), not the neighboring month's dates.
func MonthMatrix(year int, month time.Month) [MonthRows][7]domain.Day {
	var grid [MonthRows][7]domain.Day

	first := domain.NewDay(year, month, 1)
	// Back up to the Sunday on or before the 1st.
	cursor := first.AddDays(-int(first.Weekday()))

	for row := 0; row < MonthRows; row++ {
		for col := 0; col < 7; col++ {
			if cursor.Month == month && cursor.Year == year {
				grid[row][col] = cursor
			}
			cursor = cursor.AddDays(1)
		}
	}
	return grid
}

// WeekDates returns the Sunday-through-Saturday week containing anchor.
func WeekDates(anchor domain.Day) [7]domain.Day {
	var week [7]domain.Day
	sunday := anchor.AddDays(-int(anchor.Weekday()))
	for i := 0; i < 7; i++ {
		week[i] = sunday.AddDays(i)
	}
	return week
}

// Range returns the inclusive [from, to] date bounds visible for the given
// view. These bounds drive remote fetches, so they must be exact: an
// off-by-one here silently hides or duplicates stored items.
func Range(mode ViewMode, anchor domain.Day) (from, to domain.Day) {
	switch mode {
	case ViewWeek:
		week := WeekDates(anchor)
		return week[0], week[6]
	case ViewDay:
		return anchor, anchor
	default: // ViewMonth
		from = domain.NewDay(anchor.Year, anchor.Month, 1)
		to = from.AddDays(daysIn(anchor.Year, anchor.Month) - 1)
		return from, to
	}
}

// VisibleDays returns the visible days for the view in chronological order.
// For the month view this is every day of the anchor's month.
func VisibleDays(mode ViewMode, anchor domain.Day) []domain.Day {
	from, to := Range(mode, anchor)
	var days []domain.Day
	for d := from; !d.After(to); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

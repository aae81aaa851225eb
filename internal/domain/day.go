package domain

import (
	"fmt"
	"time"
)

// DayKeyLayout is the canonical string form of a Day, used as the bucket key
// in schedule caches and as the date column format in row stores.
const DayKeyLayout = "2006-01-02"

// Day is a naive calendar date. It carries no time-of-day and no timezone;
// two Days are equal iff their year, month and day components are equal.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDay builds a Day from components, normalizing out-of-range values the
// way time.Date does (e.g. month 13 rolls into the next year).
func NewDay(year int, month time.Month, day int) Day {
	return DayOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DayOf truncates a time.Time to its calendar date.
func DayOf(t time.Time) Day {
	return Day{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// ParseDay parses the YYYY-MM-DD key form.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayKeyLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("parsing day %q: %w", s, err)
	}
	return DayOf(t), nil
}

// Key returns the ISO YYYY-MM-DD identity of the day.
func (d Day) Key() string {
	return d.Time().Format(DayKeyLayout)
}

func (d Day) String() string {
	return d.Key()
}

// Time returns the day at midnight UTC.
func (d Day) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether d is the zero value. Zero Days mark empty cells in
// a month matrix and are never valid schedule keys.
func (d Day) IsZero() bool {
	return d == Day{}
}

// AddDays returns the day n calendar days after d (n may be negative).
func (d Day) AddDays(n int) Day {
	return DayOf(d.Time().AddDate(0, 0, n))
}

// Weekday returns the day of week, Sunday being 0.
func (d Day) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// Before reports whether d is strictly earlier than other.
func (d Day) Before(other Day) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// After reports whether d is strictly later than other.
func (d Day) After(other Day) bool {
	return other.Before(d)
}

// Within reports whether d lies in the inclusive range [from, to].
func (d Day) Within(from, to Day) bool {
	return !d.Before(from) && !d.After(to)
}

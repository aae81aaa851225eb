package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/danielwaldman/cadence/internal/domain"
)

func TestNextPrevMonth(t *testing.T) {
	anchor := domain.NewDay(2026, time.June, 18)

	next := Next(ViewMonth, anchor)
	assert.Equal(t, domain.NewDay(2026, time.July, 1), next)

	prev := Prev(ViewMonth, anchor)
	assert.Equal(t, domain.NewDay(2026, time.May, 1), prev)
}

func TestMonthNavigationRollsYears(t *testing.T) {
	assert.Equal(t, domain.NewDay(2027, time.January, 1), Next(ViewMonth, domain.NewDay(2026, time.December, 5)))
	assert.Equal(t, domain.NewDay(2025, time.December, 1), Prev(ViewMonth, domain.NewDay(2026, time.January, 5)))
}

func TestMonthNavigationFromDay31(t *testing.T) {
	// Stepping from Jan 31 must land in February, not skip into March.
	anchor := domain.NewDay(2026, time.January, 31)
	assert.Equal(t, domain.NewDay(2026, time.February, 1), Next(ViewMonth, anchor))
}

func TestMonthNavigationRoundTrip(t *testing.T) {
	anchor := domain.NewDay(2026, time.March, 1)
	cur := anchor
	for i := 0; i < 12; i++ {
		cur = Next(ViewMonth, cur)
	}
	for i := 0; i < 12; i++ {
		cur = Prev(ViewMonth, cur)
	}
	assert.Equal(t, anchor, cur)
}

func TestNextPrevWeek(t *testing.T) {
	anchor := domain.NewDay(2026, time.June, 18)
	assert.Equal(t, anchor.AddDays(7), Next(ViewWeek, anchor))
	assert.Equal(t, anchor.AddDays(-7), Prev(ViewWeek, anchor))
}

func TestNextPrevDay(t *testing.T) {
	anchor := domain.NewDay(2026, time.February, 28)
	assert.Equal(t, domain.NewDay(2026, time.March, 1), Next(ViewDay, anchor))
	assert.Equal(t, domain.NewDay(2026, time.February, 27), Prev(ViewDay, anchor))
}

func TestToday(t *testing.T) {
	now := time.Date(2026, time.August, 29, 14, 30, 0, 0, time.UTC)
	for _, mode := range []ViewMode{ViewMonth, ViewWeek, ViewDay} {
		assert.Equal(t, domain.NewDay(2026, time.August, 29), Today(mode, now))
	}
}

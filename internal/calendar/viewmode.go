package calendar

import (
	"fmt"
	"strings"
)

// ViewMode selects which slice of the calendar is visible and how navigation
// steps the anchor date.
type ViewMode string

const (
	ViewMonth ViewMode = "month"
	ViewWeek  ViewMode = "week"
	ViewDay   ViewMode = "day"
)

// ParseViewMode resolves a mode string case-insensitively.
func ParseViewMode(s string) (ViewMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "month", "":
		return ViewMonth, nil
	case "week":
		return ViewWeek, nil
	case "day":
		return ViewDay, nil
	default:
		return "", fmt.Errorf("unknown view mode %q (want month, week or day)", s)
	}
}

func (m ViewMode) Valid() bool {
	switch m {
	case ViewMonth, ViewWeek, ViewDay:
		return true
	}
	return false
}

// Package export serializes the currently visible schedule slice into CSV.
// It is pure over the cache: building rows never triggers a fetch.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/danielwaldman/cadence/internal/calendar"
	"github.com/danielwaldman/cadence/internal/domain"
	"github.com/danielwaldman/cadence/internal/schedule"
)

// Target selects the export column layout.
type Target string

const (
	// TargetTwitter exports date and content only, headed Date,Tweet.
	TargetTwitter Target = "Twitter"
	// TargetAll adds the platform column, headed Date,Content,Platform.
	TargetAll Target = "All"
)

// ParseTarget resolves a target string case-insensitively.
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "twitter":
		return TargetTwitter, nil
	case "all", "":
		return TargetAll, nil
	default:
		return "", fmt.Errorf("unknown export target %q (want twitter or all)", s)
	}
}

// Filename returns the download name for an export.
func Filename(target Target) string {
	return fmt.Sprintf("content-schedule-%s.csv", strings.ToLower(string(target)))
}

// BuildRows flattens the visible schedule slice into ordered rows, header
// first. Days run chronologically; items within a day keep insertion order.
func BuildRows(target Target, mode calendar.ViewMode, anchor domain.Day, sched *schedule.Store) [][]string {
	days := calendar.VisibleDays(mode, anchor)
	items := sched.Visible(days)

	rows := make([][]string, 0, len(items)+1)
	if target == TargetTwitter {
		rows = append(rows, []string{"Date", "Tweet"})
	} else {
		rows = append(rows, []string{"Date", "Content", "Platform"})
	}

	for _, item := range items {
		if target == TargetTwitter {
			rows = append(rows, []string{item.Day.Key(), item.Content})
		} else {
			rows = append(rows, []string{item.Day.Key(), item.Content, string(item.Platform)})
		}
	}
	return rows
}

// WriteCSV writes rows with standard quoting, so content containing commas,
// quotes or newlines survives the round trip.
func WriteCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

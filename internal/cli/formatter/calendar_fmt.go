package formatter

import (
	"fmt"
	"strings"

	"github.com/danielwaldman/cadence/internal/calendar"
	"github.com/danielwaldman/cadence/internal/domain"
	"github.com/danielwaldman/cadence/internal/schedule"
)

var weekdayHeader = [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// Month renders the 6x7 month grid. Days with scheduled items are bold with
// a trailing marker; empty cells print as blanks.
func Month(anchor domain.Day, sched *schedule.Store) string {
	var b strings.Builder

	title := fmt.Sprintf("%s %d", anchor.Month, anchor.Year)
	b.WriteString(StyleHeader.Render(title))
	b.WriteString("\n")
	for _, wd := range weekdayHeader {
		b.WriteString(StyleDim.Render(fmt.Sprintf("%4s", wd)))
	}
	b.WriteString("\n")

	grid := calendar.MonthMatrix(anchor.Year, anchor.Month)
	for _, row := range grid {
		for _, cell := range row {
			if cell.IsZero() {
				b.WriteString("    ")
				continue
			}
			label := fmt.Sprintf("%3d", cell.Day)
			switch {
			case len(sched.Items(cell)) > 0:
				b.WriteString(StyleBold.Render(label) + StyleGreen.Render("*"))
			default:
				b.WriteString(label + " ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Items renders the scheduled items for the visible days, one line per item.
func Items(mode calendar.ViewMode, anchor domain.Day, sched *schedule.Store) string {
	var b strings.Builder
	for _, day := range calendar.VisibleDays(mode, anchor) {
		items := sched.Items(day)
		if len(items) == 0 {
			continue
		}
		b.WriteString(StyleBlue.Render(day.Key()))
		b.WriteString("\n")
		for _, item := range items {
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				StyleDim.Render("-"),
				item.Content,
				StyleDim.Render("["+string(item.Platform)+"]"),
			))
		}
	}
	if b.Len() == 0 {
		return StyleDim.Render("nothing scheduled in this range") + "\n"
	}
	return b.String()
}

// Variations renders a numbered variation list.
func Variations(vars []string) string {
	var b strings.Builder
	for i, v := range vars {
		b.WriteString(fmt.Sprintf("%s %s\n", StyleYellow.Render(fmt.Sprintf("%d.", i+1)), v))
	}
	return b.String()
}

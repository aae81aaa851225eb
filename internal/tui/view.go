package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/danielwaldman/cadence/internal/calendar"
	"github.com/danielwaldman/cadence/internal/cli/formatter"
	"github.com/danielwaldman/cadence/internal/domain"
	"github.com/danielwaldman/cadence/internal/drag"
)

var (
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(formatter.ColorDim).
			Padding(0, 1)

	focusedPaneStyle = paneStyle.
				BorderForeground(formatter.ColorHeader)

	cursorStyle  = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	draggedStyle = lipgloss.NewStyle().Foreground(formatter.ColorYellow).Italic(true)
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.entering {
		return lipgloss.JoinVertical(lipgloss.Left,
			formatter.StyleHeader.Render("New content idea"),
			m.idea.View(),
			formatter.StyleDim.Render("enter to generate, esc to cancel"),
		)
	}

	left := m.viewVariations()
	right := m.viewCalendar()

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.viewStatus())
}

func (m Model) viewVariations() string {
	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render("Variations"))
	b.WriteString("\n")

	if m.generating {
		b.WriteString(m.spin.View() + " generating...\n")
	} else if len(m.vars) == 0 {
		b.WriteString(formatter.StyleDim.Render("none yet (press i)") + "\n")
	}

	dragIdx, _ := m.ctrl.Grabbed()
	for i, v := range m.vars {
		prefix := "  "
		if m.focus == focusVariations && i == m.varCursor {
			prefix = cursorStyle.Render("> ")
		}
		line := v
		if m.ctrl.State() == drag.Dragging && i == dragIdx {
			line = draggedStyle.Render(v + " (dragging)")
		}
		b.WriteString(prefix + line + "\n")
	}

	style := paneStyle
	if m.focus == focusVariations {
		style = focusedPaneStyle
	}
	return style.Render(b.String())
}

func (m Model) viewCalendar() string {
	var b strings.Builder
	title := fmt.Sprintf("%s  (%s view)", m.anchor.Key(), m.mode)
	b.WriteString(formatter.StyleHeader.Render(title))
	b.WriteString("\n")

	if m.loading {
		b.WriteString(m.spin.View() + " loading...\n")
	}

	if m.mode == calendar.ViewMonth {
		b.WriteString(formatter.Month(m.anchor, m.sched))
		b.WriteString("\n")
	}

	for i, day := range m.days {
		prefix := "  "
		if m.focus == focusGrid && i == m.dayCursor {
			prefix = cursorStyle.Render("> ")
		}
		items := m.sched.Items(day)
		label := day.Key()
		if len(items) > 0 {
			label = formatter.StyleBold.Render(label)
		}
		b.WriteString(fmt.Sprintf("%s%s  %s\n", prefix, label, summarize(items)))
	}

	style := paneStyle
	if m.focus == focusGrid {
		style = focusedPaneStyle
	}
	return style.Render(b.String())
}

func (m Model) viewStatus() string {
	help := "i idea  tab focus  enter grab/drop  x delete  m/w/d view  n/p move  t today  q quit"
	status := m.status
	if status == "" {
		status = " "
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		formatter.StyleYellow.Render(status),
		formatter.StyleDim.Render(help),
	)
}

func summarize(items []domain.ScheduledItem) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return truncate(items[0].Content, 40)
	default:
		return fmt.Sprintf("%s (+%d more)", truncate(items[0].Content, 30), len(items)-1)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

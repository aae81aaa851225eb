// Package tui is the interactive planner: variations on the left, the
// calendar on the right, and a pick-and-place gesture between them backed by
// the drag state machine.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/danielwaldman/cadence/internal/calendar"
	"github.com/danielwaldman/cadence/internal/domain"
	"github.com/danielwaldman/cadence/internal/drag"
	"github.com/danielwaldman/cadence/internal/identity"
	"github.com/danielwaldman/cadence/internal/schedule"
	"github.com/danielwaldman/cadence/internal/store"
	"github.com/danielwaldman/cadence/internal/variations"
)

const opTimeout = 10 * time.Second

type focusArea int

const (
	focusVariations focusArea = iota
	focusGrid
)

// fetchedMsg delivers a completed range fetch with its ticket. Stale tickets
// are dropped by the schedule store when applied.
type fetchedMsg struct {
	ticket schedule.Ticket
	items  []domain.ScheduledItem
	err    error
}

// generatedMsg delivers a completed variation generation.
type generatedMsg struct {
	vars []string
	err  error
}

// Model is the planner's bubbletea model.
type Model struct {
	ident  identity.Identity
	source variations.Source
	items  store.ItemStore
	sched  *schedule.Store
	ctrl   *drag.Controller

	mode   calendar.ViewMode
	anchor domain.Day
	days   []domain.Day

	vars      []string
	varCursor int
	dayCursor int
	focus     focusArea

	idea     textinput.Model
	entering bool

	spin       spinner.Model
	loading    bool
	generating bool

	status   string
	width    int
	quitting bool
}

// New creates the planner model for a signed-in identity.
func New(ident identity.Identity, source variations.Source, items store.ItemStore) Model {
	sched := schedule.New(items, nil)

	ti := textinput.New()
	ti.Placeholder = "your content idea"
	ti.CharLimit = 280

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ident:   ident,
		source:  source,
		items:   items,
		sched:   sched,
		mode:    calendar.ViewMonth,
		anchor:  calendar.Today(calendar.ViewMonth, time.Now()),
		idea:    ti,
		spin:    sp,
		loading: true,
		status:  "press i to enter an idea",
	}
	m.ctrl = drag.NewController(m.insertDrop, ident.SignedIn)
	m.days = calendar.VisibleDays(m.mode, m.anchor)
	return m
}

// insertDrop is the drag controller's single persistence path.
func (m *Model) insertDrop(ctx context.Context, day domain.Day, content string) (domain.ScheduledItem, error) {
	return m.sched.Insert(ctx, m.ident, day, content, domain.PlatformAll)
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.fetchCmd())
}

// fetchCmd stamps a ticket and fetches its range off the UI loop. The result
// is applied in Update; superseded tickets are discarded there.
func (m *Model) fetchCmd() tea.Cmd {
	from, to := calendar.Range(m.mode, m.anchor)
	ticket := m.sched.Begin(m.ident, from, to)
	m.loading = true

	ident := m.ident
	items := m.items
	return func() tea.Msg {
		if !ident.SignedIn() {
			return fetchedMsg{ticket: ticket}
		}
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		got, err := items.SelectRange(ctx, ident, from, to)
		return fetchedMsg{ticket: ticket, items: got, err: err}
	}
}

func (m *Model) generateCmd(idea string) tea.Cmd {
	m.generating = true
	source := m.source
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		vars, err := source.Generate(ctx, idea)
		return generatedMsg{vars: vars, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case fetchedMsg:
		if msg.err != nil {
			m.loading = false
			m.status = "fetch failed: " + msg.err.Error()
			return m, nil
		}
		if m.sched.Apply(msg.ticket, msg.items) {
			m.loading = false
			m.status = ""
		}
		// A stale result leaves loading set; the current fetch is
		// still in flight.
		return m, nil

	case generatedMsg:
		m.generating = false
		if msg.err != nil {
			m.status = "generation failed, resubmit with i"
			return m, nil
		}
		m.vars = msg.vars
		m.varCursor = 0
		m.focus = focusVariations
		m.status = "enter grabs, enter again drops"
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	if m.entering {
		var cmd tea.Cmd
		m.idea, cmd = m.idea.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.entering {
		switch msg.String() {
		case "enter":
			idea := m.idea.Value()
			m.entering = false
			m.idea.Blur()
			if idea == "" {
				m.status = "idea must not be empty"
				return m, nil
			}
			return m, m.generateCmd(idea)
		case "esc":
			m.entering = false
			m.idea.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.idea, cmd = m.idea.Update(msg)
			return m, cmd
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "i":
		m.entering = true
		m.idea.SetValue("")
		return m, m.idea.Focus()

	case "tab":
		if m.focus == focusVariations {
			m.focus = focusGrid
		} else {
			m.focus = focusVariations
		}
		return m, nil

	case "m", "w", "d":
		mode := map[string]calendar.ViewMode{
			"m": calendar.ViewMonth, "w": calendar.ViewWeek, "d": calendar.ViewDay,
		}[msg.String()]
		return m.setView(mode, m.anchor)

	case "n":
		return m.setView(m.mode, calendar.Next(m.mode, m.anchor))
	case "p":
		return m.setView(m.mode, calendar.Prev(m.mode, m.anchor))
	case "t":
		return m.setView(m.mode, calendar.Today(m.mode, time.Now()))

	case "up", "k":
		m.moveCursor(-1)
		return m, nil
	case "down", "j":
		m.moveCursor(1)
		return m, nil

	case "esc":
		m.ctrl.Cancel()
		m.status = "drag cancelled"
		return m, nil

	case "x":
		return m.deleteUnderCursor()

	case "enter", " ":
		return m.grabOrDrop()
	}

	return m, nil
}

// setView changes mode or anchor: the cached schedule slice is discarded and
// the new range fetched.
func (m Model) setView(mode calendar.ViewMode, anchor domain.Day) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.anchor = anchor
	m.days = calendar.VisibleDays(mode, anchor)
	if m.dayCursor >= len(m.days) {
		m.dayCursor = len(m.days) - 1
	}
	return m, m.fetchCmd()
}

func (m *Model) moveCursor(delta int) {
	if m.focus == focusVariations {
		m.varCursor = clamp(m.varCursor+delta, 0, len(m.vars)-1)
		return
	}
	m.dayCursor = clamp(m.dayCursor+delta, 0, len(m.days)-1)
}

// grabOrDrop drives the gesture: enter on the variation list grabs, enter on
// a day cell drops. A drop while signed out is a silent no-op by design.
func (m Model) grabOrDrop() (tea.Model, tea.Cmd) {
	if m.focus == focusVariations {
		if len(m.vars) == 0 {
			return m, nil
		}
		if err := m.ctrl.Grab(m.varCursor, m.vars[m.varCursor]); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.focus = focusGrid
		m.status = "dragging: pick a day and press enter"
		return m, nil
	}

	if m.ctrl.State() != drag.Dragging {
		return m, nil
	}
	if len(m.days) == 0 {
		return m, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	item, scheduled, err := m.ctrl.Drop(ctx, m.days[m.dayCursor])
	switch {
	case err != nil:
		m.status = "save failed, drop again to retry"
	case scheduled:
		m.status = "scheduled on " + item.Day.Key()
	default:
		m.status = "drop ignored (signed out)"
	}
	return m, nil
}

func (m Model) deleteUnderCursor() (tea.Model, tea.Cmd) {
	if m.focus != focusGrid || len(m.days) == 0 {
		return m, nil
	}
	items := m.sched.Items(m.days[m.dayCursor])
	if len(items) == 0 {
		return m, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	last := items[len(items)-1]
	if err := m.sched.Remove(ctx, m.ident, last.ID); err != nil {
		m.status = "delete failed: " + err.Error()
		return m, nil
	}
	m.status = "deleted item on " + last.Day.Key()
	return m, nil
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

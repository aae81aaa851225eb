// Package drag models the pick-a-variation, drop-on-a-day gesture as an
// explicit state machine. It owns only transient gesture state; persistence
// belongs to the schedule store and the two communicate solely through the
// insert callback.
package drag

import (
	"context"
	"errors"

	"github.com/danielwaldman/cadence/internal/domain"
)

// State is the gesture state: Idle, or Dragging one variation.
type State int

const (
	Idle State = iota
	Dragging
)

// ErrNothingGrabbed indicates a grab with no content to carry.
var ErrNothingGrabbed = errors.New("no variation content to grab")

// InsertFunc persists one drop. Implementations are expected to be the
// schedule store's insert with platform defaulted to All.
type InsertFunc func(ctx context.Context, day domain.Day, content string) (domain.ScheduledItem, error)

// Controller tracks a single pointer gesture. Only one gesture can be active
// at a time; a second grab replaces the first, and a drop always returns the
// controller to Idle whatever the outcome.
type Controller struct {
	state    State
	index    int
	content  string
	insert   InsertFunc
	signedIn func() bool
}

// NewController creates an Idle controller. signedIn gates drops: a drop
// while signed out is a no-op, not an error.
func NewController(insert InsertFunc, signedIn func() bool) *Controller {
	if signedIn == nil {
		signedIn = func() bool { return false }
	}
	return &Controller{insert: insert, signedIn: signedIn}
}

// State returns the current gesture state.
func (c *Controller) State() State {
	return c.state
}

// Grabbed returns the index and content of the variation being dragged.
// Only meaningful while Dragging.
func (c *Controller) Grabbed() (int, string) {
	return c.index, c.content
}

// Grab starts a gesture carrying the variation at index. The content is
// snapshotted here: regenerating the variation list between grab and drop
// cannot change what a later drop schedules.
func (c *Controller) Grab(index int, content string) error {
	if content == "" {
		return ErrNothingGrabbed
	}
	c.state = Dragging
	c.index = index
	c.content = content
	return nil
}

// Cancel abandons the gesture without scheduling anything.
func (c *Controller) Cancel() {
	c.reset()
}

// Drop completes the gesture over the given day. It emits at most one insert
// call: exactly one for a valid drop while signed in, none otherwise. The
// returned bool reports whether an item was scheduled.
func (c *Controller) Drop(ctx context.Context, day domain.Day) (domain.ScheduledItem, bool, error) {
	if c.state != Dragging {
		return domain.ScheduledItem{}, false, nil
	}
	content := c.content
	c.reset()

	// Dropped outside any valid target: abandoned gesture.
	if day.IsZero() {
		return domain.ScheduledItem{}, false, nil
	}
	if !c.signedIn() {
		return domain.ScheduledItem{}, false, nil
	}

	item, err := c.insert(ctx, day, content)
	if err != nil {
		return domain.ScheduledItem{}, false, err
	}
	return item, true, nil
}

func (c *Controller) reset() {
	c.state = Idle
	c.index = 0
	c.content = ""
}

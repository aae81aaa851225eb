package drag

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielwaldman/cadence/internal/domain"
)

type insertRecorder struct {
	calls   int
	lastDay domain.Day
	content string
	err     error
}

func (r *insertRecorder) insert(_ context.Context, day domain.Day, content string) (domain.ScheduledItem, error) {
	r.calls++
	r.lastDay = day
	r.content = content
	if r.err != nil {
		return domain.ScheduledItem{}, r.err
	}
	return domain.ScheduledItem{ID: "new-id", Day: day, Content: content}, nil
}

func signedIn() bool  { return true }
func signedOut() bool { return false }

func testDay() domain.Day {
	return domain.NewDay(2026, time.March, 12)
}

func TestGrabThenDropInsertsOnce(t *testing.T) {
	rec := &insertRecorder{}
	c := NewController(rec.insert, signedIn)

	assert.Equal(t, Idle, c.State())
	require.NoError(t, c.Grab(2, "variation text"))
	assert.Equal(t, Dragging, c.State())

	item, scheduled, err := c.Drop(context.Background(), testDay())
	require.NoError(t, err)
	assert.True(t, scheduled)
	assert.Equal(t, "new-id", item.ID)

	assert.Equal(t, 1, rec.calls)
	assert.Equal(t, testDay(), rec.lastDay)
	assert.Equal(t, "variation text", rec.content)
	assert.Equal(t, Idle, c.State())
}

func TestDropWithoutGrab(t *testing.T) {
	rec := &insertRecorder{}
	c := NewController(rec.insert, signedIn)

	_, scheduled, err := c.Drop(context.Background(), testDay())
	require.NoError(t, err)
	assert.False(t, scheduled)
	assert.Zero(t, rec.calls)
}

func TestDoubleDropInsertsOnce(t *testing.T) {
	rec := &insertRecorder{}
	c := NewController(rec.insert, signedIn)
	require.NoError(t, c.Grab(0, "content"))

	_, scheduled, err := c.Drop(context.Background(), testDay())
	require.NoError(t, err)
	assert.True(t, scheduled)

	_, scheduled, err = c.Drop(context.Background(), testDay())
	require.NoError(t, err)
	assert.False(t, scheduled, "the gesture ended at the first drop")
	assert.Equal(t, 1, rec.calls)
}

func TestDropSignedOutIsNoOp(t *testing.T) {
	rec := &insertRecorder{}
	c := NewController(rec.insert, signedOut)
	require.NoError(t, c.Grab(0, "content"))

	_, scheduled, err := c.Drop(context.Background(), testDay())
	require.NoError(t, err)
	assert.False(t, scheduled)
	assert.Zero(t, rec.calls, "signed-out drops never reach the store")
	assert.Equal(t, Idle, c.State(), "the gesture still ends")
}

func TestDropOutsideTargetAbandons(t *testing.T) {
	rec := &insertRecorder{}
	c := NewController(rec.insert, signedIn)
	require.NoError(t, c.Grab(0, "content"))

	_, scheduled, err := c.Drop(context.Background(), domain.Day{})
	require.NoError(t, err)
	assert.False(t, scheduled)
	assert.Zero(t, rec.calls)
	assert.Equal(t, Idle, c.State())
}

func TestCancelAbandonsGesture(t *testing.T) {
	rec := &insertRecorder{}
	c := NewController(rec.insert, signedIn)
	require.NoError(t, c.Grab(1, "content"))

	c.Cancel()
	assert.Equal(t, Idle, c.State())

	_, scheduled, err := c.Drop(context.Background(), testDay())
	require.NoError(t, err)
	assert.False(t, scheduled)
	assert.Zero(t, rec.calls)
}

func TestGrabSnapshotsContent(t *testing.T) {
	// What a drop schedules is fixed at grab time. Regenerating the variation
	// list underneath the gesture must not swap in different content.
	rec := &insertRecorder{}
	c := NewController(rec.insert, signedIn)

	variationList := []string{"old a", "old b", "old c"}
	require.NoError(t, c.Grab(1, variationList[1]))

	variationList = []string{"new a", "new b", "new c"}
	_ = variationList

	_, scheduled, err := c.Drop(context.Background(), testDay())
	require.NoError(t, err)
	assert.True(t, scheduled)
	assert.Equal(t, "old b", rec.content)
}

func TestSecondGrabReplacesFirst(t *testing.T) {
	rec := &insertRecorder{}
	c := NewController(rec.insert, signedIn)

	require.NoError(t, c.Grab(0, "first"))
	require.NoError(t, c.Grab(3, "second"))

	idx, content := c.Grabbed()
	assert.Equal(t, 3, idx)
	assert.Equal(t, "second", content)

	_, _, err := c.Drop(context.Background(), testDay())
	require.NoError(t, err)
	assert.Equal(t, 1, rec.calls)
	assert.Equal(t, "second", rec.content)
}

func TestGrabEmptyContent(t *testing.T) {
	c := NewController(nil, signedIn)
	err := c.Grab(0, "")
	assert.True(t, errors.Is(err, ErrNothingGrabbed))
	assert.Equal(t, Idle, c.State())
}

func TestDropSurfacesInsertError(t *testing.T) {
	rec := &insertRecorder{err: errors.New("store down")}
	c := NewController(rec.insert, signedIn)
	require.NoError(t, c.Grab(0, "content"))

	_, scheduled, err := c.Drop(context.Background(), testDay())
	require.Error(t, err)
	assert.False(t, scheduled)
	assert.Equal(t, Idle, c.State(), "a failed drop still ends the gesture")
}

func TestRegrabAfterDropAllowed(t *testing.T) {
	rec := &insertRecorder{}
	c := NewController(rec.insert, signedIn)

	require.NoError(t, c.Grab(0, "one"))
	_, _, err := c.Drop(context.Background(), testDay())
	require.NoError(t, err)

	require.NoError(t, c.Grab(1, "two"))
	_, scheduled, err := c.Drop(context.Background(), testDay())
	require.NoError(t, err)
	assert.True(t, scheduled)
	assert.Equal(t, 2, rec.calls)
}

package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielwaldman/cadence/internal/domain"
	"github.com/danielwaldman/cadence/internal/identity"
	"github.com/danielwaldman/cadence/internal/store"
)

var alice = identity.Identity{UserID: "alice"}

// fakeRemote is a scripted ItemStore that counts calls.
type fakeRemote struct {
	selectItems []domain.ScheduledItem
	selectErr   error
	insertErr   error
	deleteErr   error

	selectCalls int
	insertCalls int
	deleteCalls int
	nextID      int
}

func (f *fakeRemote) SelectRange(_ context.Context, _ identity.Identity, _, _ domain.Day) ([]domain.ScheduledItem, error) {
	f.selectCalls++
	if f.selectErr != nil {
		return nil, f.selectErr
	}
	return f.selectItems, nil
}

func (f *fakeRemote) Insert(_ context.Context, ident identity.Identity, day domain.Day, content string, platform domain.Platform) (domain.ScheduledItem, error) {
	f.insertCalls++
	if f.insertErr != nil {
		return domain.ScheduledItem{}, f.insertErr
	}
	f.nextID++
	return domain.ScheduledItem{
		ID: string(rune('a' + f.nextID)), UserID: ident.UserID,
		Day: day, Content: content, Platform: platform,
	}, nil
}

func (f *fakeRemote) Delete(_ context.Context, _ identity.Identity, _ string) error {
	f.deleteCalls++
	return f.deleteErr
}

func item(id string, day domain.Day, content string) domain.ScheduledItem {
	return domain.ScheduledItem{ID: id, UserID: "alice", Day: day, Content: content, Platform: domain.PlatformAll}
}

func marchRange() (domain.Day, domain.Day) {
	return domain.NewDay(2026, time.March, 1), domain.NewDay(2026, time.March, 31)
}

func TestRefreshBucketsByDay(t *testing.T) {
	d5 := domain.NewDay(2026, time.March, 5)
	d9 := domain.NewDay(2026, time.March, 9)
	remote := &fakeRemote{selectItems: []domain.ScheduledItem{
		item("1", d5, "first"),
		item("2", d5, "second"),
		item("3", d9, "third"),
	}}
	s := New(remote, nil)

	from, to := marchRange()
	require.NoError(t, s.Refresh(context.Background(), alice, from, to))

	assert.True(t, s.Fetched())
	assert.Equal(t, 3, s.Len())

	got := s.Items(d5)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Content)
	assert.Equal(t, "second", got[1].Content)

	assert.Len(t, s.Items(d9), 1)
	assert.Empty(t, s.Items(domain.NewDay(2026, time.March, 10)))
}

func TestRefreshSignedOutSkipsNetwork(t *testing.T) {
	remote := &fakeRemote{selectItems: []domain.ScheduledItem{
		item("1", domain.NewDay(2026, time.March, 5), "x"),
	}}
	s := New(remote, nil)

	from, to := marchRange()
	require.NoError(t, s.Refresh(context.Background(), alice, from, to))
	require.Equal(t, 1, s.Len())

	require.NoError(t, s.Refresh(context.Background(), identity.Anonymous, from, to))
	assert.Equal(t, 0, s.Len(), "signing out clears the cache")
	assert.False(t, s.Fetched())
	assert.Equal(t, 1, remote.selectCalls, "no fetch for the signed-out identity")
}

func TestRefreshErrorLeavesCacheIntact(t *testing.T) {
	remote := &fakeRemote{selectItems: []domain.ScheduledItem{
		item("1", domain.NewDay(2026, time.March, 5), "kept"),
	}}
	s := New(remote, nil)
	from, to := marchRange()
	require.NoError(t, s.Refresh(context.Background(), alice, from, to))

	remote.selectErr = store.ErrUnavailable
	err := s.Refresh(context.Background(), alice, from, to)
	assert.True(t, errors.Is(err, store.ErrUnavailable))
	assert.Equal(t, 1, s.Len(), "failed refresh must not clobber cached items")
}

func TestApplyDiscardsSupersededTicket(t *testing.T) {
	s := New(&fakeRemote{}, nil)
	from, to := marchRange()
	d := domain.NewDay(2026, time.March, 5)

	first := s.Begin(alice, from, to)
	second := s.Begin(alice, from, to)

	// The later request's result lands first.
	assert.True(t, s.Apply(second, []domain.ScheduledItem{item("new", d, "current")}))

	// The older result arrives late and must be dropped whole.
	assert.False(t, s.Apply(first, []domain.ScheduledItem{item("old", d, "stale")}))

	got := s.Items(d)
	require.Len(t, got, 1)
	assert.Equal(t, "current", got[0].Content)
}

func TestInsertMirrorsIntoFetchedRange(t *testing.T) {
	remote := &fakeRemote{}
	s := New(remote, nil)
	from, to := marchRange()
	require.NoError(t, s.Refresh(context.Background(), alice, from, to))

	day := domain.NewDay(2026, time.March, 12)
	got, err := s.Insert(context.Background(), alice, day, "dropped", domain.PlatformAll)
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)

	cached := s.Items(day)
	require.Len(t, cached, 1)
	assert.Equal(t, "dropped", cached[0].Content)
	assert.Equal(t, got.ID, cached[0].ID)
}

func TestInsertOutsideRangePersistsWithoutMirroring(t *testing.T) {
	remote := &fakeRemote{}
	s := New(remote, nil)
	from, to := marchRange()
	require.NoError(t, s.Refresh(context.Background(), alice, from, to))

	day := domain.NewDay(2026, time.April, 2)
	_, err := s.Insert(context.Background(), alice, day, "next month", domain.PlatformAll)
	require.NoError(t, err)

	assert.Equal(t, 1, remote.insertCalls)
	assert.Empty(t, s.Items(day), "out-of-range items stay out of the cache")
}

func TestInsertFailureMutatesNothing(t *testing.T) {
	remote := &fakeRemote{insertErr: store.ErrUnavailable}
	s := New(remote, nil)
	from, to := marchRange()
	require.NoError(t, s.Refresh(context.Background(), alice, from, to))

	day := domain.NewDay(2026, time.March, 12)
	_, err := s.Insert(context.Background(), alice, day, "doomed", domain.PlatformAll)
	assert.True(t, errors.Is(err, store.ErrUnavailable))
	assert.Equal(t, 0, s.Len())
}

func TestInsertSignedOut(t *testing.T) {
	remote := &fakeRemote{}
	s := New(remote, nil)

	day := domain.NewDay(2026, time.March, 12)
	_, err := s.Insert(context.Background(), identity.Anonymous, day, "nope", domain.PlatformAll)
	assert.True(t, errors.Is(err, store.ErrUnauthorized))
	assert.Zero(t, remote.insertCalls)
}

func TestRemovePrunesById(t *testing.T) {
	d := domain.NewDay(2026, time.March, 5)
	remote := &fakeRemote{selectItems: []domain.ScheduledItem{
		item("keep", d, "keep"),
		item("drop", d, "drop"),
	}}
	s := New(remote, nil)
	from, to := marchRange()
	require.NoError(t, s.Refresh(context.Background(), alice, from, to))

	require.NoError(t, s.Remove(context.Background(), alice, "drop"))
	assert.Equal(t, 1, remote.deleteCalls)

	got := s.Items(d)
	require.Len(t, got, 1)
	assert.Equal(t, "keep", got[0].ID)
}

func TestRemoveLastItemDropsBucket(t *testing.T) {
	d := domain.NewDay(2026, time.March, 5)
	remote := &fakeRemote{selectItems: []domain.ScheduledItem{item("only", d, "only")}}
	s := New(remote, nil)
	from, to := marchRange()
	require.NoError(t, s.Refresh(context.Background(), alice, from, to))

	require.NoError(t, s.Remove(context.Background(), alice, "only"))
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Items(d))
}

func TestRemoveFailureKeepsItem(t *testing.T) {
	d := domain.NewDay(2026, time.March, 5)
	remote := &fakeRemote{
		selectItems: []domain.ScheduledItem{item("stuck", d, "stuck")},
		deleteErr:   store.ErrUnavailable,
	}
	s := New(remote, nil)
	from, to := marchRange()
	require.NoError(t, s.Refresh(context.Background(), alice, from, to))

	err := s.Remove(context.Background(), alice, "stuck")
	assert.True(t, errors.Is(err, store.ErrUnavailable))
	assert.Len(t, s.Items(d), 1)
}

func TestVisiblePreservesOrder(t *testing.T) {
	d5 := domain.NewDay(2026, time.March, 5)
	d9 := domain.NewDay(2026, time.March, 9)
	remote := &fakeRemote{selectItems: []domain.ScheduledItem{
		item("1", d5, "a"),
		item("2", d5, "b"),
		item("3", d9, "c"),
	}}
	s := New(remote, nil)
	from, to := marchRange()
	require.NoError(t, s.Refresh(context.Background(), alice, from, to))

	got := s.Visible([]domain.Day{d5, d9})
	require.Len(t, got, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{got[0].Content, got[1].Content, got[2].Content})

	// Day order in the argument drives output order.
	rev := s.Visible([]domain.Day{d9, d5})
	assert.Equal(t, "c", rev[0].Content)
}

// Package schedule holds the range-scoped in-memory view of the remote row
// store: a mapping from calendar-day key to the ordered items scheduled on
// that day.
package schedule

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/danielwaldman/cadence/internal/domain"
	"github.com/danielwaldman/cadence/internal/identity"
	"github.com/danielwaldman/cadence/internal/store"
)

// Ticket stamps one refresh request. A ticket issued before a newer one is
// stale, and applying it is a no-op: last request wins, earlier responses
// arriving late are discarded rather than merged.
type Ticket struct {
	gen   uint64
	Ident identity.Identity
	From  domain.Day
	To    domain.Day
}

// Store caches the visible slice of a user's schedule. Items are bucketed by
// day key; every item's day always matches the bucket it sits under, and
// items are only present when their day falls inside the last-fetched range.
type Store struct {
	remote store.ItemStore
	logger *zap.Logger

	mu      sync.Mutex
	gen     uint64
	fetched bool
	ident   identity.Identity
	from    domain.Day
	to      domain.Day
	buckets map[string][]domain.ScheduledItem
}

// New creates an empty, unfetched Store over the given row store.
func New(remote store.ItemStore, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		remote:  remote,
		logger:  logger,
		buckets: make(map[string][]domain.ScheduledItem),
	}
}

// Begin stamps a new refresh for the given identity and range, superseding
// every ticket issued before it.
func (s *Store) Begin(ident identity.Identity, from, to domain.Day) Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	return Ticket{gen: s.gen, Ident: ident, From: from, To: to}
}

// Apply installs a fetch result if its ticket is still current. It reports
// whether the result was applied; stale results are dropped untouched.
func (s *Store) Apply(t Ticket, items []domain.ScheduledItem) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.gen != s.gen {
		s.logger.Debug("discarding superseded fetch result",
			zap.String("from", t.From.Key()),
			zap.String("to", t.To.Key()),
		)
		return false
	}

	buckets := make(map[string][]domain.ScheduledItem, len(items))
	for _, item := range items {
		key := item.Day.Key()
		buckets[key] = append(buckets[key], item)
	}

	s.buckets = buckets
	s.fetched = t.Ident.SignedIn()
	s.ident = t.Ident
	s.from = t.From
	s.to = t.To
	return true
}

// Refresh discards the cache and synchronously refetches the given range.
// A signed-out identity clears the cache without any network call.
func (s *Store) Refresh(ctx context.Context, ident identity.Identity, from, to domain.Day) error {
	t := s.Begin(ident, from, to)

	if !ident.SignedIn() {
		s.Apply(t, nil)
		return nil
	}

	items, err := s.remote.SelectRange(ctx, ident, from, to)
	if err != nil {
		return err
	}
	s.Apply(t, items)
	return nil
}

// Insert persists a new item for the day and mirrors it into the cache on
// success. On failure nothing is mutated locally; the error is surfaced for
// display and never retried here.
func (s *Store) Insert(ctx context.Context, ident identity.Identity, day domain.Day, content string, platform domain.Platform) (domain.ScheduledItem, error) {
	if !ident.SignedIn() {
		return domain.ScheduledItem{}, store.ErrUnauthorized
	}

	item, err := s.remote.Insert(ctx, ident, day, content, platform)
	if err != nil {
		return domain.ScheduledItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Mirror only when the day is inside the fetched range; the cache
	// invariant forbids out-of-range items.
	if s.fetched && s.ident == ident && day.Within(s.from, s.to) {
		key := day.Key()
		s.buckets[key] = append(s.buckets[key], item)
	}
	return item, nil
}

// Remove deletes the item remotely and prunes it from whichever bucket holds
// it, matching by id only. The caller never addresses a bucket directly.
func (s *Store) Remove(ctx context.Context, ident identity.Identity, id string) error {
	if !ident.SignedIn() {
		return store.ErrUnauthorized
	}

	if err := s.remote.Delete(ctx, ident, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for key, bucket := range s.buckets {
		for i, item := range bucket {
			if item.ID == id {
				s.buckets[key] = append(bucket[:i], bucket[i+1:]...)
				if len(s.buckets[key]) == 0 {
					delete(s.buckets, key)
				}
				return nil
			}
		}
	}
	return nil
}

// Items returns the cached items for one day in insertion order.
func (s *Store) Items(day domain.Day) []domain.ScheduledItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	bucket := s.buckets[day.Key()]
	out := make([]domain.ScheduledItem, len(bucket))
	copy(out, bucket)
	return out
}

// Visible returns the cached items for the given days, preserving day order
// and insertion order within each day.
func (s *Store) Visible(days []domain.Day) []domain.ScheduledItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.ScheduledItem
	for _, day := range days {
		out = append(out, s.buckets[day.Key()]...)
	}
	return out
}

// Len returns the total number of cached items.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, bucket := range s.buckets {
		n += len(bucket)
	}
	return n
}

// Fetched reports whether the cache reflects a completed fetch for a
// signed-in identity.
func (s *Store) Fetched() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetched
}

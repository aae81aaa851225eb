// Package store defines the row-store boundary for scheduled items and its
// two implementations: a PostgREST-style remote table and a local SQLite
// database. All operations are scoped to the calling identity's own rows.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielwaldman/cadence/internal/domain"
	"github.com/danielwaldman/cadence/internal/identity"
)

var (
	// ErrUnavailable indicates a network or store-side failure.
	ErrUnavailable = errors.New("schedule store unavailable")

	// ErrUnauthorized indicates a missing identity or rejected credential.
	ErrUnauthorized = errors.New("not authorized for schedule store")

	// ErrNotFound indicates the addressed item does not exist (or is not
	// visible to the calling identity).
	ErrNotFound = errors.New("scheduled item not found")

	// ErrValidation indicates a malformed insert payload.
	ErrValidation = errors.New("invalid scheduled item")
)

// ItemStore is the keyed row store holding scheduled items.
type ItemStore interface {
	// SelectRange returns the identity's items with dates in [from, to],
	// ordered by date then insertion order.
	SelectRange(ctx context.Context, ident identity.Identity, from, to domain.Day) ([]domain.ScheduledItem, error)

	// Insert stores a new item and returns it with its issued id.
	Insert(ctx context.Context, ident identity.Identity, day domain.Day, content string, platform domain.Platform) (domain.ScheduledItem, error)

	// Delete removes the identity's item with the given id.
	Delete(ctx context.Context, ident identity.Identity, id string) error
}

// validateInsert applies the payload rules shared by all implementations.
func validateInsert(ident identity.Identity, day domain.Day, content string, platform domain.Platform) error {
	if !ident.SignedIn() {
		return ErrUnauthorized
	}
	if day.IsZero() {
		return fmt.Errorf("%w: day is required", ErrValidation)
	}
	if content == "" {
		return fmt.Errorf("%w: content is required", ErrValidation)
	}
	if !domain.ValidPlatforms[string(platform)] {
		return fmt.Errorf("%w: unknown platform %q", ErrValidation, platform)
	}
	return nil
}

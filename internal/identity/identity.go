// Package identity models the signed-in user and the short-lived bearer
// credentials used to scope row-store operations.
package identity

import "context"

// Identity is the stable user identifier yielded by the identity provider.
// The zero value means signed out; every store operation is skipped for it.
type Identity struct {
	UserID string
}

// Anonymous is the signed-out identity.
var Anonymous = Identity{}

// SignedIn reports whether the identity belongs to an authenticated user.
func (i Identity) SignedIn() bool {
	return i.UserID != ""
}

// TokenProvider yields a bearer credential for one store operation.
// Credentials are short-lived: callers fetch a fresh one per operation and
// never cache an authenticated client across operations.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// StaticTokenProvider returns a fixed token. Used in local single-user mode
// and in tests.
type StaticTokenProvider struct {
	Value string
}

func (p StaticTokenProvider) Token(context.Context) (string, error) {
	return p.Value, nil
}

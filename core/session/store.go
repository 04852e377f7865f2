package session

import "context"

// Store persists the single-active-session state per user.
//
// Implementations must make Acquire atomic: when two logins race for the
// same username, exactly one observes acquired == true.
type Store interface {
	// Acquire claims the user's session slot with the given token.
	// Returns false without error when the slot is already held.
	Acquire(ctx context.Context, username, token string) (bool, error)

	// Token returns the token currently holding the user's session slot.
	// Returns ErrNotLoggedIn when the slot is free.
	Token(ctx context.Context, username string) (string, error)

	// Release frees the user's session slot. Releasing a free slot is a no-op.
	Release(ctx context.Context, username string) error

	// ReleaseAll frees every session slot.
	ReleaseAll(ctx context.Context) error
}

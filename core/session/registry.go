package session

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"
)

// DefaultIdleTimeout is how long a session survives without activity.
const DefaultIdleTimeout = 30 * time.Minute

// Identity is the result of a successful credential check.
type Identity struct {
	Username string
	Role     string
}

// CredentialVerifier checks a username/password pair and reports who the
// caller is. Implementations return their own error for bad credentials;
// the registry passes it through unchanged.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (Identity, error)
}

// Registry owns session lifecycle: login, validation, logout, and bulk reset.
// It enforces the single-active-session rule through the store's atomic
// Acquire operation.
type Registry struct {
	store       Store
	verifier    CredentialVerifier
	idleTimeout time.Duration
	now         func() time.Time
}

// Option configures the registry.
type Option func(*Registry)

// WithIdleTimeout overrides the default idle timeout.
func WithIdleTimeout(d time.Duration) Option {
	return func(r *Registry) {
		if d > 0 {
			r.idleTimeout = d
		}
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRegistry creates a session registry backed by the given store.
func NewRegistry(store Store, verifier CredentialVerifier, opts ...Option) *Registry {
	r := &Registry{
		store:       store,
		verifier:    verifier,
		idleTimeout: DefaultIdleTimeout,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Login verifies credentials and claims the user's session slot.
//
// Credentials are always checked first: a wrong password never reveals
// whether the user is logged in elsewhere. When the slot is already held,
// ErrAlreadyLoggedIn is returned even if that session has gone idle but
// was never released.
func (r *Registry) Login(ctx context.Context, username, password string) (Session, error) {
	identity, err := r.verifier.Verify(ctx, username, password)
	if err != nil {
		return Session{}, err
	}

	token, err := generateToken()
	if err != nil {
		return Session{}, err
	}

	acquired, err := r.store.Acquire(ctx, identity.Username, token)
	if err != nil {
		return Session{}, err
	}
	if !acquired {
		return Session{}, ErrAlreadyLoggedIn
	}

	return Session{
		Username:   identity.Username,
		Token:      token,
		Role:       identity.Role,
		LastActive: r.now(),
	}, nil
}

// Validate checks that the presented token still holds the user's session
// slot. Any mismatch, including a released slot, yields ErrTokenMismatch
// so callers treat both cases as a dead session.
func (r *Registry) Validate(ctx context.Context, username, token string) error {
	current, err := r.store.Token(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotLoggedIn) {
			return ErrTokenMismatch
		}
		return err
	}

	if subtle.ConstantTimeCompare([]byte(current), []byte(token)) != 1 {
		return ErrTokenMismatch
	}

	return nil
}

// Logout releases the user's session slot. Logging out a user who is not
// logged in is a no-op.
func (r *Registry) Logout(ctx context.Context, username string) error {
	return r.store.Release(ctx, username)
}

// ResetAll releases every session slot. Used at server startup and
// shutdown so stale slots never lock users out across restarts.
func (r *Registry) ResetAll(ctx context.Context) error {
	return r.store.ReleaseAll(ctx)
}

// Expired reports whether a session has been idle longer than the
// configured timeout.
func (r *Registry) Expired(s Session) bool {
	return r.now().Sub(s.LastActive) > r.idleTimeout
}

// IdleTimeout returns the configured idle timeout.
func (r *Registry) IdleTimeout() time.Duration {
	return r.idleTimeout
}

// Now returns the registry's current time. Callers refreshing a session's
// activity timestamp use this so tests can control the clock.
func (r *Registry) Now() time.Time {
	return r.now()
}

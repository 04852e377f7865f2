// Package auth owns user credentials: registration, password verification,
// and role resolution. Passwords are stored as bcrypt hashes; roles are
// derived from a configured admin allowlist at login time.
package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/timeclock/core/session"
)

const (
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

// User is an authenticated account with its resolved role.
type User struct {
	Username string
	Role     string
}

// UserStore persists account credentials.
type UserStore interface {
	// Create registers a new account. Returns ErrDuplicateUser when the
	// username is taken.
	Create(ctx context.Context, username, passwordHash string) error

	// PasswordHash returns the stored bcrypt hash for the username.
	// Returns ErrUserNotFound when no such account exists.
	PasswordHash(ctx context.Context, username string) (string, error)
}

// dummyHash keeps Authenticate's timing flat for unknown usernames.
// It is a valid bcrypt hash of a random string nobody knows.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Service verifies credentials and registers new employees.
type Service struct {
	store  UserStore
	admins map[string]struct{}
	cost   int
}

// Option configures the auth service.
type Option func(*Service)

// WithAdmins sets the usernames that resolve to the admin role.
func WithAdmins(usernames []string) Option {
	return func(s *Service) {
		for _, u := range usernames {
			if u = strings.TrimSpace(u); u != "" {
				s.admins[u] = struct{}{}
			}
		}
	}
}

// WithBcryptCost overrides the bcrypt cost factor.
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.cost = cost
		}
	}
}

// New creates an auth service backed by the given user store.
func New(store UserStore, opts ...Option) *Service {
	s := &Service{
		store:  store,
		admins: make(map[string]struct{}),
		cost:   bcrypt.DefaultCost,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Authenticate checks the password against the stored hash and resolves
// the user's role. Unknown usernames and wrong passwords are
// indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, username, password string) (User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return User{}, ErrEmptyCredentials
	}

	hash, err := s.store.PasswordHash(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// Burn the same bcrypt work as the happy path.
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	return User{Username: username, Role: s.roleOf(username)}, nil
}

// Verify implements session.CredentialVerifier.
func (s *Service) Verify(ctx context.Context, username, password string) (session.Identity, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return session.Identity{}, err
	}
	return session.Identity{Username: user.Username, Role: user.Role}, nil
}

// CreateEmployee registers a new account with a bcrypt-hashed password.
func (s *Service) CreateEmployee(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return ErrEmptyCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return err
	}

	return s.store.Create(ctx, username, string(hash))
}

// IsAdmin reports whether the username is on the admin allowlist.
func (s *Service) IsAdmin(username string) bool {
	_, ok := s.admins[username]
	return ok
}

func (s *Service) roleOf(username string) string {
	if s.IsAdmin(username) {
		return RoleAdmin
	}
	return RoleEmployee
}

package auth_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/timeclock/auth"
)

type memoryUserStore struct {
	mu     sync.Mutex
	hashes map[string]string
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{hashes: make(map[string]string)}
}

func (s *memoryUserStore) Create(ctx context.Context, username, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.hashes[username]; exists {
		return auth.ErrDuplicateUser
	}
	s.hashes[username] = passwordHash
	return nil
}

func (s *memoryUserStore) PasswordHash(ctx context.Context, username string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hash, ok := s.hashes[username]
	if !ok {
		return "", auth.ErrUserNotFound
	}
	return hash, nil
}

func newService(t *testing.T, opts ...auth.Option) (*auth.Service, *memoryUserStore) {
	t.Helper()
	store := newMemoryUserStore()
	// MinCost keeps the bcrypt work negligible in tests.
	opts = append([]auth.Option{auth.WithBcryptCost(bcrypt.MinCost)}, opts...)
	return auth.New(store, opts...), store
}

func TestCreateEmployee(t *testing.T) {
	t.Parallel()

	t.Run("stores bcrypt hash, not the password", func(t *testing.T) {
		t.Parallel()

		svc, store := newService(t)
		require.NoError(t, svc.CreateEmployee(context.Background(), "alice", "s3cret"))

		hash, err := store.PasswordHash(context.Background(), "alice")
		require.NoError(t, err)
		assert.NotEqual(t, "s3cret", hash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")))
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		t.Parallel()

		svc, _ := newService(t)
		require.NoError(t, svc.CreateEmployee(context.Background(), "alice", "pw1"))
		assert.ErrorIs(t, svc.CreateEmployee(context.Background(), "alice", "pw2"), auth.ErrDuplicateUser)
	})

	t.Run("blank input rejected", func(t *testing.T) {
		t.Parallel()

		svc, _ := newService(t)
		assert.ErrorIs(t, svc.CreateEmployee(context.Background(), "", "pw"), auth.ErrEmptyCredentials)
		assert.ErrorIs(t, svc.CreateEmployee(context.Background(), "alice", ""), auth.ErrEmptyCredentials)
		assert.ErrorIs(t, svc.CreateEmployee(context.Background(), "   ", "pw"), auth.ErrEmptyCredentials)
	})
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	t.Run("correct password", func(t *testing.T) {
		t.Parallel()

		svc, _ := newService(t)
		require.NoError(t, svc.CreateEmployee(context.Background(), "alice", "s3cret"))

		user, err := svc.Authenticate(context.Background(), "alice", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, auth.RoleEmployee, user.Role)
	})

	t.Run("wrong password and unknown user look the same", func(t *testing.T) {
		t.Parallel()

		svc, _ := newService(t)
		require.NoError(t, svc.CreateEmployee(context.Background(), "alice", "s3cret"))

		_, errWrongPw := svc.Authenticate(context.Background(), "alice", "nope")
		_, errNoUser := svc.Authenticate(context.Background(), "ghost", "nope")

		assert.ErrorIs(t, errWrongPw, auth.ErrInvalidCredentials)
		assert.ErrorIs(t, errNoUser, auth.ErrInvalidCredentials)
	})

	t.Run("blank input rejected", func(t *testing.T) {
		t.Parallel()

		svc, _ := newService(t)
		_, err := svc.Authenticate(context.Background(), "", "")
		assert.ErrorIs(t, err, auth.ErrEmptyCredentials)
	})
}

func TestAdminRole(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t, auth.WithAdmins([]string{"boss", " hr "}))
	require.NoError(t, svc.CreateEmployee(context.Background(), "boss", "pw"))
	require.NoError(t, svc.CreateEmployee(context.Background(), "hr", "pw"))
	require.NoError(t, svc.CreateEmployee(context.Background(), "alice", "pw"))

	boss, err := svc.Authenticate(context.Background(), "boss", "pw")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, boss.Role)

	// Allowlist entries are trimmed.
	hr, err := svc.Authenticate(context.Background(), "hr", "pw")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, hr.Role)

	alice, err := svc.Authenticate(context.Background(), "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleEmployee, alice.Role)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	store := newMemoryUserStore()
	svc := auth.NewFromConfig(auth.Config{AdminUsers: "boss,hr", BcryptCost: bcrypt.MinCost}, store)

	assert.True(t, svc.IsAdmin("boss"))
	assert.True(t, svc.IsAdmin("hr"))
	assert.False(t, svc.IsAdmin("alice"))
}

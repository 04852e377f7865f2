// Package postgres provides pgx-backed repositories for users, session
// slots, and attendance timesheets. All SQL lives here; domain packages
// only see their own interfaces.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/timeclock/auth"
	"github.com/dmitrymomot/timeclock/integration/database/pg"
)

// UserRepository implements auth.UserStore on Postgres.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a user repository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create registers a new account.
func (r *UserRepository) Create(ctx context.Context, username, passwordHash string) error {
	const query = `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)`

	if _, err := r.pool.Exec(ctx, query, username, passwordHash); err != nil {
		if pg.IsDuplicateKeyError(err) {
			return auth.ErrDuplicateUser
		}
		return err
	}
	return nil
}

// PasswordHash returns the stored bcrypt hash for the username.
func (r *UserRepository) PasswordHash(ctx context.Context, username string) (string, error) {
	const query = `
		SELECT password_hash
		FROM users
		WHERE username = $1`

	var hash string
	if err := r.pool.QueryRow(ctx, query, username).Scan(&hash); err != nil {
		if pg.IsNotFoundError(err) {
			return "", auth.ErrUserNotFound
		}
		return "", err
	}
	return hash, nil
}

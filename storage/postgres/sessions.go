package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/timeclock/core/session"
	"github.com/dmitrymomot/timeclock/integration/database/pg"
)

// SessionRepository implements session.Store on Postgres. The single
// atomic upsert in Acquire is what makes concurrent logins for the same
// user safe: two racing inserts resolve through the primary key, and the
// conditional update only succeeds for the one that finds the slot free.
type SessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a session slot repository.
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// Acquire claims the user's session slot with the given token.
func (r *SessionRepository) Acquire(ctx context.Context, username, token string) (bool, error) {
	const query = `
		INSERT INTO login_status (username, logged_in, session_token, last_login_at)
		VALUES ($1, TRUE, $2, now())
		ON CONFLICT (username) DO UPDATE
		SET logged_in = TRUE, session_token = EXCLUDED.session_token, last_login_at = now()
		WHERE NOT login_status.logged_in`

	tag, err := r.pool.Exec(ctx, query, username, token)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// Token returns the token currently holding the user's session slot.
func (r *SessionRepository) Token(ctx context.Context, username string) (string, error) {
	const query = `
		SELECT session_token
		FROM login_status
		WHERE username = $1 AND logged_in`

	var token string
	if err := r.pool.QueryRow(ctx, query, username).Scan(&token); err != nil {
		if pg.IsNotFoundError(err) {
			return "", session.ErrNotLoggedIn
		}
		return "", err
	}
	return token, nil
}

// Release frees the user's session slot. Releasing a free slot is a no-op.
func (r *SessionRepository) Release(ctx context.Context, username string) error {
	const query = `
		UPDATE login_status
		SET logged_in = FALSE, session_token = NULL
		WHERE username = $1`

	_, err := r.pool.Exec(ctx, query, username)
	return err
}

// ReleaseAll frees every session slot. Called at startup and shutdown so
// slots held at crash time never lock users out.
func (r *SessionRepository) ReleaseAll(ctx context.Context) error {
	const query = `
		UPDATE login_status
		SET logged_in = FALSE, session_token = NULL
		WHERE logged_in`

	_, err := r.pool.Exec(ctx, query)
	return err
}

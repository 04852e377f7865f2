package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/timeclock/attendance"
	"github.com/dmitrymomot/timeclock/integration/database/pg"
)

// TimesheetRepository implements attendance.Repository on Postgres.
// Set-once is enforced in SQL: the column is written only WHERE it is
// still NULL, so racing clicks for the same action cannot overwrite
// each other.
type TimesheetRepository struct {
	pool *pgxpool.Pool
}

// NewTimesheetRepository creates a timesheet repository.
func NewTimesheetRepository(pool *pgxpool.Pool) *TimesheetRepository {
	return &TimesheetRepository{pool: pool}
}

// columnFor whitelists the mutable timestamp columns. Field values come
// from the attendance package, never from user input, but the whitelist
// keeps the dynamic column name provably safe.
func columnFor(field attendance.Field) (string, error) {
	switch field {
	case attendance.FieldStart:
		return "start_time", nil
	case attendance.FieldBreak:
		return "break_time", nil
	case attendance.FieldOnSeat:
		return "onseat_time", nil
	case attendance.FieldLeave:
		return "leave_time", nil
	default:
		return "", fmt.Errorf("unknown timesheet field %q", field)
	}
}

// begin reuses a context-carried transaction when one is present,
// otherwise starts its own. owned reports whether this repository must
// commit; a caller-provided transaction stays under the caller's control.
func (r *TimesheetRepository) begin(ctx context.Context) (tx pgx.Tx, owned bool, err error) {
	if tx, ok := pg.TxFromContext(ctx); ok {
		return tx, false, nil
	}
	tx, err = r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, false, err
	}
	return tx, true, nil
}

// SetActionTime writes the field for the user's day if it is unset, and
// mirrors the write into the logs table within the same transaction.
func (r *TimesheetRepository) SetActionTime(ctx context.Context, username string, day time.Time, field attendance.Field, at time.Time) (bool, error) {
	column, err := columnFor(field)
	if err != nil {
		return false, err
	}

	tx, owned, err := r.begin(ctx)
	if err != nil {
		return false, err
	}
	if owned {
		defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit
	}

	const ensureDay = `
		INSERT INTO user_actions (username, action_date)
		VALUES ($1, $2)
		ON CONFLICT (username, action_date) DO NOTHING`
	if _, err := tx.Exec(ctx, ensureDay, username, day); err != nil {
		return false, err
	}

	setOnce := fmt.Sprintf(`
		UPDATE user_actions
		SET %[1]s = $3
		WHERE username = $1 AND action_date = $2 AND %[1]s IS NULL`, column)
	tag, err := tx.Exec(ctx, setOnce, username, day, at)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		// Already set; nothing to mirror.
		if owned {
			return false, tx.Commit(ctx)
		}
		return false, nil
	}

	mergeLog := fmt.Sprintf(`
		INSERT INTO logs (username, log_date, %[1]s)
		VALUES ($1, $2, $3)
		ON CONFLICT (username, log_date) DO UPDATE
		SET %[1]s = COALESCE(logs.%[1]s, EXCLUDED.%[1]s)`, column)
	if _, err := tx.Exec(ctx, mergeLog, username, day, at); err != nil {
		return false, err
	}

	if owned {
		return true, tx.Commit(ctx)
	}
	return true, nil
}

// Day returns the user's timesheet for the given day.
func (r *TimesheetRepository) Day(ctx context.Context, username string, day time.Time) (attendance.Timesheet, error) {
	const query = `
		SELECT start_time, break_time, onseat_time, leave_time
		FROM user_actions
		WHERE username = $1 AND action_date = $2`

	sheet := attendance.Timesheet{Username: username, Date: day}
	err := r.pool.QueryRow(ctx, query, username, day).
		Scan(&sheet.Start, &sheet.Break, &sheet.OnSeat, &sheet.Leave)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return sheet, nil
		}
		return attendance.Timesheet{}, err
	}
	return sheet, nil
}

// Logs returns every log entry, newest first.
func (r *TimesheetRepository) Logs(ctx context.Context) ([]attendance.Timesheet, error) {
	const query = `
		SELECT username, log_date, start_time, break_time, onseat_time, leave_time
		FROM logs
		ORDER BY log_date DESC, username ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []attendance.Timesheet
	for rows.Next() {
		var e attendance.Timesheet
		if err := rows.Scan(&e.Username, &e.Date, &e.Start, &e.Break, &e.OnSeat, &e.Leave); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

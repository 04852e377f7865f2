package attendance

import (
	"context"
	"time"
)

// DefaultTimezone is the civil timezone used for action timestamps when
// none is configured.
const DefaultTimezone = "Asia/Karachi"

// Repository persists timesheets and the export log mirror.
type Repository interface {
	// SetActionTime writes the field for the user's day row only when it
	// is currently unset, creating the row on first touch. When the write
	// happens, the same field is merged into the log mirror within the
	// same transaction. Returns whether the field was written.
	SetActionTime(ctx context.Context, username string, day time.Time, field Field, at time.Time) (bool, error)

	// Day returns the user's timesheet for the given day. A day with no
	// recorded actions yields a zero-valued sheet, not an error.
	Day(ctx context.Context, username string, day time.Time) (Timesheet, error)

	// Logs returns every log entry, newest first.
	Logs(ctx context.Context) ([]Timesheet, error)
}

// Service drives the attendance state machine and the admin read side.
type Service struct {
	repo        Repository
	location    *time.Location
	strictOrder bool
	now         func() time.Time
}

// Option configures the service.
type Option func(*Service)

// WithLocation sets the civil timezone for action timestamps.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithStrictOrder enforces the ordered state machine:
// Start before Break/Back at Seat/Leave, and Break before Back at Seat.
// Off by default; the permissive behavior tolerates out-of-order clicks.
func WithStrictOrder(strict bool) Option {
	return func(s *Service) {
		s.strictOrder = strict
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates the attendance service.
func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		location: time.UTC,
		now:      time.Now,
	}

	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		s.location = loc
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// RecordAction timestamps the given action for the user's current day.
// Repeating an action is a silent no-op; the first timestamp wins.
func (s *Service) RecordAction(ctx context.Context, username, label string) error {
	field, ok := fieldForAction(label)
	if !ok {
		return ErrUnknownAction
	}

	now := s.now().In(s.location)
	day := civilDate(now)

	if s.strictOrder {
		sheet, err := s.repo.Day(ctx, username, day)
		if err != nil {
			return err
		}
		if err := checkTransition(sheet, field); err != nil {
			return err
		}
	}

	_, err := s.repo.SetActionTime(ctx, username, day, field, now)
	return err
}

// Today returns the user's timesheet for the current day, so the
// dashboard can show which buttons were already used.
func (s *Service) Today(ctx context.Context, username string) (Timesheet, error) {
	return s.repo.Day(ctx, username, civilDate(s.now().In(s.location)))
}

// Logs returns all log entries, newest first.
func (s *Service) Logs(ctx context.Context) ([]Timesheet, error) {
	return s.repo.Logs(ctx)
}

// LiveStatus computes current presence counts from the log table.
func (s *Service) LiveStatus(ctx context.Context) (LiveCounts, error) {
	entries, err := s.repo.Logs(ctx)
	if err != nil {
		return LiveCounts{}, err
	}
	return LiveStatus(entries), nil
}

// Now returns the current time in the service's timezone.
func (s *Service) Now() time.Time {
	return s.now().In(s.location)
}

// checkTransition validates strict ordering. The set-once rule itself is
// enforced by the repository regardless of mode.
func checkTransition(sheet Timesheet, field Field) error {
	switch field {
	case FieldStart:
		return nil
	case FieldBreak, FieldLeave:
		if sheet.Start == nil {
			return ErrInvalidTransition
		}
	case FieldOnSeat:
		if sheet.Start == nil || sheet.Break == nil {
			return ErrInvalidTransition
		}
	}
	return nil
}

// civilDate truncates a timestamp to its calendar day in its own location.
func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

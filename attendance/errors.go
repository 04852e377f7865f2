package attendance

import "errors"

var (
	// ErrUnknownAction indicates the submitted button label maps to no field.
	ErrUnknownAction = errors.New("unknown attendance action")

	// ErrInvalidTransition indicates the action violates the strict
	// ordering rules. Only returned when strict ordering is enabled.
	ErrInvalidTransition = errors.New("invalid attendance transition")

	// ErrNoLogs indicates an export was requested while the log table is empty.
	ErrNoLogs = errors.New("no attendance logs recorded")
)

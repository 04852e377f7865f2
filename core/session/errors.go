package session

import "errors"

var (
	// ErrAlreadyLoggedIn indicates the user holds an active session elsewhere.
	ErrAlreadyLoggedIn = errors.New("user is already logged in")

	// ErrNotLoggedIn indicates the user holds no active session.
	ErrNotLoggedIn = errors.New("user is not logged in")

	// ErrTokenMismatch indicates the presented token does not match the
	// active session, typically because a newer login replaced it or the
	// session was released.
	ErrTokenMismatch = errors.New("session token mismatch")
)

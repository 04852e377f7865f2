package auth

import "errors"

var (
	// ErrInvalidCredentials indicates the username/password pair doesn't match.
	// Callers must not learn whether the username exists.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrDuplicateUser indicates the username is already registered.
	ErrDuplicateUser = errors.New("user already exists")

	// ErrUserNotFound indicates no user with the given username exists.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmptyCredentials indicates a blank username or password was submitted.
	ErrEmptyCredentials = errors.New("username and password are required")
)

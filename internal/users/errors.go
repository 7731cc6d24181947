package users

import "errors"

// Sentinel errors for use with errors.Is().
var (
	// ErrNotFound is returned when no user has the requested username.
	ErrNotFound = errors.New("user does not exist")

	// ErrExists is returned when creating a user whose username is taken.
	ErrExists = errors.New("user already exists")

	// ErrInvalidCredentials is returned for both an unknown username and a
	// wrong password; callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("incorrect username or password")

	// ErrInvalidInput is returned for malformed registration or update data.
	ErrInvalidInput = errors.New("invalid user data")
)

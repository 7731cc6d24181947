package users

import (
	"context"
	"time"
)

// Store persists user credentials and account timestamps.
type Store interface {
	// FindByUsername returns the user, or nil if the username is unknown.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// Create persists a new user. Returns ErrExists if the username is taken.
	Create(ctx context.Context, u *User) error

	// Update applies the non-nil fields and returns the updated user.
	// Returns ErrNotFound if the username is unknown.
	Update(ctx context.Context, username string, passwordHash *string, birthday *time.Time) (*User, error)

	// Delete removes the user. Returns ErrNotFound if the username is unknown.
	Delete(ctx context.Context, username string) error

	// TouchLastLogin records a successful login time.
	TouchLastLogin(ctx context.Context, username string, at time.Time) error
}

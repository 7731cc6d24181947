// Package users implements the credential store and the account operations
// built on top of it: registration, login verification and partial updates.
package users

import (
	"context"
	"fmt"
	"time"

	"github.com/aloks98/taskboard/internal/password"
)

// Service composes a credential store with a password hasher.
type Service struct {
	store  Store
	hasher password.Hasher

	// now is swappable for tests.
	now func() time.Time
}

// NewService creates a user service.
func NewService(store Store, hasher password.Hasher) *Service {
	return &Service{
		store:  store,
		hasher: hasher,
		now:    time.Now,
	}
}

// Register creates a new account. The password is hashed before it is stored.
func (s *Service) Register(ctx context.Context, username, plaintext string, birthday *time.Time) (*User, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if plaintext == "" {
		return nil, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	hash, err := s.hasher.Hash(plaintext)
	if err != nil {
		return nil, err
	}

	u := &User{
		Username:     username,
		PasswordHash: hash,
		Birthday:     birthday,
		CreateTime:   s.now().UTC(),
	}
	if err := s.store.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate verifies a username/password pair and records the login time.
// An unknown username and a wrong password both return ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, plaintext string) (*User, error) {
	u, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(plaintext, u.PasswordHash)
	if err != nil || !ok {
		return nil, ErrInvalidCredentials
	}

	// Transparently upgrade hashes whose parameters drifted from config.
	if s.hasher.NeedsRehash(u.PasswordHash) {
		if rehash, err := s.hasher.Hash(plaintext); err == nil {
			if updated, err := s.store.Update(ctx, username, &rehash, nil); err == nil {
				u = updated
			}
		}
	}

	at := s.now().UTC()
	if err := s.store.TouchLastLogin(ctx, username, at); err != nil {
		return nil, err
	}
	u.LastLogin = &at

	return u, nil
}

// Get returns the user for a username.
func (s *Service) Get(ctx context.Context, username string) (*User, error) {
	u, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

// Update applies a partial update. Only non-nil patch fields change; a new
// password is hashed before it is stored.
func (s *Service) Update(ctx context.Context, username string, patch Patch) (*User, error) {
	var hash *string
	if patch.Password != nil {
		if *patch.Password == "" {
			return nil, fmt.Errorf("%w: password cannot be empty", ErrInvalidInput)
		}
		h, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, err
		}
		hash = &h
	}

	return s.store.Update(ctx, username, hash, patch.Birthday)
}

// Delete removes an account.
func (s *Service) Delete(ctx context.Context, username string) error {
	return s.store.Delete(ctx, username)
}

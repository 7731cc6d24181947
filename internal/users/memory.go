package users

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store implementation for tests and development.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]User
}

// NewMemoryStore creates an empty in-memory credential store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]User)}
}

// FindByUsername returns the user, or nil if the username is unknown.
func (s *MemoryStore) FindByUsername(ctx context.Context, username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[username]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// Create persists a new user.
func (s *MemoryStore) Create(ctx context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.Username]; ok {
		return ErrExists
	}
	s.users[u.Username] = *u
	return nil
}

// Update applies the non-nil fields and returns the updated user.
func (s *MemoryStore) Update(ctx context.Context, username string, passwordHash *string, birthday *time.Time) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return nil, ErrNotFound
	}

	if passwordHash != nil {
		u.PasswordHash = *passwordHash
	}
	if birthday != nil {
		b := *birthday
		u.Birthday = &b
	}

	s.users[username] = u
	return &u, nil
}

// Delete removes the user.
func (s *MemoryStore) Delete(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[username]; !ok {
		return ErrNotFound
	}
	delete(s.users, username)
	return nil
}

// TouchLastLogin records a successful login time.
func (s *MemoryStore) TouchLastLogin(ctx context.Context, username string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return ErrNotFound
	}
	u.LastLogin = &at
	s.users[username] = u
	return nil
}

var _ Store = (*MemoryStore)(nil)

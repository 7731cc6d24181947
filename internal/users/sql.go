package users

import (
	"context"
	"database/sql"
	"time"

	"github.com/aloks98/taskboard/internal/database"
)

// SQLStore implements Store using a SQL database.
type SQLStore struct {
	db *database.DB
}

// NewSQLStore creates a SQL-backed credential store.
func NewSQLStore(db *database.DB) *SQLStore {
	return &SQLStore{db: db}
}

// FindByUsername returns the user, or nil if the username is unknown.
func (s *SQLStore) FindByUsername(ctx context.Context, username string) (*User, error) {
	query := s.db.Rebind(`SELECT username, password_hash, birthday, create_time, last_login
		FROM users WHERE username = $1`)

	return scanUser(s.db.QueryRowContext(ctx, query, username))
}

// Create persists a new user. Returns ErrExists if the username is taken.
func (s *SQLStore) Create(ctx context.Context, u *User) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	query := s.db.Rebind(`SELECT 1 FROM users WHERE username = $1`)
	err = tx.QueryRowContext(ctx, query, u.Username).Scan(&exists)
	if err == nil {
		return ErrExists
	}
	if err != sql.ErrNoRows {
		return err
	}

	query = s.db.Rebind(`INSERT INTO users (username, password_hash, birthday, create_time, last_login)
		VALUES ($1, $2, $3, $4, $5)`)
	if _, err := tx.ExecContext(ctx, query,
		u.Username, u.PasswordHash, nullTime(u.Birthday), u.CreateTime, nullTime(u.LastLogin),
	); err != nil {
		// A concurrent insert can slip between the check and the insert;
		// the primary key rejects it and the outcome is still a conflict.
		return ErrExists
	}

	return tx.Commit()
}

// Update applies the non-nil fields and returns the updated user.
func (s *SQLStore) Update(ctx context.Context, username string, passwordHash *string, birthday *time.Time) (*User, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	query := s.db.Rebind(`SELECT username, password_hash, birthday, create_time, last_login
		FROM users WHERE username = $1`)
	u, err := scanUser(tx.QueryRowContext(ctx, query, username))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}

	if passwordHash != nil {
		u.PasswordHash = *passwordHash
	}
	if birthday != nil {
		u.Birthday = birthday
	}

	query = s.db.Rebind(`UPDATE users SET password_hash = $1, birthday = $2 WHERE username = $3`)
	if _, err := tx.ExecContext(ctx, query, u.PasswordHash, nullTime(u.Birthday), username); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return u, nil
}

// Delete removes the user.
func (s *SQLStore) Delete(ctx context.Context, username string) error {
	query := s.db.Rebind(`DELETE FROM users WHERE username = $1`)
	res, err := s.db.ExecContext(ctx, query, username)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// TouchLastLogin records a successful login time.
func (s *SQLStore) TouchLastLogin(ctx context.Context, username string, at time.Time) error {
	query := s.db.Rebind(`UPDATE users SET last_login = $1 WHERE username = $2`)
	_, err := s.db.ExecContext(ctx, query, at, username)
	return err
}

// rowScanner covers sql.Row and sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser reads one user row, returning nil (not an error) on no rows.
func scanUser(row rowScanner) (*User, error) {
	u := &User{}
	var birthday, lastLogin sql.NullTime

	err := row.Scan(&u.Username, &u.PasswordHash, &birthday, &u.CreateTime, &lastLogin)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if birthday.Valid {
		t := birthday.Time
		u.Birthday = &t
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLogin = &t
	}

	return u, nil
}

// nullTime converts an optional time to sql.NullTime.
func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

var _ Store = (*SQLStore)(nil)

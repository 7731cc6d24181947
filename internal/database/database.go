// Package database provides the SQL connection, schema migration and dialect
// plumbing shared by the credential and resource stores.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Dialect represents a SQL database dialect.
type Dialect string

const (
	// Postgres dialect, served by the pgx stdlib driver.
	Postgres Dialect = "postgres"
	// MySQL dialect.
	MySQL Dialect = "mysql"
	// SQLite dialect, used for development and tests.
	SQLite Dialect = "sqlite"
)

// ParseDialect converts a configuration string to a Dialect.
func ParseDialect(s string) (Dialect, error) {
	switch Dialect(s) {
	case Postgres, MySQL, SQLite:
		return Dialect(s), nil
	default:
		return "", fmt.Errorf("unsupported database dialect: %q", s)
	}
}

// Config holds database connection configuration.
type Config struct {
	// Dialect specifies the database type.
	Dialect Dialect

	// DB is an existing database connection. If provided, DSN is ignored.
	DB *sql.DB

	// DSN is the data source name for connecting to the database.
	DSN string

	// MaxOpenConns sets the maximum number of open connections.
	MaxOpenConns int

	// MaxIdleConns sets the maximum number of idle connections.
	MaxIdleConns int

	// ConnMaxLifetime sets the maximum lifetime of a connection.
	ConnMaxLifetime time.Duration
}

// DB wraps a sql.DB together with its dialect.
type DB struct {
	*sql.DB
	dialect Dialect
}

// Open connects to the database described by cfg.
func Open(cfg *Config) (*DB, error) {
	db := cfg.DB
	if db == nil {
		var err error
		db, err = sql.Open(driverName(cfg.Dialect), cfg.DSN)
		if err != nil {
			return nil, err
		}

		if cfg.MaxOpenConns > 0 {
			db.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if cfg.MaxIdleConns > 0 {
			db.SetMaxIdleConns(cfg.MaxIdleConns)
		}
		if cfg.ConnMaxLifetime > 0 {
			db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		}
	}

	if cfg.Dialect == SQLite {
		// SQLite enforces foreign keys per connection; pin the pool to a
		// single connection so the pragma holds for every statement.
		db.SetMaxOpenConns(1)
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return nil, err
		}
	}

	return &DB{DB: db, dialect: cfg.Dialect}, nil
}

// Dialect returns the dialect this connection was opened with.
func (d *DB) Dialect() Dialect {
	return d.dialect
}

// Ping verifies the database connection is alive.
func (d *DB) Ping(ctx context.Context) error {
	return d.PingContext(ctx)
}

// Migrate creates the database schema.
func (d *DB) Migrate(ctx context.Context) error {
	statements := strings.Split(schemaFor(d.dialect), ";")
	for _, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := d.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Rebind converts $N placeholders to the dialect's placeholder style.
// Queries are written in postgres style; SQLite accepts $N natively.
func (d *DB) Rebind(query string) string {
	if d.dialect != MySQL {
		return query
	}

	var b strings.Builder
	b.Grow(len(query))
	for i := 0; i < len(query); i++ {
		if query[i] == '$' && i+1 < len(query) && query[i+1] >= '0' && query[i+1] <= '9' {
			b.WriteByte('?')
			for i+1 < len(query) && query[i+1] >= '0' && query[i+1] <= '9' {
				i++
			}
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// driverName returns the registered driver name for the dialect.
func driverName(d Dialect) string {
	switch d {
	case MySQL:
		return "mysql"
	case SQLite:
		return "sqlite3"
	default:
		return "pgx"
	}
}

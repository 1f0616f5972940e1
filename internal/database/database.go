package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var errClosed = errors.New("database connection is closed")

// Database is a connection to a SQLite asset catalog
type Database struct {
	db   *sql.DB
	path string
}

// DatabaseOptions configures how a catalog file is opened
type DatabaseOptions struct {
	// Path to the SQLite database file
	Path string

	// ReadOnly opens an existing catalog without write access. The file
	// must already exist.
	ReadOnly bool

	// WALMode enables Write-Ahead Logging
	WALMode bool

	// BusyTimeout sets the timeout for locked database operations
	BusyTimeout time.Duration
}

// DefaultDatabaseOptions returns the options extract uses to build a catalog
func DefaultDatabaseOptions(path string) *DatabaseOptions {
	return &DatabaseOptions{
		Path:        path,
		WALMode:     true,
		BusyTimeout: 30 * time.Second,
	}
}

// ReadOnlyDatabaseOptions returns options for inspecting an existing catalog
func ReadOnlyDatabaseOptions(path string) *DatabaseOptions {
	return &DatabaseOptions{
		Path:        path,
		ReadOnly:    true,
		BusyTimeout: 5 * time.Second,
	}
}

// NewDatabase opens the catalog at options.Path, creating the file and its
// directory unless ReadOnly is set
func NewDatabase(options *DatabaseOptions) (*Database, error) {
	if options == nil {
		return nil, fmt.Errorf("database options cannot be nil")
	}
	if options.Path == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}

	if options.ReadOnly {
		if _, err := os.Stat(options.Path); err != nil {
			return nil, fmt.Errorf("opening catalog %s: %w", options.Path, err)
		}
	} else if dir := filepath.Dir(options.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dsn(options))
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", options.Path, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("testing database connection: %w", err)
	}

	return &Database{db: db, path: options.Path}, nil
}

// dsn builds a go-sqlite3 file URI carrying the connection pragmas
func dsn(options *DatabaseOptions) string {
	q := url.Values{}
	if options.ReadOnly {
		q.Set("mode", "ro")
	} else {
		q.Set("_synchronous", "NORMAL")
	}
	if options.WALMode && !options.ReadOnly {
		q.Set("_journal_mode", "WAL")
	}
	if options.BusyTimeout > 0 {
		q.Set("_busy_timeout", strconv.FormatInt(options.BusyTimeout.Milliseconds(), 10))
	}
	q.Set("_foreign_keys", "on")

	return "file:" + options.Path + "?" + q.Encode()
}

// Close closes the database connection
func (d *Database) Close() error {
	if d.db == nil {
		return nil
	}

	err := d.db.Close()
	d.db = nil
	if err != nil {
		return fmt.Errorf("closing database connection: %w", err)
	}
	return nil
}

// Path returns the catalog file path
func (d *Database) Path() string {
	return d.path
}

// BeginTx starts a new transaction with the given options
func (d *Database) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	if d.db == nil {
		return nil, errClosed
	}

	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	return tx, nil
}

// Query executes a SQL query that returns rows
func (d *Database) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	if d.db == nil {
		return nil, errClosed
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	return rows, nil
}

// QueryRow executes a SQL query that is expected to return at most one row
func (d *Database) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return d.db.QueryRowContext(ctx, query, args...)
}

// ListTables returns the catalog's user tables in name order. SQLite's own
// tables and underscore-prefixed bookkeeping tables are left out.
func (d *Database) ListTables(ctx context.Context) ([]string, error) {
	rows, err := d.Query(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' AND substr(name, 1, 1) <> '_' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating table names: %w", err)
	}
	return names, nil
}

// HasUserTables reports whether the catalog already holds any user table
func (d *Database) HasUserTables(ctx context.Context) (bool, error) {
	names, err := d.ListTables(ctx)
	if err != nil {
		return false, err
	}
	return len(names) > 0, nil
}

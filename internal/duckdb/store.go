// Package duckdb records validation runs in DuckDB. A stored verdict is
// reused for a file whose fingerprint (path, size, modification time) and
// validation options are unchanged. The table is append-only, so it also
// serves as run history.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection holding validation runs.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create cache directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the database file path ("" for in-memory).
func (s *Store) Path() string {
	return s.path
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS validation_runs (
		path VARCHAR,
		size BIGINT,
		mod_time BIGINT,
		options VARCHAR,
		valid BOOLEAN,
		kind VARCHAR,
		rule VARCHAR,
		line BIGINT,
		value VARCHAR,
		message VARCHAR,
		lines BIGINT,
		meta_lines BIGINT,
		data_lines BIGINT,
		samples BIGINT,
		elapsed_ms DOUBLE,
		checked_at TIMESTAMP
	)`)
	return err
}

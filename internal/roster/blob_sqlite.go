package roster

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS slots (
	key TEXT PRIMARY KEY,
	value BLOB NOT NULL,
	updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
)`

// SQLiteBlobStore keeps slots as rows of a single table
type SQLiteBlobStore struct {
	db   *sql.DB
	path string
}

// OpenSQLiteBlobStore opens (or creates) the database file at path
func OpenSQLiteBlobStore(path string) (*SQLiteBlobStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite store: %w", err)
	}
	// One writer; the slot is rewritten whole on every mutation.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure sqlite store: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create slots table: %w", err)
	}
	return &SQLiteBlobStore{db: db, path: path}, nil
}

// Path returns the database file
func (s *SQLiteBlobStore) Path() string {
	return s.path
}

// Get reads a slot
func (s *SQLiteBlobStore) Get(key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow("SELECT value FROM slots WHERE key = ?", key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return data, nil
}

// Put overwrites a slot
func (s *SQLiteBlobStore) Put(key string, data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO slots (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value,
		 updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')`,
		key, data,
	)
	if err != nil {
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	return nil
}

// Close releases the database handle
func (s *SQLiteBlobStore) Close() error {
	return s.db.Close()
}

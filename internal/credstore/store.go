// Package credstore is the durable key/value store for session credentials.
// A bearer token written here survives process restarts, which is what makes
// silent re-authentication at startup possible in token mode.
package credstore

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// TokenKey is the fixed key the session layer stores the bearer token under.
const TokenKey = "auth_token"

// Store wraps the SQLite credential database.
type Store struct {
	db *sql.DB
}

// Open creates or opens the credential database and runs migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get retrieves a value. The second return is false when the key is absent.
func (s *Store) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM credentials WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Put stores a value, replacing any previous one under the same key.
func (s *Store) Put(key, value string) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO credentials (key, value) VALUES (?, ?)`, key, value)
	return err
}

// Delete removes a key. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM credentials WHERE key = ?`, key)
	return err
}

func migrate(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS credentials (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("executing migration: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

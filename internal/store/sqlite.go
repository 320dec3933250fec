package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"avplanner/internal/logging"
)

// SQLiteStore keeps every collection document in a single table. It trades
// the file backend's one-file-per-collection layout for a single database
// that survives partial writes.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path and runs
// migrations.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("database path required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// The document store is accessed from concurrent request handlers; a
	// single connection sidesteps SQLITE_BUSY on writes.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	logging.StoreDebug("sqlite store at %s", path)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	const schema = `
CREATE TABLE IF NOT EXISTS collections (
    name       TEXT PRIMARY KEY,
    doc        TEXT NOT NULL,
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Load reads a collection document. Unknown collections are empty.
func (s *SQLiteStore) Load(collection string) ([]byte, error) {
	var doc string
	err := s.db.QueryRow(`SELECT doc FROM collections WHERE name = ?`, collection).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(doc), nil
}

// Save upserts a collection document.
func (s *SQLiteStore) Save(collection string, doc []byte) error {
	_, err := s.db.Exec(`
INSERT INTO collections (name, doc, updated_at) VALUES (?, ?, datetime('now'))
ON CONFLICT(name) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`,
		collection, string(doc))
	return err
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Package state persists nowplayd's durable data in SQLite: the Last.fm
// session, user-supplied song corrections, and the local listening
// history.
package state

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName    = "nowplayd"
	dbFileName = "nowplayd.db"
)

// Manager owns the database handle. Safe for concurrent use; database/sql
// serializes access.
type Manager struct {
	db *sql.DB
}

// Open opens (creating if needed) the state database in the XDG data dir.
func Open() (*Manager, error) {
	dbPath, err := xdg.DataFile(filepath.Join(appName, dbFileName))
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}
	return openAt(dbPath)
}

// NewWithDB wraps an already-open database, initializing the schema.
// Used by tests that run against an in-memory database.
func NewWithDB(db *sql.DB) (*Manager, error) {
	if err := initSchema(db); err != nil {
		return nil, err
	}
	return &Manager{db: db}, nil
}

func openAt(path string) (*Manager, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Manager{db: db}, nil
}

// Close closes the database.
func (m *Manager) Close() error {
	return m.db.Close()
}

// DB exposes the raw handle for components that share the store.
func (m *Manager) DB() *sql.DB {
	return m.db
}

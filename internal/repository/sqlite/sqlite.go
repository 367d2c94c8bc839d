// Package sqlite provides the SQLite-backed implementation of
// repository.Store using the pure Go driver (no CGO), so the app remains a
// single self-contained binary on any device.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/hamrofarm/kukhura/internal/repository"
)

// Ensure Store implements repository.Store.
var _ repository.Store = (*Store)(nil)

// Store implements repository.Store on a local SQLite database.
type Store struct {
	db *sql.DB
}

// New opens (creating if needed) the database at dbPath and runs migrations.
// Pass ":memory:" for an ephemeral database in tests.
func New(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// The store is single-writer (one device, one app instance); one
	// connection avoids SQLITE_BUSY between overlapping requests.
	db.SetMaxOpenConns(1)

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// genID fills in a collision-resistant id when the caller left it empty.
// Device UIs may supply their own ids; rapid successive inserts (burst photo
// capture) rely on this being a UUID rather than a timestamp.
func genID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

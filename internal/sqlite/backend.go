// Package sqlite implements the SQLite storage backend. JSONL files in the
// data directory are the source of truth; SQLite is the query engine and is
// rebuilt from those files on every Attach.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/hobbyist/pkg/types"
)

// File names inside the data directory.
const (
	dbFile       = "hobbyist.db"
	hobbiesJSONL = "hobbies.jsonl"
	personsJSONL = "persons.jsonl"
)

// Compile-time contract assertions.
var (
	_ types.Backend     = (*Backend)(nil)
	_ types.HobbyTable  = (*hobbiesTable)(nil)
	_ types.PersonTable = (*personsTable)(nil)
)

// Backend implements types.Backend using SQLite as the query engine and
// JSONL files as the source of truth.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	dataDir  string
	db       *sql.DB
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach creates DataDir if needed, builds a fresh SQLite schema and loads
// the JSONL files into it. Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return storageError("creating data dir", err)
	}

	// The database is a cache of the JSONL files, so start from scratch.
	dbPath := filepath.Join(dataDir, dbFile)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return storageError("opening database", err)
	}
	if err := createSchema(db); err != nil {
		db.Close()
		return storageError("creating schema", err)
	}
	if err := initJSONLFiles(dataDir); err != nil {
		db.Close()
		return storageError("initializing JSONL files", err)
	}
	if err := loadAllJSONL(db, dataDir); err != nil {
		db.Close()
		return storageError("loading JSONL", err)
	}

	b.db = db
	b.dataDir = dataDir
	b.attached = true
	return nil
}

// Detach closes the SQLite connection. After Detach every table operation
// returns ErrBackendDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	b.attached = false
	if b.db != nil {
		err := b.db.Close()
		b.db = nil
		if err != nil {
			return storageError("closing database", err)
		}
	}
	return nil
}

// Hobbies returns the hobbies table.
func (b *Backend) Hobbies() (types.HobbyTable, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrBackendDetached
	}
	return &hobbiesTable{backend: b}, nil
}

// Persons returns the persons table.
func (b *Backend) Persons() (types.PersonTable, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrBackendDetached
	}
	return &personsTable{backend: b}, nil
}

// storageError wraps a driver or filesystem failure so callers can match
// it with errors.Is(err, types.ErrStorageUnavailable).
func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", types.ErrStorageUnavailable, op, err)
}

// initJSONLFiles creates empty JSONL files for collections that have none.
func initJSONLFiles(dataDir string) error {
	for _, name := range []string{hobbiesJSONL, personsJSONL} {
		path := filepath.Join(dataDir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return err
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			return err
		}
	}
	return nil
}

// Package surreal implements the storage backend on a SurrealDB server.
// Hobbies and persons live in the tables of the same name, keyed by record
// ids of the form hobbies:<hex>.
package surreal

import (
	"context"
	"fmt"
	"sync"

	surrealdb "github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/mesh-intelligence/hobbyist/pkg/types"
)

// Compile-time contract assertions.
var (
	_ types.Backend     = (*Backend)(nil)
	_ types.HobbyTable  = (*hobbiesTable)(nil)
	_ types.PersonTable = (*personsTable)(nil)
)

// Backend implements types.Backend over a SurrealDB connection.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	db       *surrealdb.DB
}

// NewBackend creates a detached SurrealDB backend.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach connects to config.SurrealDB.URL, signs in when a username is
// configured, and selects the namespace and database.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	sc := config.SurrealDB

	db, err := surrealdb.FromEndpointURLString(ctx, sc.URL)
	if err != nil {
		return storageError("connecting", err)
	}
	if sc.Username != "" {
		if _, err := db.SignIn(ctx, surrealdb.Auth{
			Username: sc.Username,
			Password: sc.Password,
		}); err != nil {
			_ = db.Close(ctx)
			return storageError("signing in", err)
		}
	}
	if err := db.Use(ctx, sc.Namespace, sc.Database); err != nil {
		_ = db.Close(ctx)
		return storageError("selecting namespace", err)
	}

	b.db = db
	b.attached = true
	return nil
}

// Detach closes the connection. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	b.attached = false
	db := b.db
	b.db = nil
	if err := db.Close(context.Background()); err != nil {
		return storageError("closing", err)
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

// conn returns the live connection or ErrBackendDetached.
func (b *Backend) conn() (*surrealdb.DB, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrBackendDetached
	}
	return b.db, nil
}

func storageError(op string, err error) error {
	return fmt.Errorf("%w: surrealdb %s: %w", types.ErrStorageUnavailable, op, err)
}

// query runs a single SurrealQL statement and returns its rows.
func query[T any](ctx context.Context, db *surrealdb.DB, op, sql string, vars map[string]any) ([]T, error) {
	res, err := surrealdb.Query[[]T](ctx, db, sql, vars)
	if err != nil {
		return nil, storageError(op, err)
	}
	if res == nil || len(*res) == 0 {
		return nil, nil
	}
	r := (*res)[0]
	if r.Status != "OK" {
		return nil, storageError(op, fmt.Errorf("query status %s", r.Status))
	}
	return r.Result, nil
}

// recordID maps an Identifier to its SurrealDB record id in table.
func recordID(table string, id types.Identifier) models.RecordID {
	return models.NewRecordID(table, id.String())
}

// identifierOf recovers the Identifier from a record id read back from the
// server.
func identifierOf(rid *models.RecordID) (types.Identifier, error) {
	if rid == nil {
		return types.NilIdentifier, fmt.Errorf("%w: record without id", types.ErrStorageUnavailable)
	}
	s, ok := rid.ID.(string)
	if !ok {
		return types.NilIdentifier, fmt.Errorf("%w: record id %v is not a string", types.ErrStorageUnavailable, rid.ID)
	}
	id, err := types.ParseIdentifier(s)
	if err != nil {
		return types.NilIdentifier, fmt.Errorf("%w: %w", types.ErrStorageUnavailable, err)
	}
	return id, nil
}

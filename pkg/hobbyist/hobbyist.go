// Package hobbyist is the public entry point for embedding the hobby and
// person stores. It picks a backend by name and attaches it, keeping the
// backend implementations internal.
package hobbyist

import (
	"fmt"

	"github.com/mesh-intelligence/hobbyist/internal/memory"
	"github.com/mesh-intelligence/hobbyist/internal/sqlite"
	"github.com/mesh-intelligence/hobbyist/internal/surreal"
	"github.com/mesh-intelligence/hobbyist/pkg/types"
)

// Version is the release version of the module.
const Version = "0.1.0"

// NewBackend returns an unattached backend for the named engine.
func NewBackend(name string) (types.Backend, error) {
	switch name {
	case types.BackendSQLite:
		return sqlite.NewBackend(), nil
	case types.BackendMemory:
		return memory.NewBackend(), nil
	case types.BackendSurrealDB:
		return surreal.NewBackend(), nil
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrBackendUnknown, name)
	}
}

// Open validates config, creates the selected backend and attaches it.
// The caller must Detach the returned backend.
//
//	b, err := hobbyist.Open(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".hobbyist-db",
//	})
//	defer b.Detach()
func Open(config types.Config) (types.Backend, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	b, err := NewBackend(config.Backend)
	if err != nil {
		return nil, err
	}
	if err := b.Attach(config); err != nil {
		return nil, err
	}
	return b, nil
}

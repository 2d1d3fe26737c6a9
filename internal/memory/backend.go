// Package memory provides an in-memory Backend used for tests and ephemeral
// runs. Records live only for the lifetime of the attached backend.
package memory

import (
	"sync"

	"github.com/mesh-intelligence/hobbyist/pkg/types"
)

// Compile-time contract assertions.
var (
	_ types.Backend     = (*Backend)(nil)
	_ types.HobbyTable  = (*hobbiesTable)(nil)
	_ types.PersonTable = (*personsTable)(nil)
)

// Backend implements types.Backend over two in-process collections.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	hobbies  *collection[types.Hobby]
	persons  *collection[types.Person]
}

// NewBackend creates a detached memory backend.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach initialises empty collections. The DataDir of config is ignored.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	b.hobbies = newCollection(func(h *types.Hobby) types.Identifier { return h.ID }, (*types.Hobby).Clone)
	b.persons = newCollection(func(p *types.Person) types.Identifier { return p.ID }, (*types.Person).Clone)
	b.attached = true
	return nil
}

// Detach drops all records. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.attached = false
	b.hobbies = nil
	b.persons = nil
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

// hobbiesCollection returns the live collection or ErrBackendDetached.
// The caller must hold b.mu.
func (b *Backend) hobbiesCollection() (*collection[types.Hobby], error) {
	if !b.attached {
		return nil, types.ErrBackendDetached
	}
	return b.hobbies, nil
}

func (b *Backend) personsCollection() (*collection[types.Person], error) {
	if !b.attached {
		return nil, types.ErrBackendDetached
	}
	return b.persons, nil
}

package types

import (
	"context"
	"errors"
)

// HobbyTable provides CRUD operations over Hobby records.
//
// A missing record is not an error: GetByID, Update and Delete return a nil
// record and a nil error when no hobby has the given id.
type HobbyTable interface {
	// Create assigns a fresh Identifier, persists the hobby and returns it.
	Create(ctx context.Context, name string) (*Hobby, error)

	// GetByID returns the hobby with the given id, or nil if absent.
	GetByID(ctx context.Context, id Identifier) (*Hobby, error)

	// List returns every hobby matching filter in storage order.
	List(ctx context.Context, filter HobbyFilter) ([]*Hobby, error)

	// Update applies the present fields of patch and returns the stored
	// record, or nil if the hobby does not exist.
	Update(ctx context.Context, id Identifier, patch HobbyPatch) (*Hobby, error)

	// Delete removes the hobby and returns the record as it was before
	// deletion, or nil if absent. Persons referencing it are not touched.
	Delete(ctx context.Context, id Identifier) (*Hobby, error)
}

// PersonTable provides CRUD operations over Person records. The hobbies
// list is stored as given and never checked against the hobbies table.
type PersonTable interface {
	Create(ctx context.Context, name string, hobbies []Identifier) (*Person, error)
	GetByID(ctx context.Context, id Identifier) (*Person, error)
	List(ctx context.Context, filter PersonFilter) ([]*Person, error)
	Update(ctx context.Context, id Identifier, patch PersonPatch) (*Person, error)
	Delete(ctx context.Context, id Identifier) (*Person, error)
}

// Standard errors.
var (
	// ErrInvalidIdentifier is returned when text cannot be parsed into an
	// Identifier. It is raised before any table is touched.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrStorageUnavailable wraps failures of the underlying storage engine.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrNotFound is used only by presentation layers that must turn a nil
	// record into a failure, such as the CLI exit code.
	ErrNotFound = errors.New("record not found")
)

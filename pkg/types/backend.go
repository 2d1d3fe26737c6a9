package types

import "errors"

// Collection names shared by every backend.
const (
	HobbiesCollection = "hobbies"
	PersonsCollection = "persons"
)

// Backend is the storage engine handle. Callers attach it to a
// configuration, obtain the two tables, and detach when done.
type Backend interface {
	// Attach connects the backend described by config.
	// Returns ErrAlreadyAttached if called while attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent.
	Detach() error

	// Hobbies returns the hobbies table, or ErrBackendDetached.
	Hobbies() (HobbyTable, error)

	// Persons returns the persons table, or ErrBackendDetached.
	Persons() (PersonTable, error)
}

// Backend lifecycle errors.
var (
	ErrBackendDetached = errors.New("backend is detached")
	ErrAlreadyAttached = errors.New("backend is already attached")
)

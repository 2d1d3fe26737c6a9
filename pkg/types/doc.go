// Package types defines the Backend and table interfaces, the Hobby and
// Person entities, their identifiers, filters and patches, and the standard
// errors shared by every storage backend.
package types

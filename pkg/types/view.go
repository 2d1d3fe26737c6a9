package types

import "encoding/json"

// HobbyRef is one entry of a Person's hobbies as seen by a caller. When
// Populated is false it stands for the bare identifier. When Populated is
// true, Hobby holds the resolved record, or nil if the reference dangles.
type HobbyRef struct {
	ID        Identifier
	Hobby     *Hobby
	Populated bool
}

// MarshalJSON encodes a raw reference as its identifier string, a resolved
// reference as the Hobby object, and a dangling reference as null.
func (r HobbyRef) MarshalJSON() ([]byte, error) {
	if !r.Populated {
		return json.Marshal(r.ID)
	}
	if r.Hobby == nil {
		return []byte("null"), nil
	}
	return json.Marshal(r.Hobby)
}

// RawRefs wraps ids as unpopulated references, preserving order.
func RawRefs(ids []Identifier) []HobbyRef {
	refs := make([]HobbyRef, len(ids))
	for i, id := range ids {
		refs[i] = HobbyRef{ID: id}
	}
	return refs
}

// PersonView is the per-request projection of a Person returned to callers.
// It is never persisted.
type PersonView struct {
	ID      Identifier `json:"_id"`
	Name    string     `json:"name"`
	Hobbies []HobbyRef `json:"hobbies"`
}

package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/rs/xid"
)

// IdentifierLen is the length of the canonical text encoding of an Identifier.
const IdentifierLen = 24

// Identifier is the primary key of every entity and the reference type used
// inside relation fields. It holds 12 opaque bytes and encodes as 24
// lowercase hexadecimal characters. The zero value means "no identifier".
type Identifier [12]byte

// NilIdentifier is the zero Identifier.
var NilIdentifier Identifier

// NewIdentifier returns a fresh Identifier. Identifiers generated by the same
// process sort in creation order.
func NewIdentifier() Identifier {
	return Identifier(xid.New())
}

// ParseIdentifier decodes the canonical text encoding of an Identifier.
// Returns an error wrapping ErrInvalidIdentifier if s is not exactly 24
// hexadecimal characters.
func ParseIdentifier(s string) (Identifier, error) {
	var id Identifier
	if len(s) != IdentifierLen {
		return id, fmt.Errorf("%w: %q", ErrInvalidIdentifier, s)
	}
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return NilIdentifier, fmt.Errorf("%w: %q", ErrInvalidIdentifier, s)
	}
	return id, nil
}

// MustParseIdentifier is like ParseIdentifier but panics on error.
// Intended for tests and constants.
func MustParseIdentifier(s string) Identifier {
	id, err := ParseIdentifier(s)
	if err != nil {
		panic(err)
	}
	return id
}

// ParseIdentifiers parses every element of ss, failing on the first
// malformed value. A nil slice parses to an empty, non-nil slice.
func ParseIdentifiers(ss []string) ([]Identifier, error) {
	ids := make([]Identifier, 0, len(ss))
	for _, s := range ss {
		id, err := ParseIdentifier(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// String returns the canonical 24-character hex encoding.
func (id Identifier) String() string {
	return hex.EncodeToString(id[:])
}

// IsZero reports whether id is the zero Identifier.
func (id Identifier) IsZero() bool {
	return id == NilIdentifier
}

// MarshalText implements encoding.TextMarshaler.
func (id Identifier) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *Identifier) UnmarshalText(text []byte) error {
	parsed, err := ParseIdentifier(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// MarshalJSON encodes the identifier as a JSON string.
func (id Identifier) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

// UnmarshalJSON decodes a JSON string into the identifier.
func (id *Identifier) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidIdentifier, data)
	}
	return id.UnmarshalText([]byte(s))
}

// IdentifierStrings returns the canonical encodings of ids, in order.
func IdentifierStrings(ids []Identifier) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

// CloneIdentifiers returns a copy of ids. A nil input yields an empty,
// non-nil slice so stored lists never read back as null.
func CloneIdentifiers(ids []Identifier) []Identifier {
	out := make([]Identifier, len(ids))
	copy(out, ids)
	return out
}

// EqualIdentifiers reports whether a and b hold the same identifiers in the
// same order. Nil and empty slices are equal.
func EqualIdentifiers(a, b []Identifier) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

package types

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIdentifier(t *testing.T) {
	a := NewIdentifier()
	b := NewIdentifier()

	assert.False(t, a.IsZero())
	assert.NotEqual(t, a, b)
	assert.Len(t, a.String(), IdentifierLen)
	assert.Equal(t, -1, bytes.Compare(a[:], b[:]), "later identifiers sort after earlier ones")
}

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "lowercase hex", input: "5f1b2c3d4e5f60718293a4b5", want: "5f1b2c3d4e5f60718293a4b5"},
		{name: "uppercase hex is accepted", input: "5F1B2C3D4E5F60718293A4B5", want: "5f1b2c3d4e5f60718293a4b5"},
		{name: "empty", input: "", wantErr: true},
		{name: "too short", input: "5f1b2c3d4e5f60718293a4b", wantErr: true},
		{name: "too long", input: "5f1b2c3d4e5f60718293a4b5c", wantErr: true},
		{name: "non hex characters", input: "zz1b2c3d4e5f60718293a4b5", wantErr: true},
		{name: "twelve raw bytes are not the text form", input: "abcdefghijkl", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseIdentifier(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidIdentifier)
				assert.True(t, id.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id.String())
		})
	}
}

func TestIdentifierRoundTrip(t *testing.T) {
	id := NewIdentifier()
	parsed, err := ParseIdentifier(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestIdentifierJSON(t *testing.T) {
	id := MustParseIdentifier("000000000000000000000001")

	data, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, `"000000000000000000000001"`, string(data))

	var got Identifier
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, id, got)

	err = json.Unmarshal([]byte(`"nope"`), &got)
	assert.ErrorIs(t, err, ErrInvalidIdentifier)

	err = json.Unmarshal([]byte(`42`), &got)
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
}

func TestIdentifierAsMapKey(t *testing.T) {
	id := NewIdentifier()
	m := map[Identifier]string{id: "x"}

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), id.String()))
}

func TestParseIdentifiers(t *testing.T) {
	t.Run("preserves order and duplicates", func(t *testing.T) {
		in := []string{"000000000000000000000002", "000000000000000000000001", "000000000000000000000002"}
		ids, err := ParseIdentifiers(in)
		require.NoError(t, err)
		assert.Equal(t, in, IdentifierStrings(ids))
	})

	t.Run("nil yields empty", func(t *testing.T) {
		ids, err := ParseIdentifiers(nil)
		require.NoError(t, err)
		assert.NotNil(t, ids)
		assert.Empty(t, ids)
	})

	t.Run("fails on first malformed value", func(t *testing.T) {
		_, err := ParseIdentifiers([]string{"000000000000000000000001", "bad"})
		assert.ErrorIs(t, err, ErrInvalidIdentifier)
	})
}

func TestEqualIdentifiers(t *testing.T) {
	a := MustParseIdentifier("000000000000000000000001")
	b := MustParseIdentifier("000000000000000000000002")

	assert.True(t, EqualIdentifiers(nil, []Identifier{}))
	assert.True(t, EqualIdentifiers([]Identifier{a, b}, []Identifier{a, b}))
	assert.False(t, EqualIdentifiers([]Identifier{a, b}, []Identifier{b, a}))
	assert.False(t, EqualIdentifiers([]Identifier{a}, []Identifier{a, a}))
}

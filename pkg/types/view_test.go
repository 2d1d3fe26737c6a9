package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHobbyRefJSON(t *testing.T) {
	h1 := MustParseIdentifier("000000000000000000000001")
	h2 := MustParseIdentifier("000000000000000000000002")

	view := PersonView{
		ID:   MustParseIdentifier("0000000000000000000000aa"),
		Name: "Ann",
		Hobbies: []HobbyRef{
			{ID: h1},
			{ID: h1, Populated: true, Hobby: &Hobby{ID: h1, Name: "reading"}},
			{ID: h2, Populated: true},
		},
	}

	data, err := json.Marshal(view)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"_id": "0000000000000000000000aa",
		"name": "Ann",
		"hobbies": [
			"000000000000000000000001",
			{"_id": "000000000000000000000001", "name": "reading"},
			null
		]
	}`, string(data))
}

func TestRawRefs(t *testing.T) {
	ids := []Identifier{NewIdentifier(), NewIdentifier()}
	refs := RawRefs(ids)
	require.Len(t, refs, 2)
	for i, r := range refs {
		assert.Equal(t, ids[i], r.ID)
		assert.False(t, r.Populated)
		assert.Nil(t, r.Hobby)
	}
}

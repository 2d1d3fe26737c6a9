package surreal

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/mesh-intelligence/hobbyist/internal/backendtest"
	"github.com/mesh-intelligence/hobbyist/pkg/types"
)

// liveConfig returns a config pointing at SURREALDB_URL with a fresh
// database, or skips the test when no server is configured.
func liveConfig(t *testing.T) types.Config {
	t.Helper()
	url := os.Getenv("SURREALDB_URL")
	if url == "" {
		t.Skip("SURREALDB_URL not set")
	}
	user := os.Getenv("SURREALDB_USER")
	if user == "" {
		user = "root"
	}
	pass := os.Getenv("SURREALDB_PASS")
	if pass == "" {
		pass = "root"
	}
	return types.Config{
		Backend: types.BackendSurrealDB,
		SurrealDB: types.SurrealConfig{
			URL:       url,
			Namespace: "hobbyist_test",
			Database:  "t" + types.NewIdentifier().String(),
			Username:  user,
			Password:  pass,
		},
	}
}

func TestContract(t *testing.T) {
	backendtest.Run(t, func(t *testing.T) types.Backend {
		b := NewBackend()
		require.NoError(t, b.Attach(liveConfig(t)))
		return b
	})
}

func TestBackend_AttachRequiresURL(t *testing.T) {
	b := NewBackend()
	err := b.Attach(types.Config{Backend: types.BackendSurrealDB})
	assert.ErrorIs(t, err, types.ErrSurrealURLMissing)
}

func TestBackend_DetachedTables(t *testing.T) {
	b := NewBackend()
	require.NoError(t, b.Detach())

	_, err := b.Hobbies()
	assert.ErrorIs(t, err, types.ErrBackendDetached)
	_, err = b.Persons()
	assert.ErrorIs(t, err, types.ErrBackendDetached)
}

func TestIdentifierOf(t *testing.T) {
	id := types.NewIdentifier()
	rid := recordID(types.HobbiesCollection, id)
	assert.Equal(t, types.HobbiesCollection, rid.Table)

	got, err := identifierOf(&rid)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	tests := []struct {
		name string
		rid  *models.RecordID
	}{
		{name: "nil", rid: nil},
		{name: "numeric id", rid: &models.RecordID{Table: "hobbies", ID: 42}},
		{name: "bad hex", rid: &models.RecordID{Table: "hobbies", ID: "nothex"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := identifierOf(tt.rid)
			assert.ErrorIs(t, err, types.ErrStorageUnavailable)
		})
	}
}

func TestRecordConversion(t *testing.T) {
	h1 := types.NewIdentifier()
	pid := types.NewIdentifier()
	rid := recordID(types.PersonsCollection, pid)

	p, err := personRecord{ID: &rid, Name: "Ann", Hobbies: []string{h1.String(), h1.String()}}.toPerson()
	require.NoError(t, err)
	assert.Equal(t, &types.Person{ID: pid, Name: "Ann", Hobbies: []types.Identifier{h1, h1}}, p)

	empty, err := personRecord{ID: &rid, Name: "Bob"}.toPerson()
	require.NoError(t, err)
	assert.NotNil(t, empty.Hobbies)
	assert.Empty(t, empty.Hobbies)

	_, err = personRecord{ID: &rid, Hobbies: []string{"bad"}}.toPerson()
	assert.ErrorIs(t, err, types.ErrInvalidIdentifier)
}

func TestSelectStatement(t *testing.T) {
	assert.Equal(t, "SELECT * FROM type::table($tb) ORDER BY id", selectStatement(nil))
	assert.Equal(t,
		"SELECT * FROM type::table($tb) WHERE id = $id AND name = $name ORDER BY id",
		selectStatement([]string{"id = $id", "name = $name"}))
}

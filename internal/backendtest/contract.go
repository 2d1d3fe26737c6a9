// Package backendtest holds the behavioural contract every types.Backend
// must satisfy. Backend packages call Run from their own tests.
package backendtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/hobbyist/pkg/types"
)

// Factory returns an attached backend. Run detaches it when each subtest ends.
type Factory func(t *testing.T) types.Backend

// Run exercises the hobby and person table contracts against backends
// produced by newBackend.
func Run(t *testing.T, newBackend Factory) {
	t.Helper()

	tests := []struct {
		name  string
		check func(t *testing.T, b types.Backend)
	}{
		{name: "hobby create then get round-trips", check: hobbyRoundTrip},
		{name: "hobby empty name is allowed", check: hobbyEmptyName},
		{name: "hobby get missing returns nil", check: hobbyGetMissing},
		{name: "hobby partial update", check: hobbyPartialUpdate},
		{name: "hobby update missing is a no-op", check: hobbyUpdateMissing},
		{name: "hobby delete then get", check: hobbyDeleteThenGet},
		{name: "hobby list filter exactness", check: hobbyListFilter},
		{name: "hobby list keeps insertion order", check: hobbyListOrder},
		{name: "person preserves hobbies order and duplicates", check: personOrderPreserved},
		{name: "person nil hobbies read back empty", check: personNilHobbies},
		{name: "person partial update", check: personPartialUpdate},
		{name: "person update missing is a no-op", check: personUpdateMissing},
		{name: "person delete then get", check: personDeleteThenGet},
		{name: "person list filter", check: personListFilter},
		{name: "hobby delete leaves dangling reference", check: danglingReference},
		{name: "returned records are copies", check: recordsAreCopies},
		{name: "tables fail after detach", check: detached},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBackend(t)
			t.Cleanup(func() { _ = b.Detach() })
			tt.check(t, b)
		})
	}
}

func tables(t *testing.T, b types.Backend) (types.HobbyTable, types.PersonTable) {
	t.Helper()
	hobbies, err := b.Hobbies()
	require.NoError(t, err)
	persons, err := b.Persons()
	require.NoError(t, err)
	return hobbies, persons
}

func strPtr(s string) *string { return &s }

func idsPtr(ids ...types.Identifier) *[]types.Identifier { return &ids }

func hobbyRoundTrip(t *testing.T, b types.Backend) {
	ctx := context.Background()
	hobbies, _ := tables(t, b)

	created, err := hobbies.Create(ctx, "chess")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.False(t, created.ID.IsZero())
	assert.Equal(t, "chess", created.Name)

	got, err := hobbies.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func hobbyEmptyName(t *testing.T, b types.Backend) {
	ctx := context.Background()
	hobbies, _ := tables(t, b)

	created, err := hobbies.Create(ctx, "")
	require.NoError(t, err)

	got, err := hobbies.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "", got.Name)
}

func hobbyGetMissing(t *testing.T, b types.Backend) {
	hobbies, _ := tables(t, b)

	got, err := hobbies.GetByID(context.Background(), types.NewIdentifier())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func hobbyPartialUpdate(t *testing.T, b types.Backend) {
	ctx := context.Background()
	hobbies, _ := tables(t, b)

	created, err := hobbies.Create(ctx, "chess")
	require.NoError(t, err)

	unchanged, err := hobbies.Update(ctx, created.ID, types.HobbyPatch{})
	require.NoError(t, err)
	assert.Equal(t, created, unchanged)

	renamed, err := hobbies.Update(ctx, created.ID, types.HobbyPatch{Name: strPtr("x")})
	require.NoError(t, err)
	assert.Equal(t, &types.Hobby{ID: created.ID, Name: "x"}, renamed)

	got, err := hobbies.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, renamed, got)
}

func hobbyUpdateMissing(t *testing.T, b types.Backend) {
	ctx := context.Background()
	hobbies, _ := tables(t, b)
	id := types.NewIdentifier()

	got, err := hobbies.Update(ctx, id, types.HobbyPatch{Name: strPtr("x")})
	require.NoError(t, err)
	assert.Nil(t, got)

	after, err := hobbies.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, after, "update must not create the record")
}

func hobbyDeleteThenGet(t *testing.T, b types.Backend) {
	ctx := context.Background()
	hobbies, _ := tables(t, b)

	created, err := hobbies.Create(ctx, "chess")
	require.NoError(t, err)

	deleted, err := hobbies.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, deleted)

	got, err := hobbies.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	again, err := hobbies.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, again)
}

func hobbyListFilter(t *testing.T, b types.Backend) {
	ctx := context.Background()
	hobbies, _ := tables(t, b)

	c1, err := hobbies.Create(ctx, "chess")
	require.NoError(t, err)
	_, err = hobbies.Create(ctx, "go")
	require.NoError(t, err)
	c2, err := hobbies.Create(ctx, "chess")
	require.NoError(t, err)
	_, err = hobbies.Create(ctx, "Chess")
	require.NoError(t, err)

	got, err := hobbies.List(ctx, types.HobbyFilter{Name: strPtr("chess")})
	require.NoError(t, err)
	assert.Equal(t, []*types.Hobby{c1, c2}, got)

	byID, err := hobbies.List(ctx, types.HobbyFilter{ID: &c2.ID})
	require.NoError(t, err)
	assert.Equal(t, []*types.Hobby{c2}, byID)

	none, err := hobbies.List(ctx, types.HobbyFilter{Name: strPtr("knitting")})
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := hobbies.List(ctx, types.HobbyFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func hobbyListOrder(t *testing.T, b types.Backend) {
	ctx := context.Background()
	hobbies, _ := tables(t, b)

	var want []*types.Hobby
	for _, name := range []string{"c", "a", "b"} {
		h, err := hobbies.Create(ctx, name)
		require.NoError(t, err)
		want = append(want, h)
	}
	// Updating must not move a record.
	_, err := hobbies.Update(ctx, want[0].ID, types.HobbyPatch{Name: strPtr("z")})
	require.NoError(t, err)
	want[0].Name = "z"

	got, err := hobbies.List(ctx, types.HobbyFilter{})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func personOrderPreserved(t *testing.T, b types.Backend) {
	ctx := context.Background()
	_, persons := tables(t, b)
	hA := types.MustParseIdentifier("00000000000000000000000a")
	hB := types.MustParseIdentifier("00000000000000000000000b")

	created, err := persons.Create(ctx, "Ann", []types.Identifier{hB, hA, hB})
	require.NoError(t, err)
	assert.Equal(t, []types.Identifier{hB, hA, hB}, created.Hobbies)

	got, err := persons.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []types.Identifier{hB, hA, hB}, got.Hobbies)
}

func personNilHobbies(t *testing.T, b types.Backend) {
	ctx := context.Background()
	_, persons := tables(t, b)

	created, err := persons.Create(ctx, "Bob", nil)
	require.NoError(t, err)

	got, err := persons.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.NotNil(t, got.Hobbies)
	assert.Empty(t, got.Hobbies)
}

func personPartialUpdate(t *testing.T, b types.Backend) {
	ctx := context.Background()
	_, persons := tables(t, b)
	h1 := types.NewIdentifier()
	h2 := types.NewIdentifier()

	created, err := persons.Create(ctx, "Ann", []types.Identifier{h1})
	require.NoError(t, err)

	unchanged, err := persons.Update(ctx, created.ID, types.PersonPatch{})
	require.NoError(t, err)
	assert.Equal(t, created, unchanged)

	renamed, err := persons.Update(ctx, created.ID, types.PersonPatch{Name: strPtr("Anna")})
	require.NoError(t, err)
	assert.Equal(t, "Anna", renamed.Name)
	assert.Equal(t, []types.Identifier{h1}, renamed.Hobbies)

	rehobbied, err := persons.Update(ctx, created.ID, types.PersonPatch{Hobbies: idsPtr(h2, h1)})
	require.NoError(t, err)
	assert.Equal(t, "Anna", rehobbied.Name)
	assert.Equal(t, []types.Identifier{h2, h1}, rehobbied.Hobbies)

	cleared, err := persons.Update(ctx, created.ID, types.PersonPatch{Hobbies: idsPtr()})
	require.NoError(t, err)
	assert.Empty(t, cleared.Hobbies)

	got, err := persons.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, cleared, got)
}

func personUpdateMissing(t *testing.T, b types.Backend) {
	_, persons := tables(t, b)

	got, err := persons.Update(context.Background(), types.NewIdentifier(), types.PersonPatch{Name: strPtr("x")})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func personDeleteThenGet(t *testing.T, b types.Backend) {
	ctx := context.Background()
	_, persons := tables(t, b)

	created, err := persons.Create(ctx, "Ann", []types.Identifier{types.NewIdentifier()})
	require.NoError(t, err)

	deleted, err := persons.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, deleted)

	got, err := persons.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	again, err := persons.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, again)
}

func personListFilter(t *testing.T, b types.Backend) {
	ctx := context.Background()
	_, persons := tables(t, b)
	h1 := types.NewIdentifier()
	h2 := types.NewIdentifier()

	ann, err := persons.Create(ctx, "Ann", []types.Identifier{h1, h2})
	require.NoError(t, err)
	bob, err := persons.Create(ctx, "Bob", []types.Identifier{h2, h1})
	require.NoError(t, err)
	cat, err := persons.Create(ctx, "Ann", nil)
	require.NoError(t, err)

	byName, err := persons.List(ctx, types.PersonFilter{Name: strPtr("Ann")})
	require.NoError(t, err)
	assert.Equal(t, []*types.Person{ann, cat}, byName)

	bySeq, err := persons.List(ctx, types.PersonFilter{Hobbies: idsPtr(h2, h1)})
	require.NoError(t, err)
	assert.Equal(t, []*types.Person{bob}, bySeq)

	subset, err := persons.List(ctx, types.PersonFilter{Hobbies: idsPtr(h1)})
	require.NoError(t, err)
	assert.Empty(t, subset, "hobbies filter is exact, not contains")

	empty, err := persons.List(ctx, types.PersonFilter{Hobbies: idsPtr()})
	require.NoError(t, err)
	assert.Equal(t, []*types.Person{cat}, empty)

	both, err := persons.List(ctx, types.PersonFilter{Name: strPtr("Ann"), Hobbies: idsPtr(h1, h2)})
	require.NoError(t, err)
	assert.Equal(t, []*types.Person{ann}, both)

	all, err := persons.List(ctx, types.PersonFilter{})
	require.NoError(t, err)
	assert.Equal(t, []*types.Person{ann, bob, cat}, all)
}

func danglingReference(t *testing.T, b types.Backend) {
	ctx := context.Background()
	hobbies, persons := tables(t, b)

	h, err := hobbies.Create(ctx, "reading")
	require.NoError(t, err)
	p, err := persons.Create(ctx, "Ann", []types.Identifier{h.ID})
	require.NoError(t, err)

	_, err = hobbies.Delete(ctx, h.ID)
	require.NoError(t, err)

	got, err := persons.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []types.Identifier{h.ID}, got.Hobbies)
}

func recordsAreCopies(t *testing.T, b types.Backend) {
	ctx := context.Background()
	_, persons := tables(t, b)
	h1 := types.NewIdentifier()

	in := []types.Identifier{h1}
	p, err := persons.Create(ctx, "Ann", in)
	require.NoError(t, err)
	in[0] = types.NilIdentifier
	p.Hobbies[0] = types.NilIdentifier
	p.Name = "mutated"

	got, err := persons.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.Name)
	assert.Equal(t, []types.Identifier{h1}, got.Hobbies)
}

func detached(t *testing.T, b types.Backend) {
	hobbies, persons := tables(t, b)

	require.NoError(t, b.Detach())
	require.NoError(t, b.Detach(), "detach is idempotent")

	_, err := b.Hobbies()
	assert.ErrorIs(t, err, types.ErrBackendDetached)
	_, err = b.Persons()
	assert.ErrorIs(t, err, types.ErrBackendDetached)

	_, err = hobbies.Create(context.Background(), "chess")
	assert.ErrorIs(t, err, types.ErrBackendDetached)
	_, err = persons.List(context.Background(), types.PersonFilter{})
	assert.ErrorIs(t, err, types.ErrBackendDetached)
}

package surreal

import (
	"context"

	"github.com/mesh-intelligence/hobbyist/pkg/types"
)

type personsTable struct {
	backend *Backend
}

func (t *personsTable) Create(ctx context.Context, name string, hobbies []types.Identifier) (*types.Person, error) {
	db, err := t.backend.conn()
	if err != nil {
		return nil, err
	}
	p := &types.Person{ID: types.NewIdentifier(), Name: name, Hobbies: types.CloneIdentifiers(hobbies)}
	recs, err := query[personRecord](ctx, db, "creating person", "CREATE $id CONTENT $data", map[string]any{
		"id": recordID(types.PersonsCollection, p.ID),
		"data": map[string]any{
			"name":    p.Name,
			"hobbies": types.IdentifierStrings(p.Hobbies),
		},
	})
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return p, nil
	}
	return recs[0].toPerson()
}

func (t *personsTable) GetByID(ctx context.Context, id types.Identifier) (*types.Person, error) {
	db, err := t.backend.conn()
	if err != nil {
		return nil, err
	}
	recs, err := query[personRecord](ctx, db, "getting person", "SELECT * FROM $id", map[string]any{
		"id": recordID(types.PersonsCollection, id),
	})
	if err != nil || len(recs) == 0 {
		return nil, err
	}
	return recs[0].toPerson()
}

func (t *personsTable) List(ctx context.Context, filter types.PersonFilter) ([]*types.Person, error) {
	db, err := t.backend.conn()
	if err != nil {
		return nil, err
	}
	vars := map[string]any{"tb": types.PersonsCollection}
	var conds []string
	if filter.ID != nil {
		conds = append(conds, "id = $id")
		vars["id"] = recordID(types.PersonsCollection, *filter.ID)
	}
	if filter.Name != nil {
		conds = append(conds, "name = $name")
		vars["name"] = *filter.Name
	}
	recs, err := query[personRecord](ctx, db, "listing persons", selectStatement(conds), vars)
	if err != nil {
		return nil, err
	}
	persons, err := toPersons(recs)
	if err != nil {
		return nil, err
	}
	if filter.Hobbies == nil {
		return persons, nil
	}
	// The hobbies sequence is compared here rather than in SurrealQL.
	out := persons[:0]
	for _, p := range persons {
		if filter.Matches(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (t *personsTable) Update(ctx context.Context, id types.Identifier, patch types.PersonPatch) (*types.Person, error) {
	p, err := t.GetByID(ctx, id)
	if err != nil || p == nil || patch.IsEmpty() {
		return p, err
	}
	db, err := t.backend.conn()
	if err != nil {
		return nil, err
	}
	merge := map[string]any{}
	if patch.Name != nil {
		merge["name"] = *patch.Name
	}
	if patch.Hobbies != nil {
		merge["hobbies"] = types.IdentifierStrings(*patch.Hobbies)
	}
	recs, err := query[personRecord](ctx, db, "updating person", "UPDATE $id MERGE $patch RETURN AFTER", map[string]any{
		"id":    recordID(types.PersonsCollection, id),
		"patch": merge,
	})
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return recs[0].toPerson()
}

func (t *personsTable) Delete(ctx context.Context, id types.Identifier) (*types.Person, error) {
	db, err := t.backend.conn()
	if err != nil {
		return nil, err
	}
	recs, err := query[personRecord](ctx, db, "deleting person", "DELETE $id RETURN BEFORE", map[string]any{
		"id": recordID(types.PersonsCollection, id),
	})
	if err != nil || len(recs) == 0 {
		return nil, err
	}
	return recs[0].toPerson()
}

package surreal

import (
	"context"

	"github.com/mesh-intelligence/hobbyist/pkg/types"
)

type hobbiesTable struct {
	backend *Backend
}

func (t *hobbiesTable) Create(ctx context.Context, name string) (*types.Hobby, error) {
	db, err := t.backend.conn()
	if err != nil {
		return nil, err
	}
	id := types.NewIdentifier()
	recs, err := query[hobbyRecord](ctx, db, "creating hobby", "CREATE $id CONTENT $data", map[string]any{
		"id":   recordID(types.HobbiesCollection, id),
		"data": map[string]any{"name": name},
	})
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return &types.Hobby{ID: id, Name: name}, nil
	}
	return recs[0].toHobby()
}

func (t *hobbiesTable) GetByID(ctx context.Context, id types.Identifier) (*types.Hobby, error) {
	db, err := t.backend.conn()
	if err != nil {
		return nil, err
	}
	recs, err := query[hobbyRecord](ctx, db, "getting hobby", "SELECT * FROM $id", map[string]any{
		"id": recordID(types.HobbiesCollection, id),
	})
	if err != nil || len(recs) == 0 {
		return nil, err
	}
	return recs[0].toHobby()
}

func (t *hobbiesTable) List(ctx context.Context, filter types.HobbyFilter) ([]*types.Hobby, error) {
	db, err := t.backend.conn()
	if err != nil {
		return nil, err
	}
	vars := map[string]any{"tb": types.HobbiesCollection}
	var conds []string
	if filter.ID != nil {
		conds = append(conds, "id = $id")
		vars["id"] = recordID(types.HobbiesCollection, *filter.ID)
	}
	if filter.Name != nil {
		conds = append(conds, "name = $name")
		vars["name"] = *filter.Name
	}
	recs, err := query[hobbyRecord](ctx, db, "listing hobbies", selectStatement(conds), vars)
	if err != nil {
		return nil, err
	}
	hobbies, err := toHobbies(recs)
	if err != nil {
		return nil, err
	}
	if filter.IsEmpty() {
		return hobbies, nil
	}
	out := hobbies[:0]
	for _, h := range hobbies {
		if filter.Matches(h) {
			out = append(out, h)
		}
	}
	return out, nil
}

// Update reads the record first: UPDATE on a missing record id would
// create it on some server versions.
func (t *hobbiesTable) Update(ctx context.Context, id types.Identifier, patch types.HobbyPatch) (*types.Hobby, error) {
	h, err := t.GetByID(ctx, id)
	if err != nil || h == nil || patch.IsEmpty() {
		return h, err
	}
	db, err := t.backend.conn()
	if err != nil {
		return nil, err
	}
	recs, err := query[hobbyRecord](ctx, db, "updating hobby", "UPDATE $id MERGE $patch RETURN AFTER", map[string]any{
		"id":    recordID(types.HobbiesCollection, id),
		"patch": map[string]any{"name": *patch.Name},
	})
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return recs[0].toHobby()
}

func (t *hobbiesTable) Delete(ctx context.Context, id types.Identifier) (*types.Hobby, error) {
	db, err := t.backend.conn()
	if err != nil {
		return nil, err
	}
	recs, err := query[hobbyRecord](ctx, db, "deleting hobby", "DELETE $id RETURN BEFORE", map[string]any{
		"id": recordID(types.HobbiesCollection, id),
	})
	if err != nil || len(recs) == 0 {
		return nil, err
	}
	return recs[0].toHobby()
}

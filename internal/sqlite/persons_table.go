package sqlite

import (
	"context"
	"database/sql"

	"github.com/mesh-intelligence/hobbyist/pkg/types"
)

// personsTable implements types.PersonTable. The hobbies list is stored as
// given; nothing checks it against the hobbies table.
type personsTable struct {
	backend *Backend
}

func (t *personsTable) Create(ctx context.Context, name string, hobbies []types.Identifier) (*types.Person, error) {
	b := t.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil, types.ErrBackendDetached
	}

	p := &types.Person{
		ID:      types.NewIdentifier(),
		Name:    name,
		Hobbies: types.CloneIdentifiers(hobbies),
	}
	hobbiesCol, err := encodeHobbies(p.Hobbies)
	if err != nil {
		return nil, err
	}
	err = t.write(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO persons (person_id, name, hobbies) VALUES (?, ?, ?)",
			p.ID.String(), p.Name, hobbiesCol,
		); err != nil {
			return storageError("inserting person", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (t *personsTable) GetByID(ctx context.Context, id types.Identifier) (*types.Person, error) {
	b := t.backend
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrBackendDetached
	}

	p, err := getPerson(ctx, b.db, id)
	if err != nil {
		return nil, storageError("getting person", err)
	}
	return p, nil
}

func (t *personsTable) List(ctx context.Context, filter types.PersonFilter) ([]*types.Person, error) {
	b := t.backend
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrBackendDetached
	}

	persons, err := queryPersons(ctx, b.db, filter)
	if err != nil {
		return nil, storageError("listing persons", err)
	}
	return persons, nil
}

func (t *personsTable) Update(ctx context.Context, id types.Identifier, patch types.PersonPatch) (*types.Person, error) {
	b := t.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil, types.ErrBackendDetached
	}

	p, err := getPerson(ctx, b.db, id)
	if err != nil {
		return nil, storageError("getting person", err)
	}
	if p == nil || patch.IsEmpty() {
		return p, nil
	}

	patch.Apply(p)
	hobbiesCol, err := encodeHobbies(p.Hobbies)
	if err != nil {
		return nil, err
	}
	err = t.write(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"UPDATE persons SET name = ?, hobbies = ? WHERE person_id = ?",
			p.Name, hobbiesCol, p.ID.String(),
		); err != nil {
			return storageError("updating person", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (t *personsTable) Delete(ctx context.Context, id types.Identifier) (*types.Person, error) {
	b := t.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil, types.ErrBackendDetached
	}

	p, err := getPerson(ctx, b.db, id)
	if err != nil {
		return nil, storageError("getting person", err)
	}
	if p == nil {
		return nil, nil
	}

	err = t.write(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM persons WHERE person_id = ?", id.String()); err != nil {
			return storageError("deleting person", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// write applies change and rewrites persons.jsonl as one unit.
func (t *personsTable) write(ctx context.Context, change func(tx *sql.Tx) error) error {
	return writeThrough(ctx, t.backend, personsJSONL, change, func(ctx context.Context, q queryer) ([]*types.Person, error) {
		return queryPersons(ctx, q, types.PersonFilter{})
	})
}

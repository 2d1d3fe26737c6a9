package sqlite

import (
	"context"
	"database/sql"

	"github.com/mesh-intelligence/hobbyist/pkg/types"
)

// hobbiesTable implements types.HobbyTable. Every write rewrites
// hobbies.jsonl before its row change commits.
type hobbiesTable struct {
	backend *Backend
}

func (t *hobbiesTable) Create(ctx context.Context, name string) (*types.Hobby, error) {
	b := t.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil, types.ErrBackendDetached
	}

	h := &types.Hobby{ID: types.NewIdentifier(), Name: name}
	err := t.write(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO hobbies (hobby_id, name) VALUES (?, ?)",
			h.ID.String(), h.Name,
		); err != nil {
			return storageError("inserting hobby", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}

func (t *hobbiesTable) GetByID(ctx context.Context, id types.Identifier) (*types.Hobby, error) {
	b := t.backend
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrBackendDetached
	}

	h, err := getHobby(ctx, b.db, id)
	if err != nil {
		return nil, storageError("getting hobby", err)
	}
	return h, nil
}

func (t *hobbiesTable) List(ctx context.Context, filter types.HobbyFilter) ([]*types.Hobby, error) {
	b := t.backend
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrBackendDetached
	}

	hobbies, err := queryHobbies(ctx, b.db, filter)
	if err != nil {
		return nil, storageError("listing hobbies", err)
	}
	return hobbies, nil
}

func (t *hobbiesTable) Update(ctx context.Context, id types.Identifier, patch types.HobbyPatch) (*types.Hobby, error) {
	b := t.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil, types.ErrBackendDetached
	}

	h, err := getHobby(ctx, b.db, id)
	if err != nil {
		return nil, storageError("getting hobby", err)
	}
	if h == nil || patch.IsEmpty() {
		return h, nil
	}

	patch.Apply(h)
	err = t.write(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"UPDATE hobbies SET name = ? WHERE hobby_id = ?",
			h.Name, h.ID.String(),
		); err != nil {
			return storageError("updating hobby", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}

func (t *hobbiesTable) Delete(ctx context.Context, id types.Identifier) (*types.Hobby, error) {
	b := t.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil, types.ErrBackendDetached
	}

	h, err := getHobby(ctx, b.db, id)
	if err != nil {
		return nil, storageError("getting hobby", err)
	}
	if h == nil {
		return nil, nil
	}

	err = t.write(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM hobbies WHERE hobby_id = ?", id.String()); err != nil {
			return storageError("deleting hobby", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}

// write applies change and rewrites hobbies.jsonl as one unit.
func (t *hobbiesTable) write(ctx context.Context, change func(tx *sql.Tx) error) error {
	return writeThrough(ctx, t.backend, hobbiesJSONL, change, func(ctx context.Context, q queryer) ([]*types.Hobby, error) {
		return queryHobbies(ctx, q, types.HobbyFilter{})
	})
}

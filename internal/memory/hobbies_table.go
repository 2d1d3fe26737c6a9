package memory

import (
	"context"

	"github.com/mesh-intelligence/hobbyist/pkg/types"
)

// hobbiesTable implements types.HobbyTable over the memory backend.
type hobbiesTable struct {
	backend *Backend
}

func (t *hobbiesTable) Create(_ context.Context, name string) (*types.Hobby, error) {
	t.backend.mu.Lock()
	defer t.backend.mu.Unlock()

	c, err := t.backend.hobbiesCollection()
	if err != nil {
		return nil, err
	}
	h := &types.Hobby{ID: types.NewIdentifier(), Name: name}
	c.insert(h)
	return h, nil
}

func (t *hobbiesTable) GetByID(_ context.Context, id types.Identifier) (*types.Hobby, error) {
	t.backend.mu.RLock()
	defer t.backend.mu.RUnlock()

	c, err := t.backend.hobbiesCollection()
	if err != nil {
		return nil, err
	}
	return c.get(id), nil
}

func (t *hobbiesTable) List(_ context.Context, filter types.HobbyFilter) ([]*types.Hobby, error) {
	t.backend.mu.RLock()
	defer t.backend.mu.RUnlock()

	c, err := t.backend.hobbiesCollection()
	if err != nil {
		return nil, err
	}
	if filter.IsEmpty() {
		return c.scan(nil), nil
	}
	return c.scan(filter.Matches), nil
}

func (t *hobbiesTable) Update(_ context.Context, id types.Identifier, patch types.HobbyPatch) (*types.Hobby, error) {
	t.backend.mu.Lock()
	defer t.backend.mu.Unlock()

	c, err := t.backend.hobbiesCollection()
	if err != nil {
		return nil, err
	}
	h := c.get(id)
	if h == nil {
		return nil, nil
	}
	patch.Apply(h)
	c.replace(h)
	return h, nil
}

func (t *hobbiesTable) Delete(_ context.Context, id types.Identifier) (*types.Hobby, error) {
	t.backend.mu.Lock()
	defer t.backend.mu.Unlock()

	c, err := t.backend.hobbiesCollection()
	if err != nil {
		return nil, err
	}
	return c.remove(id), nil
}

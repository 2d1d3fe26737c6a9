package memory

import (
	"context"

	"github.com/mesh-intelligence/hobbyist/pkg/types"
)

// personsTable implements types.PersonTable over the memory backend.
type personsTable struct {
	backend *Backend
}

func (t *personsTable) Create(_ context.Context, name string, hobbies []types.Identifier) (*types.Person, error) {
	t.backend.mu.Lock()
	defer t.backend.mu.Unlock()

	c, err := t.backend.personsCollection()
	if err != nil {
		return nil, err
	}
	p := &types.Person{
		ID:      types.NewIdentifier(),
		Name:    name,
		Hobbies: types.CloneIdentifiers(hobbies),
	}
	c.insert(p)
	return p, nil
}

func (t *personsTable) GetByID(_ context.Context, id types.Identifier) (*types.Person, error) {
	t.backend.mu.RLock()
	defer t.backend.mu.RUnlock()

	c, err := t.backend.personsCollection()
	if err != nil {
		return nil, err
	}
	return c.get(id), nil
}

func (t *personsTable) List(_ context.Context, filter types.PersonFilter) ([]*types.Person, error) {
	t.backend.mu.RLock()
	defer t.backend.mu.RUnlock()

	c, err := t.backend.personsCollection()
	if err != nil {
		return nil, err
	}
	if filter.IsEmpty() {
		return c.scan(nil), nil
	}
	return c.scan(filter.Matches), nil
}

func (t *personsTable) Update(_ context.Context, id types.Identifier, patch types.PersonPatch) (*types.Person, error) {
	t.backend.mu.Lock()
	defer t.backend.mu.Unlock()

	c, err := t.backend.personsCollection()
	if err != nil {
		return nil, err
	}
	p := c.get(id)
	if p == nil {
		return nil, nil
	}
	patch.Apply(p)
	c.replace(p)
	return p, nil
}

func (t *personsTable) Delete(_ context.Context, id types.Identifier) (*types.Person, error) {
	t.backend.mu.Lock()
	defer t.backend.mu.Unlock()

	c, err := t.backend.personsCollection()
	if err != nil {
		return nil, err
	}
	return c.remove(id), nil
}

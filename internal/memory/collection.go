package memory

import "github.com/mesh-intelligence/hobbyist/pkg/types"

// collection keeps records keyed by Identifier and remembers insertion
// order so List returns records the way a document store scan would.
// Records are cloned on the way in and on the way out.
type collection[T any] struct {
	order   []types.Identifier
	records map[types.Identifier]*T
	keyOf   func(*T) types.Identifier
	clone   func(*T) *T
}

func newCollection[T any](keyOf func(*T) types.Identifier, clone func(*T) *T) *collection[T] {
	return &collection[T]{
		records: make(map[types.Identifier]*T),
		keyOf:   keyOf,
		clone:   clone,
	}
}

func (c *collection[T]) get(id types.Identifier) *T {
	rec, ok := c.records[id]
	if !ok {
		return nil
	}
	return c.clone(rec)
}

func (c *collection[T]) insert(rec *T) {
	id := c.keyOf(rec)
	if _, exists := c.records[id]; !exists {
		c.order = append(c.order, id)
	}
	c.records[id] = c.clone(rec)
}

// replace overwrites an existing record in place, keeping its position.
func (c *collection[T]) replace(rec *T) {
	c.records[c.keyOf(rec)] = c.clone(rec)
}

func (c *collection[T]) remove(id types.Identifier) *T {
	rec, ok := c.records[id]
	if !ok {
		return nil
	}
	delete(c.records, id)
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return rec
}

// scan returns copies of the records match accepts, in insertion order.
// A nil match accepts every record.
func (c *collection[T]) scan(match func(*T) bool) []*T {
	out := make([]*T, 0, len(c.order))
	for _, id := range c.order {
		rec := c.records[id]
		if match == nil || match(rec) {
			out = append(out, c.clone(rec))
		}
	}
	return out
}

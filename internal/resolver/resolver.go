// Package resolver expands a person's hobby reference list into hobby
// records. Lookups run concurrently; results keep the input order.
package resolver

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/mesh-intelligence/hobbyist/pkg/types"
)

// DefaultConcurrency bounds the number of in-flight hobby lookups.
const DefaultConcurrency = 8

// HobbyGetter is the subset of types.HobbyTable the resolver needs.
type HobbyGetter interface {
	GetByID(ctx context.Context, id types.Identifier) (*types.Hobby, error)
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithConcurrency sets the maximum number of concurrent lookups.
// Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(r *Resolver) {
		if n >= 1 {
			r.concurrency = n
		}
	}
}

// Resolver holds no per-call state and is safe for concurrent use.
type Resolver struct {
	hobbies     HobbyGetter
	concurrency int
}

// New returns a Resolver reading hobbies from the given store.
func New(hobbies HobbyGetter, opts ...Option) *Resolver {
	r := &Resolver{hobbies: hobbies, concurrency: DefaultConcurrency}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns one HobbyRef per entry of person.Hobbies, in order.
//
// With populate false the refs carry the raw identifiers. With populate true
// each identifier is looked up; a missing hobby yields a populated ref with
// a nil Hobby. Any lookup error fails the whole call.
func (r *Resolver) Resolve(ctx context.Context, person *types.Person, populate bool) ([]types.HobbyRef, error) {
	if person == nil {
		return []types.HobbyRef{}, nil
	}
	if !populate {
		return types.RawRefs(person.Hobbies), nil
	}

	refs := make([]types.HobbyRef, len(person.Hobbies))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, id := range person.Hobbies {
		g.Go(func() error {
			h, err := r.hobbies.GetByID(gctx, id)
			if err != nil {
				return fmt.Errorf("resolving hobby %s: %w", id, err)
			}
			refs[i] = types.HobbyRef{ID: id, Hobby: h, Populated: true}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return refs, nil
}

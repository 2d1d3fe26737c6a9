// Package api is the operation surface over the hobby and person stores.
// It parses identifiers, forwards to the stores, and resolves the
// Person.hobbies field on request.
package api

import (
	"context"

	"github.com/mesh-intelligence/hobbyist/internal/resolver"
	"github.com/mesh-intelligence/hobbyist/pkg/types"
)

// Service implements the query and mutation operations. A nil record with a
// nil error means the addressed entity does not exist.
type Service struct {
	hobbies  types.HobbyTable
	persons  types.PersonTable
	resolver *resolver.Resolver
}

// NewService wires the stores and the resolver. A nil resolver defaults to
// one reading from hobbies.
func NewService(hobbies types.HobbyTable, persons types.PersonTable, r *resolver.Resolver) *Service {
	if r == nil {
		r = resolver.New(hobbies)
	}
	return &Service{hobbies: hobbies, persons: persons, resolver: r}
}

// FromBackend builds a Service over an attached backend.
func FromBackend(b types.Backend, opts ...resolver.Option) (*Service, error) {
	hobbies, err := b.Hobbies()
	if err != nil {
		return nil, err
	}
	persons, err := b.Persons()
	if err != nil {
		return nil, err
	}
	return NewService(hobbies, persons, resolver.New(hobbies, opts...)), nil
}

// Hobby returns the hobby with the given id.
func (s *Service) Hobby(ctx context.Context, id string) (*types.Hobby, error) {
	hid, err := types.ParseIdentifier(id)
	if err != nil {
		return nil, err
	}
	return s.hobbies.GetByID(ctx, hid)
}

// Hobbies lists hobbies matching filter. A nil filter selects all.
func (s *Service) Hobbies(ctx context.Context, filter *HobbyFilterInput) ([]*types.Hobby, error) {
	f, err := filter.toFilter()
	if err != nil {
		return nil, err
	}
	return s.hobbies.List(ctx, f)
}

func (s *Service) CreateHobby(ctx context.Context, in CreateHobbyInput) (*types.Hobby, error) {
	return s.hobbies.Create(ctx, in.Name)
}

func (s *Service) UpdateHobby(ctx context.Context, in UpdateHobbyInput) (*types.Hobby, error) {
	hid, err := types.ParseIdentifier(in.ID)
	if err != nil {
		return nil, err
	}
	return s.hobbies.Update(ctx, hid, types.HobbyPatch{Name: in.Name})
}

func (s *Service) DeleteHobby(ctx context.Context, id string) (*types.Hobby, error) {
	hid, err := types.ParseIdentifier(id)
	if err != nil {
		return nil, err
	}
	return s.hobbies.Delete(ctx, hid)
}

// Person returns the person with the given id. Its hobbies are raw; use
// PersonHobbies or View to resolve them.
func (s *Service) Person(ctx context.Context, id string) (*types.Person, error) {
	pid, err := types.ParseIdentifier(id)
	if err != nil {
		return nil, err
	}
	return s.persons.GetByID(ctx, pid)
}

func (s *Service) Persons(ctx context.Context, filter *PersonFilterInput) ([]*types.Person, error) {
	f, err := filter.toFilter()
	if err != nil {
		return nil, err
	}
	return s.persons.List(ctx, f)
}

// CreatePerson stores the hobbies list verbatim. The ids are parsed but not
// checked against the hobbies store.
func (s *Service) CreatePerson(ctx context.Context, in CreatePersonInput) (*types.Person, error) {
	hobbies, err := types.ParseIdentifiers(in.Hobbies)
	if err != nil {
		return nil, err
	}
	return s.persons.Create(ctx, in.Name, hobbies)
}

func (s *Service) UpdatePerson(ctx context.Context, in UpdatePersonInput) (*types.Person, error) {
	pid, err := types.ParseIdentifier(in.ID)
	if err != nil {
		return nil, err
	}
	patch, err := in.toPatch()
	if err != nil {
		return nil, err
	}
	return s.persons.Update(ctx, pid, patch)
}

func (s *Service) DeletePerson(ctx context.Context, id string) (*types.Person, error) {
	pid, err := types.ParseIdentifier(id)
	if err != nil {
		return nil, err
	}
	return s.persons.Delete(ctx, pid)
}

// PersonHobbies is the Person.hobbies field: raw ids, or resolved hobbies
// with nil entries for dangling references when populate is set.
func (s *Service) PersonHobbies(ctx context.Context, person *types.Person, populate bool) ([]types.HobbyRef, error) {
	return s.resolver.Resolve(ctx, person, populate)
}

// View projects person with its hobbies field resolved per populate.
// A nil person yields a nil view.
func (s *Service) View(ctx context.Context, person *types.Person, populate bool) (*types.PersonView, error) {
	if person == nil {
		return nil, nil
	}
	refs, err := s.PersonHobbies(ctx, person, populate)
	if err != nil {
		return nil, err
	}
	return &types.PersonView{ID: person.ID, Name: person.Name, Hobbies: refs}, nil
}

// Views projects every person in order.
func (s *Service) Views(ctx context.Context, persons []*types.Person, populate bool) ([]*types.PersonView, error) {
	views := make([]*types.PersonView, 0, len(persons))
	for _, p := range persons {
		v, err := s.View(ctx, p, populate)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

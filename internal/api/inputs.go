package api

import "github.com/mesh-intelligence/hobbyist/pkg/types"

// Inputs carry identifiers in their wire form. Each is parsed into
// types.Identifier before any store is called.

// CreateHobbyInput is the payload of createHobby.
type CreateHobbyInput struct {
	Name string `json:"name"`
}

// UpdateHobbyInput is the payload of updateHobby. Nil fields are untouched.
type UpdateHobbyInput struct {
	ID   string  `json:"_id"`
	Name *string `json:"name,omitempty"`
}

// HobbyFilterInput selects hobbies by exact match on each present field.
type HobbyFilterInput struct {
	ID   *string `json:"_id,omitempty"`
	Name *string `json:"name,omitempty"`
}

// CreatePersonInput is the payload of createPerson.
type CreatePersonInput struct {
	Name    string   `json:"name"`
	Hobbies []string `json:"hobbies"`
}

// UpdatePersonInput is the payload of updatePerson. A present, empty
// Hobbies list clears the person's hobbies.
type UpdatePersonInput struct {
	ID      string    `json:"_id"`
	Name    *string   `json:"name,omitempty"`
	Hobbies *[]string `json:"hobbies,omitempty"`
}

// PersonFilterInput selects persons by exact match on each present field.
// Hobbies must equal the stored list element by element, order included.
type PersonFilterInput struct {
	ID      *string   `json:"_id,omitempty"`
	Name    *string   `json:"name,omitempty"`
	Hobbies *[]string `json:"hobbies,omitempty"`
}

func parseOptionalID(s *string) (*types.Identifier, error) {
	if s == nil {
		return nil, nil
	}
	id, err := types.ParseIdentifier(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseOptionalIDs(ss *[]string) (*[]types.Identifier, error) {
	if ss == nil {
		return nil, nil
	}
	ids, err := types.ParseIdentifiers(*ss)
	if err != nil {
		return nil, err
	}
	return &ids, nil
}

// toFilter converts the input; a nil input selects everything.
func (in *HobbyFilterInput) toFilter() (types.HobbyFilter, error) {
	if in == nil {
		return types.HobbyFilter{}, nil
	}
	id, err := parseOptionalID(in.ID)
	if err != nil {
		return types.HobbyFilter{}, err
	}
	return types.HobbyFilter{ID: id, Name: in.Name}, nil
}

func (in *PersonFilterInput) toFilter() (types.PersonFilter, error) {
	if in == nil {
		return types.PersonFilter{}, nil
	}
	id, err := parseOptionalID(in.ID)
	if err != nil {
		return types.PersonFilter{}, err
	}
	hobbies, err := parseOptionalIDs(in.Hobbies)
	if err != nil {
		return types.PersonFilter{}, err
	}
	return types.PersonFilter{ID: id, Name: in.Name, Hobbies: hobbies}, nil
}

func (in UpdatePersonInput) toPatch() (types.PersonPatch, error) {
	hobbies, err := parseOptionalIDs(in.Hobbies)
	if err != nil {
		return types.PersonPatch{}, err
	}
	return types.PersonPatch{Name: in.Name, Hobbies: hobbies}, nil
}

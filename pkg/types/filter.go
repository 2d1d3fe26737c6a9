package types

// HobbyFilter is an exact-match predicate over Hobby fields. Every non-nil
// field must equal the stored value; nil fields impose no constraint, and a
// filter with no fields selects every hobby.
type HobbyFilter struct {
	ID   *Identifier `json:"_id,omitempty"`
	Name *string     `json:"name,omitempty"`
}

// IsEmpty reports whether the filter has no fields present.
func (f HobbyFilter) IsEmpty() bool {
	return f.ID == nil && f.Name == nil
}

// Matches reports whether h satisfies every present field of f.
func (f HobbyFilter) Matches(h *Hobby) bool {
	if h == nil {
		return false
	}
	if f.ID != nil && *f.ID != h.ID {
		return false
	}
	if f.Name != nil && *f.Name != h.Name {
		return false
	}
	return true
}

// PersonFilter is an exact-match predicate over Person fields. Hobbies, when
// present, must equal the stored list element by element, order included;
// it is not a containment test.
type PersonFilter struct {
	ID      *Identifier   `json:"_id,omitempty"`
	Name    *string       `json:"name,omitempty"`
	Hobbies *[]Identifier `json:"hobbies,omitempty"`
}

// IsEmpty reports whether the filter has no fields present.
func (f PersonFilter) IsEmpty() bool {
	return f.ID == nil && f.Name == nil && f.Hobbies == nil
}

// Matches reports whether p satisfies every present field of f.
func (f PersonFilter) Matches(p *Person) bool {
	if p == nil {
		return false
	}
	if f.ID != nil && *f.ID != p.ID {
		return false
	}
	if f.Name != nil && *f.Name != p.Name {
		return false
	}
	if f.Hobbies != nil && !EqualIdentifiers(*f.Hobbies, p.Hobbies) {
		return false
	}
	return true
}

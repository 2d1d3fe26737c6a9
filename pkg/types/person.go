package types

// Person is a named individual holding an ordered weak reference list of
// Hobby identifiers. The list is stored verbatim: order is preserved,
// duplicates are kept, and nothing checks that the referenced hobbies exist.
type Person struct {
	ID      Identifier   `json:"_id"`
	Name    string       `json:"name"`
	Hobbies []Identifier `json:"hobbies"`
}

// Clone returns a deep copy of p, or nil if p is nil.
func (p *Person) Clone() *Person {
	if p == nil {
		return nil
	}
	c := *p
	c.Hobbies = CloneIdentifiers(p.Hobbies)
	return &c
}

// PersonPatch carries the fields of an update. Nil fields are left untouched;
// a non-nil Hobbies pointer to an empty slice clears the list.
type PersonPatch struct {
	Name    *string       `json:"name,omitempty"`
	Hobbies *[]Identifier `json:"hobbies,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p PersonPatch) IsEmpty() bool {
	return p.Name == nil && p.Hobbies == nil
}

// Apply writes the present fields of p onto person.
func (p PersonPatch) Apply(person *Person) {
	if p.Name != nil {
		person.Name = *p.Name
	}
	if p.Hobbies != nil {
		person.Hobbies = CloneIdentifiers(*p.Hobbies)
	}
}

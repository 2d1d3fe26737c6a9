package types

// Hobby is a named pastime a Person may reference.
type Hobby struct {
	// ID is assigned on creation and never changes.
	ID Identifier `json:"_id"`

	// Name may be empty; no required-field rule applies.
	Name string `json:"name"`
}

// Clone returns a copy of h, or nil if h is nil.
func (h *Hobby) Clone() *Hobby {
	if h == nil {
		return nil
	}
	c := *h
	return &c
}

// HobbyPatch carries the fields of an update. Nil fields are left untouched.
type HobbyPatch struct {
	Name *string `json:"name,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p HobbyPatch) IsEmpty() bool {
	return p.Name == nil
}

// Apply writes the present fields of p onto h.
func (p HobbyPatch) Apply(h *Hobby) {
	if p.Name != nil {
		h.Name = *p.Name
	}
}

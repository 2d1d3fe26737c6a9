package api

import "strings"

// Kind classifies an operation.
type Kind string

const (
	KindQuery    Kind = "query"
	KindMutation Kind = "mutation"
	// KindField operations resolve a field of a returned record rather than
	// being invoked on their own.
	KindField Kind = "field"
)

// Type names used in the schema. A trailing "!" marks a non-null value;
// brackets mark a list.
const (
	TypeID                = "ID!"
	TypeBoolean           = "Boolean"
	TypeHobby             = "Hobby"
	TypeHobbyList         = "[Hobby!]!"
	TypePerson            = "Person"
	TypePersonList        = "[Person!]!"
	TypeHobbyRefList      = "[HobbyRef]!"
	TypeCreateHobbyInput  = "CreateHobbyInput!"
	TypeUpdateHobbyInput  = "UpdateHobbyInput!"
	TypeHobbyFilterInput  = "HobbyFilterInput"
	TypeCreatePersonInput = "CreatePersonInput!"
	TypeUpdatePersonInput = "UpdatePersonInput!"
	TypePersonFilterInput = "PersonFilterInput"
)

// Argument names shared by the operations.
const (
	ArgID       = "_id"
	ArgFilters  = "filters"
	ArgPayload  = "payload"
	ArgPopulate = "populate"
)

// Arg describes one operation argument.
type Arg struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

// Operation describes one entry of the API surface. For KindField entries
// On names the type that owns the field.
type Operation struct {
	Name        string `json:"name"`
	Kind        Kind   `json:"kind"`
	On          string `json:"on,omitempty"`
	Args        []Arg  `json:"args"`
	Returns     string `json:"returns"`
	Description string `json:"description,omitempty"`
}

// Operation names.
const (
	OpHobby         = "hobby"
	OpHobbies       = "hobbies"
	OpCreateHobby   = "createHobby"
	OpUpdateHobby   = "updateHobby"
	OpDeleteHobby   = "deleteHobby"
	OpPerson        = "person"
	OpPersons       = "persons"
	OpCreatePerson  = "createPerson"
	OpUpdatePerson  = "updatePerson"
	OpDeletePerson  = "deletePerson"
	OpPersonHobbies = "hobbies"
)

// Schema enumerates the API surface. Transports generate their routes from
// it; the returned slice is a fresh copy.
func Schema() []Operation {
	id := Arg{Name: ArgID, Type: TypeID, Required: true}
	return []Operation{
		{Name: OpHobby, Kind: KindQuery, Args: []Arg{id}, Returns: TypeHobby,
			Description: "Hobby by id, or null"},
		{Name: OpHobbies, Kind: KindQuery, Args: []Arg{{Name: ArgFilters, Type: TypeHobbyFilterInput}}, Returns: TypeHobbyList,
			Description: "Hobbies whose present filter fields match exactly"},
		{Name: OpCreateHobby, Kind: KindMutation, Args: []Arg{{Name: ArgPayload, Type: TypeCreateHobbyInput, Required: true}}, Returns: TypeHobby},
		{Name: OpUpdateHobby, Kind: KindMutation, Args: []Arg{{Name: ArgPayload, Type: TypeUpdateHobbyInput, Required: true}}, Returns: TypeHobby,
			Description: "Applies present fields; null when the hobby does not exist"},
		{Name: OpDeleteHobby, Kind: KindMutation, Args: []Arg{id}, Returns: TypeHobby,
			Description: "Removes the hobby and returns it; persons referencing it are untouched"},
		{Name: OpPerson, Kind: KindQuery, Args: []Arg{id}, Returns: TypePerson,
			Description: "Person by id, or null"},
		{Name: OpPersons, Kind: KindQuery, Args: []Arg{{Name: ArgFilters, Type: TypePersonFilterInput}}, Returns: TypePersonList,
			Description: "Persons whose present filter fields match exactly; hobbies compares the whole list"},
		{Name: OpCreatePerson, Kind: KindMutation, Args: []Arg{{Name: ArgPayload, Type: TypeCreatePersonInput, Required: true}}, Returns: TypePerson},
		{Name: OpUpdatePerson, Kind: KindMutation, Args: []Arg{{Name: ArgPayload, Type: TypeUpdatePersonInput, Required: true}}, Returns: TypePerson},
		{Name: OpDeletePerson, Kind: KindMutation, Args: []Arg{id}, Returns: TypePerson},
		{Name: OpPersonHobbies, Kind: KindField, On: TypePerson, Args: []Arg{{Name: ArgPopulate, Type: TypeBoolean}}, Returns: TypeHobbyRefList,
			Description: "Raw hobby ids, or hobbies with null for missing ones when populate is true"},
	}
}

// Lookup returns the query or mutation named name.
func Lookup(name string) (Operation, bool) {
	for _, op := range Schema() {
		if op.Kind != KindField && op.Name == name {
			return op, true
		}
	}
	return Operation{}, false
}

// FieldsOf returns the field operations resolvable on typeName.
func FieldsOf(typeName string) []Operation {
	var fields []Operation
	for _, op := range Schema() {
		if op.Kind == KindField && op.On == typeName {
			fields = append(fields, op)
		}
	}
	return fields
}

// ReturnsType reports whether op returns typeName or a list of it.
func (op Operation) ReturnsType(typeName string) bool {
	base := op.Returns
	for _, c := range []string{"[", "]", "!"} {
		base = strings.ReplaceAll(base, c, "")
	}
	return base == typeName
}

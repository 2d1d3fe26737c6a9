package surreal

import (
	"strings"

	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/mesh-intelligence/hobbyist/pkg/types"
)

type hobbyRecord struct {
	ID   *models.RecordID `json:"id,omitempty"`
	Name string           `json:"name"`
}

func (r hobbyRecord) toHobby() (*types.Hobby, error) {
	id, err := identifierOf(r.ID)
	if err != nil {
		return nil, err
	}
	return &types.Hobby{ID: id, Name: r.Name}, nil
}

// personRecord stores hobbies as hex strings so the list reads back
// verbatim without depending on the record id codec.
type personRecord struct {
	ID      *models.RecordID `json:"id,omitempty"`
	Name    string           `json:"name"`
	Hobbies []string         `json:"hobbies"`
}

func (r personRecord) toPerson() (*types.Person, error) {
	id, err := identifierOf(r.ID)
	if err != nil {
		return nil, err
	}
	hobbies, err := types.ParseIdentifiers(r.Hobbies)
	if err != nil {
		return nil, err
	}
	return &types.Person{ID: id, Name: r.Name, Hobbies: hobbies}, nil
}

func toHobbies(recs []hobbyRecord) ([]*types.Hobby, error) {
	out := make([]*types.Hobby, 0, len(recs))
	for _, rec := range recs {
		h, err := rec.toHobby()
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, nil
}

func toPersons(recs []personRecord) ([]*types.Person, error) {
	out := make([]*types.Person, 0, len(recs))
	for _, rec := range recs {
		p, err := rec.toPerson()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// selectStatement builds a parameterised SELECT over $tb, ordered by id.
// Ids made by one process sort in creation order; across processes in the
// same second they sort by pid.
func selectStatement(conds []string) string {
	sql := "SELECT * FROM type::table($tb)"
	if len(conds) > 0 {
		sql += " WHERE " + strings.Join(conds, " AND ")
	}
	return sql + " ORDER BY id"
}

package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/mesh-intelligence/hobbyist/pkg/types"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// encodeHobbies renders a hobbies list as the canonical JSON array stored in
// the persons.hobbies column. A nil list encodes as "[]".
func encodeHobbies(ids []types.Identifier) (string, error) {
	data, err := json.Marshal(types.CloneIdentifiers(ids))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeHobbies(col string) ([]types.Identifier, error) {
	ids := []types.Identifier{}
	if err := json.Unmarshal([]byte(col), &ids); err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []types.Identifier{}
	}
	return ids, nil
}

func hydrateHobby(row rowScanner) (*types.Hobby, error) {
	var id, name string
	if err := row.Scan(&id, &name); err != nil {
		return nil, err
	}
	hid, err := types.ParseIdentifier(id)
	if err != nil {
		return nil, err
	}
	return &types.Hobby{ID: hid, Name: name}, nil
}

func hydratePerson(row rowScanner) (*types.Person, error) {
	var id, name, hobbiesCol string
	if err := row.Scan(&id, &name, &hobbiesCol); err != nil {
		return nil, err
	}
	pid, err := types.ParseIdentifier(id)
	if err != nil {
		return nil, err
	}
	hobbies, err := decodeHobbies(hobbiesCol)
	if err != nil {
		return nil, err
	}
	return &types.Person{ID: pid, Name: name, Hobbies: hobbies}, nil
}

// whereClause joins conditions with AND. No conditions selects every row.
func whereClause(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

// hobbyConditions pushes every present filter field down to SQL.
// SQLite compares TEXT with binary collation, so matches are exact.
func hobbyConditions(filter types.HobbyFilter) ([]string, []any) {
	var conds []string
	var args []any
	if filter.ID != nil {
		conds = append(conds, "hobby_id = ?")
		args = append(args, filter.ID.String())
	}
	if filter.Name != nil {
		conds = append(conds, "name = ?")
		args = append(args, *filter.Name)
	}
	return conds, args
}

func personConditions(filter types.PersonFilter) ([]string, []any, error) {
	var conds []string
	var args []any
	if filter.ID != nil {
		conds = append(conds, "person_id = ?")
		args = append(args, filter.ID.String())
	}
	if filter.Name != nil {
		conds = append(conds, "name = ?")
		args = append(args, *filter.Name)
	}
	if filter.Hobbies != nil {
		col, err := encodeHobbies(*filter.Hobbies)
		if err != nil {
			return nil, nil, err
		}
		conds = append(conds, "hobbies = ?")
		args = append(args, col)
	}
	return conds, args, nil
}

func queryHobbies(ctx context.Context, q queryer, filter types.HobbyFilter) ([]*types.Hobby, error) {
	conds, args := hobbyConditions(filter)
	rows, err := q.QueryContext(ctx,
		"SELECT hobby_id, name FROM hobbies"+whereClause(conds)+" ORDER BY seq", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hobbies := []*types.Hobby{}
	for rows.Next() {
		h, err := hydrateHobby(rows)
		if err != nil {
			return nil, err
		}
		hobbies = append(hobbies, h)
	}
	return hobbies, rows.Err()
}

func queryPersons(ctx context.Context, q queryer, filter types.PersonFilter) ([]*types.Person, error) {
	conds, args, err := personConditions(filter)
	if err != nil {
		return nil, err
	}
	rows, err := q.QueryContext(ctx,
		"SELECT person_id, name, hobbies FROM persons"+whereClause(conds)+" ORDER BY seq", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	persons := []*types.Person{}
	for rows.Next() {
		p, err := hydratePerson(rows)
		if err != nil {
			return nil, err
		}
		persons = append(persons, p)
	}
	return persons, rows.Err()
}

// getHobby returns nil, nil when no row matches.
func getHobby(ctx context.Context, q queryer, id types.Identifier) (*types.Hobby, error) {
	h, err := hydrateHobby(q.QueryRowContext(ctx,
		"SELECT hobby_id, name FROM hobbies WHERE hobby_id = ?", id.String()))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return h, err
}

func getPerson(ctx context.Context, q queryer, id types.Identifier) (*types.Person, error) {
	p, err := hydratePerson(q.QueryRowContext(ctx,
		"SELECT person_id, name, hobbies FROM persons WHERE person_id = ?", id.String()))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return p, err
}

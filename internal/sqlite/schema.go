package sqlite

import "database/sql"

// seq keeps insertion order so List returns records the way they were
// written. The hobbies column holds the canonical JSON array of hex ids,
// which makes exact sequence matching a plain string comparison.
const (
	createHobbies = `CREATE TABLE hobbies (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    hobby_id TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL
);`

	createPersons = `CREATE TABLE persons (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    person_id TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    hobbies TEXT NOT NULL DEFAULT '[]'
);`
)

const (
	idxHobbiesName = `CREATE INDEX idx_hobbies_name ON hobbies(name);`
	idxPersonsName = `CREATE INDEX idx_persons_name ON persons(name);`
)

var schemaDDL = []string{
	createHobbies,
	createPersons,
	idxHobbiesName,
	idxPersonsName,
}

func createSchema(db *sql.DB) error {
	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

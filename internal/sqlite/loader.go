package sqlite

import (
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/mesh-intelligence/hobbyist/pkg/types"
)

// loadAllJSONL reads hobbies.jsonl and persons.jsonl from dataDir and inserts
// their records into SQLite in file order. Loading is transactional: either
// every record lands or the database stays empty. Records without an id are
// dropped; for duplicate ids the first line wins. Unknown fields are ignored.
func loadAllJSONL(db *sql.DB, dataDir string) error {
	hobbies, err := readJSONL[types.Hobby](filepath.Join(dataDir, hobbiesJSONL))
	if err != nil {
		return err
	}
	persons, err := readJSONL[types.Person](filepath.Join(dataDir, personsJSONL))
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	for _, h := range hobbies {
		if h.ID.IsZero() {
			continue
		}
		if _, err := tx.Exec(
			"INSERT OR IGNORE INTO hobbies (hobby_id, name) VALUES (?, ?)",
			h.ID.String(), h.Name,
		); err != nil {
			return fmt.Errorf("loading hobby %s: %w", h.ID, err)
		}
	}

	for _, p := range persons {
		if p.ID.IsZero() {
			continue
		}
		hobbiesCol, err := encodeHobbies(p.Hobbies)
		if err != nil {
			return fmt.Errorf("encoding hobbies of person %s: %w", p.ID, err)
		}
		if _, err := tx.Exec(
			"INSERT OR IGNORE INTO persons (person_id, name, hobbies) VALUES (?, ?, ?)",
			p.ID.String(), p.Name, hobbiesCol,
		); err != nil {
			return fmt.Errorf("loading person %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}

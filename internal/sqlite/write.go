package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
)

// writeThrough applies change inside a transaction, rewrites file from the
// transaction's view of the table, and commits only once the file is in
// place. A failed rewrite rolls the change back, so SQLite never holds a
// write the JSONL file lacks. The caller must hold the write lock.
func writeThrough[T any](
	ctx context.Context,
	b *Backend,
	file string,
	change func(tx *sql.Tx) error,
	snapshot func(ctx context.Context, q queryer) ([]T, error),
) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return storageError("beginning transaction", err)
	}
	defer tx.Rollback()

	if err := change(tx); err != nil {
		return err
	}
	records, err := snapshot(ctx, tx)
	if err != nil {
		return storageError("reading "+file+" for persist", err)
	}
	if err := writeJSONL(filepath.Join(b.dataDir, file), records); err != nil {
		return storageError("persisting "+file, err)
	}
	if err := tx.Commit(); err != nil {
		return storageError("committing", err)
	}
	return nil
}

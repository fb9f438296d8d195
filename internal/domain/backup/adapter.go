package backup

import "context"

// BatchSize is the write ceiling per batch on every store. Document stores
// cap batched writes at 500 items; the relational adapter uses the same
// chunking for symmetric memory behavior.
const BatchSize = 500

// Reader reads whole tables from the live primary store during backup.
type Reader interface {
	// ReadAll returns every row of the table, unfiltered.
	ReadAll(ctx context.Context, table string) ([]Row, error)
}

// StoreAdapter abstracts a restore target. The restore loop is written once
// against this interface; each backend supplies deletion and batched insert
// for its own storage model.
type StoreAdapter interface {
	// Platform identifies the backend in restore reports.
	Platform() Platform
	// Target resolves a source table name to the backend's own name for it
	// (the collection name on document stores, the table itself elsewhere).
	Target(table string) string
	// DeleteAll removes every record of the target, batched where the
	// backend caps batch sizes.
	DeleteAll(ctx context.Context, table string) error
	// InsertMany writes the rows in batches of at most BatchSize, keyed by
	// their original identifier, and returns the number written.
	InsertMany(ctx context.Context, table string, rows []Row) (int, error)
}

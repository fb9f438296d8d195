package backup

import (
	"context"
	"fmt"

	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/infrastructure/persistence/postgres/connection"
)

// PostgresAdapter reads from and restores into the primary relational store.
// It is both the backup Reader and the relational StoreAdapter.
type PostgresAdapter struct {
	db *connection.Database
}

func NewPostgresAdapter(db *connection.Database) *PostgresAdapter {
	return &PostgresAdapter{db: db}
}

// Platform identifies the relational backend
func (a *PostgresAdapter) Platform() Platform {
	return PlatformPostgres
}

// Target is the identity on the relational store
func (a *PostgresAdapter) Target(table string) string {
	return table
}

// ReadAll returns every row of the table, unfiltered. Soft-deleted rows are
// included so a restore reproduces the store exactly.
func (a *PostgresAdapter) ReadAll(ctx context.Context, table string) ([]Row, error) {
	var rows []Row
	err := a.db.WithContext(ctx).Table(table).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", table, err)
	}
	if rows == nil {
		rows = []Row{}
	}
	return rows, nil
}

// DeleteAll removes every row of the table.
func (a *PostgresAdapter) DeleteAll(ctx context.Context, table string) error {
	if err := a.db.WithContext(ctx).Exec(fmt.Sprintf("DELETE FROM %q", table)).Error; err != nil {
		return fmt.Errorf("delete all from %s: %w", table, err)
	}
	return nil
}

// InsertMany bulk-inserts the backed-up rows in batches.
func (a *PostgresAdapter) InsertMany(ctx context.Context, table string, rows []Row) (int, error) {
	inserted := 0
	for start := 0; start < len(rows); start += BatchSize {
		end := start + BatchSize
		if end > len(rows) {
			end = len(rows)
		}
		batch := []map[string]interface{}(nil)
		batch = append(batch, rows[start:end]...)

		if err := a.db.WithContext(ctx).Table(table).Create(batch).Error; err != nil {
			return inserted, fmt.Errorf("insert into %s: %w", table, err)
		}
		inserted += len(batch)
	}
	return inserted, nil
}

package dailywork

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/user"
)

// fakeRepo mirrors the Postgres contract: one row per (user, date) whether
// live or soft-deleted, with conflicts resolved by the upsertAssignments
// column list.
type fakeRepo struct {
	rows []*Entry
}

func (f *fakeRepo) Upsert(ctx context.Context, entry *Entry) error {
	for _, row := range f.rows {
		if row.UserID == entry.UserID && row.WorkDate.Equal(entry.WorkDate) {
			for _, col := range upsertAssignments {
				switch col {
				case "description":
					row.Description = entry.Description
				case "updated_at":
					row.UpdatedAt = entry.UpdatedAt
				case "deleted_at":
					row.DeletedAt = entry.DeletedAt
				}
			}
			*entry = *row
			return nil
		}
	}
	cp := *entry
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id uuid.UUID) (*Entry, error) {
	for _, row := range f.rows {
		if row.ID == id && !row.DeletedAt.Valid {
			cp := *row
			return &cp, nil
		}
	}
	return nil, ErrEntryNotFound
}

func (f *fakeRepo) FindAll(ctx context.Context, filter EntryFilter) ([]Entry, int64, error) {
	var out []Entry
	for _, row := range f.rows {
		if row.DeletedAt.Valid {
			continue
		}
		if filter.UserID != nil && row.UserID != *filter.UserID {
			continue
		}
		out = append(out, *row)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) Update(ctx context.Context, entry *Entry) error {
	for _, row := range f.rows {
		if row.ID == entry.ID {
			*row = *entry
			return nil
		}
	}
	return ErrEntryNotFound
}

func (f *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for _, row := range f.rows {
		if row.ID == id {
			row.DeletedAt.Time = time.Now()
			row.DeletedAt.Valid = true
			return nil
		}
	}
	return ErrEntryNotFound
}

func TestSubmitAfterSameDayDelete(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	actor := user.Actor{ID: uuid.New(), Email: "field@example.com", Role: user.RoleUser}
	today := time.Now().UTC().Truncate(24 * time.Hour)

	first, err := svc.Submit(ctx, actor, UpsertEntryInput{WorkDate: today, Description: "scaffold inspection"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, actor, first.ID))

	_, total := listEntries(t, svc, ctx, actor)
	assert.Zero(t, total)

	// The day's slot must be writable again, not stuck behind the
	// soft-deleted row.
	second, err := svc.Submit(ctx, actor, UpsertEntryInput{WorkDate: today, Description: "scaffold re-inspection"})
	require.NoError(t, err)

	entries, total := listEntries(t, svc, ctx, actor)
	require.EqualValues(t, 1, total)
	assert.Equal(t, "scaffold re-inspection", entries[0].Description)
	assert.Equal(t, second.WorkDate, entries[0].WorkDate)
}

func TestDeleteOtherDayForbidden(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	actor := user.Actor{ID: uuid.New(), Email: "field@example.com", Role: user.RoleUser}
	yesterday := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -1)

	entry, err := svc.Submit(ctx, actor, UpsertEntryInput{WorkDate: yesterday, Description: "toolbox talk"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, actor, entry.ID), ErrForbidden)

	admin := user.Actor{ID: uuid.New(), Email: "admin@example.com", Role: user.RoleAdmin}
	assert.NoError(t, svc.Delete(ctx, admin, entry.ID))
}

func listEntries(t *testing.T, svc Service, ctx context.Context, actor user.Actor) ([]Entry, int64) {
	t.Helper()
	entries, total, err := svc.List(ctx, actor, EntryFilter{PageSize: 50})
	require.NoError(t, err)
	return entries, total
}

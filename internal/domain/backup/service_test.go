package backup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory Reader + StoreAdapter, with optional fault
// injection per table.
type fakeStore struct {
	platform    Platform
	tables      map[string][]Row
	readErrs    map[string]error
	deleteErrs  map[string]error
	insertErrs  map[string]error
	readCalls   int
	deleteCalls int
	insertCalls int
}

func newFakeStore(platform Platform) *fakeStore {
	return &fakeStore{
		platform:   platform,
		tables:     make(map[string][]Row),
		readErrs:   make(map[string]error),
		deleteErrs: make(map[string]error),
		insertErrs: make(map[string]error),
	}
}

func (f *fakeStore) Platform() Platform { return f.platform }

func (f *fakeStore) Target(table string) string {
	if f.platform == PlatformMongo {
		if c, ok := Collections[table]; ok {
			return c
		}
	}
	return table
}

func (f *fakeStore) ReadAll(ctx context.Context, table string) ([]Row, error) {
	f.readCalls++
	if err := f.readErrs[table]; err != nil {
		return nil, err
	}
	rows := f.tables[table]
	if rows == nil {
		rows = []Row{}
	}
	return rows, nil
}

func (f *fakeStore) DeleteAll(ctx context.Context, table string) error {
	f.deleteCalls++
	if err := f.deleteErrs[table]; err != nil {
		return err
	}
	delete(f.tables, table)
	return nil
}

func (f *fakeStore) InsertMany(ctx context.Context, table string, rows []Row) (int, error) {
	f.insertCalls++
	if err := f.insertErrs[table]; err != nil {
		return 0, err
	}
	f.tables[table] = append(f.tables[table], rows...)
	return len(rows), nil
}

var superadmin = user.Actor{ID: uuid.New(), Email: "root@example.com", Role: user.RoleSuperadmin}

func seedStore(store *fakeStore) {
	store.tables["profiles"] = []Row{
		{"id": "p1", "email": "a@example.com", "role": "superadmin"},
		{"id": "p2", "email": "b@example.com", "role": "user"},
	}
	store.tables["objectives"] = []Row{
		{"id": "o1", "title": "Zero LTI", "num_activities": float64(10)},
	}
	store.tables["objective_updates"] = []Row{
		{"id": "u1", "objective_id": "o1", "achieved_count": float64(3)},
		{"id": "u2", "objective_id": "o1", "achieved_count": float64(2)},
	}
	store.tables["system_settings"] = []Row{
		{"id": "s1", "key": "updates_enabled", "value": "true"},
	}
}

func TestBackupIncludesEveryTable(t *testing.T) {
	store := newFakeStore(PlatformPostgres)
	seedStore(store)
	svc := NewService(store, store)

	doc, err := svc.Backup(context.Background(), superadmin)
	require.NoError(t, err)

	assert.Equal(t, Version, doc.Version)
	assert.Len(t, doc.Tables, len(BackupTables), "every table present, even empty ones")
	for _, table := range BackupTables {
		assert.Contains(t, doc.Tables, table)
	}
	assert.Equal(t, 6, doc.Metadata.TotalRows)
	assert.Equal(t, len(BackupTables), doc.Metadata.TotalTables)
	assert.Equal(t, superadmin.Email, doc.Metadata.BackupByEmail)

	_, err = time.Parse(time.RFC3339, doc.Timestamp)
	assert.NoError(t, err, "timestamp is ISO-8601")
}

func TestBackupAbortsOnAnyReadFailure(t *testing.T) {
	store := newFakeStore(PlatformPostgres)
	seedStore(store)
	store.readErrs["daily_work"] = errors.New("relation vanished")
	svc := NewService(store, store)

	doc, err := svc.Backup(context.Background(), superadmin)
	assert.Nil(t, doc, "no partial backup")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "daily_work")
}

func TestAuthorizationGate(t *testing.T) {
	for _, role := range []user.Role{user.RoleUser, user.RoleAdmin} {
		t.Run(string(role), func(t *testing.T) {
			store := newFakeStore(PlatformPostgres)
			seedStore(store)
			svc := NewService(store, store)
			actor := user.Actor{ID: uuid.New(), Email: "x@example.com", Role: role}

			_, err := svc.Backup(context.Background(), actor)
			assert.ErrorIs(t, err, ErrForbidden)

			_, err = svc.Restore(context.Background(), actor, &Document{Tables: map[string][]Row{}}, "")
			assert.ErrorIs(t, err, ErrForbidden)

			assert.Zero(t, store.readCalls, "no reads performed")
			assert.Zero(t, store.deleteCalls, "no deletes performed")
			assert.Zero(t, store.insertCalls, "no inserts performed")
		})
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	source := newFakeStore(PlatformPostgres)
	seedStore(source)
	svc := NewService(source, source)

	doc, err := svc.Backup(context.Background(), superadmin)
	require.NoError(t, err)

	// Restore into an empty store of the same kind
	target := newFakeStore(PlatformPostgres)
	restoreSvc := NewService(target, target)

	report, err := restoreSvc.Restore(context.Background(), superadmin, doc, "postgres")
	require.NoError(t, err)
	assert.True(t, report.Success)
	for table, result := range report.Results {
		assert.True(t, result.Success, table)
		require.NotNil(t, result.RowsRestored, table)
		assert.Equal(t, len(doc.Tables[table]), *result.RowsRestored, table)
	}

	// A second backup of the restored store yields an equal tables map
	second, err := restoreSvc.Backup(context.Background(), superadmin)
	require.NoError(t, err)
	assert.Equal(t, doc.Tables, second.Tables)
}

func TestRestorePartialFailureIsolation(t *testing.T) {
	store := newFakeStore(PlatformPostgres)
	svc := NewService(store, store)

	doc := &Document{
		Version:   Version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Tables: map[string][]Row{
			"profiles":          {{"id": "p1"}, {"id": "p2"}},
			"objectives":        {{"id": "o1"}},
			"objective_updates": {{"id": "u1"}, {"id": "u2"}, {"id": "u3"}},
		},
	}
	store.insertErrs["objectives"] = errors.New("malformed row")

	report, err := svc.Restore(context.Background(), superadmin, doc, "")
	require.NoError(t, err)
	assert.True(t, report.Success, "per-table failures do not fail the call")

	// Tables before and after the failing one still succeed with counts
	profiles := report.Results["profiles"]
	assert.True(t, profiles.Success)
	require.NotNil(t, profiles.RowsRestored)
	assert.Equal(t, 2, *profiles.RowsRestored)

	updates := report.Results["objective_updates"]
	assert.True(t, updates.Success)
	require.NotNil(t, updates.RowsRestored)
	assert.Equal(t, 3, *updates.RowsRestored)

	failed := report.Results["objectives"]
	assert.False(t, failed.Success)
	assert.NotEmpty(t, failed.Error)
	assert.Nil(t, failed.RowsRestored)

	assert.Contains(t, report.Message, "2 of 3")
}

func TestRestoreValidation(t *testing.T) {
	store := newFakeStore(PlatformPostgres)
	svc := NewService(store, store)

	t.Run("nil tables map rejected", func(t *testing.T) {
		_, err := svc.Restore(context.Background(), superadmin, &Document{}, "")
		assert.ErrorIs(t, err, ErrInvalidBackup)
		assert.Zero(t, store.deleteCalls)
	})

	t.Run("unknown platform rejected", func(t *testing.T) {
		doc := &Document{Tables: map[string][]Row{}}
		_, err := svc.Restore(context.Background(), superadmin, doc, "dynamo")
		assert.ErrorIs(t, err, ErrUnknownPlatform)
	})

	t.Run("unconfigured platform rejected", func(t *testing.T) {
		doc := &Document{Tables: map[string][]Row{}}
		_, err := svc.Restore(context.Background(), superadmin, doc, "mongo")
		assert.ErrorIs(t, err, ErrPlatformUnavailable)
	})
}

func TestRestoreToMongoReportsCollections(t *testing.T) {
	reader := newFakeStore(PlatformPostgres)
	mongoStore := newFakeStore(PlatformMongo)
	svc := NewService(reader, reader, mongoStore)

	doc := &Document{
		Tables: map[string][]Row{
			"profiles":   {{"id": "p1"}},
			"daily_work": {{"id": "d1"}},
		},
	}

	report, err := svc.Restore(context.Background(), superadmin, doc, "firebase")
	require.NoError(t, err)
	assert.Equal(t, "mongo", report.Platform, "legacy alias normalized")

	profiles := report.Results["profiles"]
	assert.Equal(t, "users", profiles.Collection)
	require.NotNil(t, profiles.DocumentsRestored)
	assert.Equal(t, 1, *profiles.DocumentsRestored)
	assert.Nil(t, profiles.RowsRestored)

	assert.Equal(t, "dailyWork", report.Results["daily_work"].Collection)

	// Nothing touched the relational adapter
	assert.Zero(t, reader.deleteCalls)
	assert.Zero(t, reader.insertCalls)
}

func TestNormalizePlatform(t *testing.T) {
	tests := []struct {
		in       string
		expected Platform
		wantErr  bool
	}{
		{"", PlatformPostgres, false},
		{"postgres", PlatformPostgres, false},
		{"supabase", PlatformPostgres, false},
		{"mongo", PlatformMongo, false},
		{"firebase", PlatformMongo, false},
		{"sqlite", "", true},
	}

	for _, tt := range tests {
		t.Run("value "+tt.in, func(t *testing.T) {
			got, err := NormalizePlatform(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownPlatform)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

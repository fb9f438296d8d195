package settings

import (
	"context"
	"testing"

	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	rows    []Setting
	upserts map[string]string
}

func (f *fakeRepo) FindAll(ctx context.Context) ([]Setting, error) { return f.rows, nil }
func (f *fakeRepo) UpsertMany(ctx context.Context, values map[string]string, updatedBy uuid.UUID) error {
	f.upserts = values
	return nil
}
func (f *fakeRepo) FindPermissions(ctx context.Context) ([]ComponentPermission, error) {
	return nil, nil
}
func (f *fakeRepo) UpsertPermission(ctx context.Context, perm *ComponentPermission) error { return nil }
func (f *fakeRepo) DeletePermission(ctx context.Context, component string) error          { return nil }

func TestFromRows(t *testing.T) {
	tests := []struct {
		name     string
		rows     []Setting
		expected SystemSettings
	}{
		{
			name:     "empty rows keep defaults",
			rows:     nil,
			expected: DefaultSettings(),
		},
		{
			name: "known keys override defaults",
			rows: []Setting{
				{Key: "updates_enabled", Value: "false"},
				{Key: "maintenance_mode", Value: "true"},
				{Key: "deadline_grace_days", Value: "7"},
			},
			expected: SystemSettings{
				UpdatesEnabled:        false,
				MaintenanceMode:       true,
				DeadlineGraceDays:     7,
				AllowSelfRegistration: true,
			},
		},
		{
			name: "unparsable and unknown keys are ignored",
			rows: []Setting{
				{Key: "updates_enabled", Value: "yes please"},
				{Key: "deadline_grace_days", Value: "-3"},
				{Key: "legacy_theme", Value: "dark"},
			},
			expected: DefaultSettings(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, fromRows(tt.rows))
		})
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	in := SystemSettings{
		UpdatesEnabled:        false,
		MaintenanceMode:       true,
		DeadlineGraceDays:     3,
		AllowSelfRegistration: false,
	}

	rows := make([]Setting, 0, 4)
	for k, v := range in.toRows() {
		rows = append(rows, Setting{Key: k, Value: v})
	}

	assert.Equal(t, in, fromRows(rows))
}

func TestUpdateRequiresSuperadmin(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nil)

	admin := user.Actor{ID: uuid.New(), Role: user.RoleAdmin}
	_, err := svc.Update(context.Background(), admin, DefaultSettings())
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Nil(t, repo.upserts, "no writes on rejection")

	super := user.Actor{ID: uuid.New(), Role: user.RoleSuperadmin}
	_, err = svc.Update(context.Background(), super, DefaultSettings())
	assert.NoError(t, err)
	assert.NotEmpty(t, repo.upserts)
}

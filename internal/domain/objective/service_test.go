package objective

import (
	"context"
	"testing"
	"time"

	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/settings"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/user"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	objectives map[uuid.UUID]*Objective
	updates    map[uuid.UUID]*ObjectiveUpdate
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		objectives: make(map[uuid.UUID]*Objective),
		updates:    make(map[uuid.UUID]*ObjectiveUpdate),
	}
}

func (f *fakeRepo) Create(ctx context.Context, obj *Objective) error {
	f.objectives[obj.ID] = obj
	return nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id uuid.UUID) (*Objective, error) {
	obj, ok := f.objectives[id]
	if !ok {
		return nil, ErrObjectiveNotFound
	}
	cp := *obj
	return &cp, nil
}

func (f *fakeRepo) FindAll(ctx context.Context, filter ObjectiveFilter) ([]Objective, int64, error) {
	var out []Objective
	for _, obj := range f.objectives {
		if filter.OwnerID != nil && obj.OwnerID != *filter.OwnerID {
			continue
		}
		out = append(out, *obj)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) Update(ctx context.Context, obj *Objective) error {
	if _, ok := f.objectives[obj.ID]; !ok {
		return ErrObjectiveNotFound
	}
	f.objectives[obj.ID] = obj
	return nil
}

func (f *fakeRepo) DeleteWithUpdates(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.objectives[id]; !ok {
		return ErrObjectiveNotFound
	}
	delete(f.objectives, id)
	for uid, u := range f.updates {
		if u.ObjectiveID == id {
			delete(f.updates, uid)
		}
	}
	return nil
}

func (f *fakeRepo) CreateUpdate(ctx context.Context, update *ObjectiveUpdate) error {
	f.updates[update.ID] = update
	return nil
}

func (f *fakeRepo) FindUpdateByID(ctx context.Context, id uuid.UUID) (*ObjectiveUpdate, error) {
	u, ok := f.updates[id]
	if !ok {
		return nil, ErrUpdateNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) FindUpdates(ctx context.Context, objectiveID uuid.UUID) ([]ObjectiveUpdate, error) {
	var out []ObjectiveUpdate
	for _, u := range f.updates {
		if u.ObjectiveID == objectiveID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeRepo) SaveUpdate(ctx context.Context, update *ObjectiveUpdate) error {
	if _, ok := f.updates[update.ID]; !ok {
		return ErrUpdateNotFound
	}
	f.updates[update.ID] = update
	return nil
}

func (f *fakeRepo) DeleteUpdate(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.updates[id]; !ok {
		return ErrUpdateNotFound
	}
	delete(f.updates, id)
	return nil
}

type fakeSettings struct {
	current settings.SystemSettings
}

func (f *fakeSettings) Get(ctx context.Context) (settings.SystemSettings, error) {
	return f.current, nil
}
func (f *fakeSettings) Update(ctx context.Context, actor user.Actor, s settings.SystemSettings) (settings.SystemSettings, error) {
	f.current = s
	return s, nil
}
func (f *fakeSettings) ListPermissions(ctx context.Context) ([]settings.ComponentPermission, error) {
	return nil, nil
}
func (f *fakeSettings) SetPermission(ctx context.Context, actor user.Actor, component string, minRole user.Role) (*settings.ComponentPermission, error) {
	return nil, nil
}
func (f *fakeSettings) RemovePermission(ctx context.Context, actor user.Actor, component string) error {
	return nil
}

func newTestService(repo *fakeRepo, sys settings.SystemSettings, now time.Time) *service {
	return &service{
		repo:         repo,
		settings:     &fakeSettings{current: sys},
		validate:     validator.New(),
		programStart: programStart,
		programYear:  2025,
		now:          func() time.Time { return now },
	}
}

var (
	owner = user.Actor{ID: uuid.New(), Email: "owner@example.com", Role: user.RoleUser}
	admin = user.Actor{ID: uuid.New(), Email: "admin@example.com", Role: user.RoleAdmin}
)

func validCreateInput() CreateObjectiveInput {
	return CreateObjectiveInput{
		Title:         "Reduce recordable incidents",
		Weightage:     20,
		NumActivities: 10,
		TargetDate:    day(time.December, 31),
	}
}

func TestCreateObjectiveValidation(t *testing.T) {
	svc := newTestService(newFakeRepo(), settings.DefaultSettings(), day(time.February, 1))

	t.Run("valid input", func(t *testing.T) {
		obj, err := svc.Create(context.Background(), owner, validCreateInput())
		require.NoError(t, err)
		assert.Equal(t, owner.ID, obj.OwnerID)
		assert.Equal(t, owner.ID, obj.CreatorID)
	})

	t.Run("zero num_activities rejected", func(t *testing.T) {
		input := validCreateInput()
		input.NumActivities = 0
		_, err := svc.Create(context.Background(), owner, input)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("weightage out of range rejected", func(t *testing.T) {
		input := validCreateInput()
		input.Weightage = 120
		_, err := svc.Create(context.Background(), owner, input)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("non quarter-end target rejected", func(t *testing.T) {
		input := validCreateInput()
		input.TargetDate = day(time.November, 15)
		_, err := svc.Create(context.Background(), owner, input)
		assert.ErrorIs(t, err, ErrInvalidTarget)
	})

	t.Run("assigning on behalf requires admin", func(t *testing.T) {
		input := validCreateInput()
		input.OwnerID = uuid.New()
		_, err := svc.Create(context.Background(), owner, input)
		assert.ErrorIs(t, err, ErrForbidden)

		obj, err := svc.Create(context.Background(), admin, input)
		require.NoError(t, err)
		assert.Equal(t, input.OwnerID, obj.OwnerID)
		assert.Equal(t, admin.ID, obj.CreatorID)
	})
}

func TestCreateUpdateGates(t *testing.T) {
	repo := newFakeRepo()
	now := day(time.May, 1)

	sys := settings.DefaultSettings()
	svc := newTestService(repo, sys, now)
	obj, err := svc.Create(context.Background(), owner, validCreateInput())
	require.NoError(t, err)

	updateInput := CreateUpdateInput{AchievedCount: 2, UpdateDate: now}

	t.Run("owner can report before deadline", func(t *testing.T) {
		_, err := svc.CreateUpdate(context.Background(), owner, obj.ID, updateInput)
		assert.NoError(t, err)
	})

	t.Run("non-owner cannot report", func(t *testing.T) {
		stranger := user.Actor{ID: uuid.New(), Role: user.RoleUser}
		_, err := svc.CreateUpdate(context.Background(), stranger, obj.ID, updateInput)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("updates disabled blocks non-admins only", func(t *testing.T) {
		disabled := settings.DefaultSettings()
		disabled.UpdatesEnabled = false
		svc := newTestService(repo, disabled, now)

		_, err := svc.CreateUpdate(context.Background(), owner, obj.ID, updateInput)
		assert.ErrorIs(t, err, ErrUpdatesDisabled)

		_, err = svc.CreateUpdate(context.Background(), admin, obj.ID, updateInput)
		assert.NoError(t, err)
	})

	t.Run("maintenance mode blocks non-admins", func(t *testing.T) {
		maint := settings.DefaultSettings()
		maint.MaintenanceMode = true
		svc := newTestService(repo, maint, now)

		_, err := svc.CreateUpdate(context.Background(), owner, obj.ID, updateInput)
		assert.ErrorIs(t, err, ErrMaintenanceMode)
	})

	t.Run("deadline passed blocks non-admins", func(t *testing.T) {
		late := newTestService(repo, sys, day(time.December, 31).AddDate(0, 0, 1))
		_, err := late.CreateUpdate(context.Background(), owner, obj.ID, updateInput)
		assert.ErrorIs(t, err, ErrDeadlinePassed)

		_, err = late.CreateUpdate(context.Background(), admin, obj.ID, updateInput)
		assert.NoError(t, err)
	})

	t.Run("grace days extend the deadline", func(t *testing.T) {
		graced := settings.DefaultSettings()
		graced.DeadlineGraceDays = 7
		svc := newTestService(repo, graced, day(time.December, 31).AddDate(0, 0, 3))
		_, err := svc.CreateUpdate(context.Background(), owner, obj.ID, updateInput)
		assert.NoError(t, err)
	})

	t.Run("efficiency is admin-only", func(t *testing.T) {
		withEff := updateInput
		withEff.Efficiency = eff(80)
		_, err := svc.CreateUpdate(context.Background(), owner, obj.ID, withEff)
		assert.ErrorIs(t, err, ErrForbidden)

		created, err := svc.CreateUpdate(context.Background(), admin, obj.ID, withEff)
		require.NoError(t, err)
		require.NotNil(t, created.Efficiency)
		assert.Equal(t, 80, *created.Efficiency)
	})
}

func TestProgressRecomputedRetroactively(t *testing.T) {
	repo := newFakeRepo()
	now := day(time.May, 1)
	svc := newTestService(repo, settings.DefaultSettings(), now)

	obj, err := svc.Create(context.Background(), owner, validCreateInput())
	require.NoError(t, err)

	first, err := svc.CreateUpdate(context.Background(), owner, obj.ID, CreateUpdateInput{
		AchievedCount: 4, UpdateDate: day(time.February, 1),
	})
	require.NoError(t, err)
	_, err = svc.CreateUpdate(context.Background(), owner, obj.ID, CreateUpdateInput{
		AchievedCount: 2, UpdateDate: day(time.April, 1),
	})
	require.NoError(t, err)

	view, err := svc.Get(context.Background(), obj.ID)
	require.NoError(t, err)
	assert.Equal(t, 60, view.Progress.Effective)
	assert.Equal(t, 6, view.Progress.CumulativeCount)

	// Editing a historical update changes derived progress
	lower := 1
	_, err = svc.EditUpdate(context.Background(), admin, first.ID, EditUpdateInput{AchievedCount: &lower})
	require.NoError(t, err)

	view, err = svc.Get(context.Background(), obj.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, view.Progress.Effective)

	// Deleting it changes derived progress again
	require.NoError(t, svc.DeleteUpdate(context.Background(), admin, first.ID))

	view, err = svc.Get(context.Background(), obj.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, view.Progress.Effective)
	assert.Equal(t, 2, view.Progress.CumulativeCount)
}

func TestDeleteObjectiveCascades(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, settings.DefaultSettings(), day(time.May, 1))

	obj, err := svc.Create(context.Background(), owner, validCreateInput())
	require.NoError(t, err)
	_, err = svc.CreateUpdate(context.Background(), owner, obj.ID, CreateUpdateInput{
		AchievedCount: 1, UpdateDate: day(time.March, 1),
	})
	require.NoError(t, err)

	t.Run("non-admin cannot delete", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(context.Background(), owner, obj.ID), ErrForbidden)
	})

	t.Run("admin delete removes updates too", func(t *testing.T) {
		require.NoError(t, svc.Delete(context.Background(), admin, obj.ID))
		assert.Empty(t, repo.updates)
	})
}

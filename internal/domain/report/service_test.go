package report

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/actionitem"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/objective"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/user"
)

type fakeObjectiveService struct {
	objective.Service
	list []objective.ObjectiveWithProgress
}

func (f *fakeObjectiveService) List(ctx context.Context, filter objective.ObjectiveFilter) ([]objective.ObjectiveWithProgress, int64, error) {
	return f.list, int64(len(f.list)), nil
}

type fakeItemService struct {
	actionitem.Service
}

func (f *fakeItemService) List(ctx context.Context, filter actionitem.ItemFilter) ([]actionitem.ActionItem, int64, error) {
	return nil, 0, nil
}

type fakeUserRepo struct {
	user.Repository
	profiles map[uuid.UUID]*user.Profile
	findErr  error
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.Profile, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if p, ok := f.profiles[id]; ok {
		return p, nil
	}
	return nil, user.ErrProfileNotFound
}

func (f *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.profiles)), nil
}

func objectiveFor(owner uuid.UUID, title string) objective.ObjectiveWithProgress {
	return objective.ObjectiveWithProgress{
		Objective: objective.Objective{ID: uuid.New(), OwnerID: owner, Title: title, Weightage: 10},
		Progress:  objective.Progress{Planned: 50, Effective: 50},
	}
}

func TestProgressRowsDeletedOwner(t *testing.T) {
	kept := uuid.New()
	gone := uuid.New()

	objectives := &fakeObjectiveService{list: []objective.ObjectiveWithProgress{
		objectiveFor(kept, "Reduce LTI rate"),
		objectiveFor(gone, "Safety walk coverage"),
	}}
	users := &fakeUserRepo{profiles: map[uuid.UUID]*user.Profile{
		kept: {ID: kept, FullName: "Amna Riaz"},
	}}
	svc := NewService(objectives, &fakeItemService{}, users, nil)

	actor := user.Actor{ID: uuid.New(), Email: "admin@example.com", Role: user.RoleAdmin}
	rows, err := svc.ProgressRows(context.Background(), actor)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Amna Riaz", rows[0].OwnerName)
	assert.Empty(t, rows[1].OwnerName, "objectives of a deleted owner keep their row")
}

func TestProgressRowsRepoFailure(t *testing.T) {
	owner := uuid.New()
	objectives := &fakeObjectiveService{list: []objective.ObjectiveWithProgress{
		objectiveFor(owner, "Near-miss reporting"),
	}}
	users := &fakeUserRepo{findErr: errors.New("connection reset")}
	svc := NewService(objectives, &fakeItemService{}, users, nil)

	actor := user.Actor{ID: uuid.New(), Email: "admin@example.com", Role: user.RoleAdmin}
	_, err := svc.ProgressRows(context.Background(), actor)
	assert.Error(t, err)
}

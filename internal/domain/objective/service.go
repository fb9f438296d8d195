package objective

import (
	"context"
	"encoding/json"
	"time"

	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/settings"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/user"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Service interface
type Service interface {
	Create(ctx context.Context, actor user.Actor, input CreateObjectiveInput) (*Objective, error)
	Get(ctx context.Context, id uuid.UUID) (*ObjectiveWithProgress, error)
	List(ctx context.Context, filter ObjectiveFilter) ([]ObjectiveWithProgress, int64, error)
	Update(ctx context.Context, actor user.Actor, id uuid.UUID, input UpdateObjectiveInput) (*Objective, error)
	Delete(ctx context.Context, actor user.Actor, id uuid.UUID) error

	CreateUpdate(ctx context.Context, actor user.Actor, objectiveID uuid.UUID, input CreateUpdateInput) (*ObjectiveUpdate, error)
	EditUpdate(ctx context.Context, actor user.Actor, updateID uuid.UUID, input EditUpdateInput) (*ObjectiveUpdate, error)
	DeleteUpdate(ctx context.Context, actor user.Actor, updateID uuid.UUID) error
	ListUpdates(ctx context.Context, objectiveID uuid.UUID) ([]ObjectiveUpdate, error)
}

type service struct {
	repo         Repository
	settings     settings.Service
	validate     *validator.Validate
	programStart time.Time
	programYear  int
	now          func() time.Time
}

// NewService creates the objective service. programStart anchors planned
// progress; programYear constrains target dates to its quarter ends.
func NewService(repo Repository, settingsSvc settings.Service, programStart time.Time, programYear int) Service {
	return &service{
		repo:         repo,
		settings:     settingsSvc,
		validate:     validator.New(),
		programStart: programStart,
		programYear:  programYear,
		now:          time.Now,
	}
}

func (s *service) Create(ctx context.Context, actor user.Actor, input CreateObjectiveInput) (*Objective, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, ErrInvalidInput
	}
	if !IsQuarterEnd(input.TargetDate, s.programYear) {
		return nil, ErrInvalidTarget
	}

	// Owner defaults to the creator; assigning on behalf of another user
	// takes admin privilege
	owner := actor.ID
	if input.OwnerID != uuid.Nil && input.OwnerID != actor.ID {
		if !actor.Role.AtLeast(user.RoleAdmin) {
			return nil, ErrForbidden
		}
		owner = input.OwnerID
	}

	obj := &Objective{
		ID:            uuid.New(),
		Title:         input.Title,
		Description:   input.Description,
		Weightage:     input.Weightage,
		NumActivities: input.NumActivities,
		OwnerID:       owner,
		CreatorID:     actor.ID,
		TargetDate:    input.TargetDate,
		CreatedAt:     s.now(),
		UpdatedAt:     s.now(),
	}

	if err := s.repo.Create(ctx, obj); err != nil {
		return nil, err
	}
	return obj, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ObjectiveWithProgress, error) {
	obj, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates, err := s.repo.FindUpdates(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ObjectiveWithProgress{
		Objective: *obj,
		Progress:  ComputeProgress(*obj, updates, s.programStart, s.now()),
	}, nil
}

func (s *service) List(ctx context.Context, filter ObjectiveFilter) ([]ObjectiveWithProgress, int64, error) {
	if filter.PageSize == 0 {
		filter.PageSize = 50
	}

	objectives, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	now := s.now()
	result := make([]ObjectiveWithProgress, 0, len(objectives))
	for _, obj := range objectives {
		updates, err := s.repo.FindUpdates(ctx, obj.ID)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, ObjectiveWithProgress{
			Objective: obj,
			Progress:  ComputeProgress(obj, updates, s.programStart, now),
		})
	}

	return result, total, nil
}

func (s *service) Update(ctx context.Context, actor user.Actor, id uuid.UUID, input UpdateObjectiveInput) (*Objective, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, ErrInvalidInput
	}

	obj, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.ID != obj.CreatorID && !actor.Role.AtLeast(user.RoleAdmin) {
		return nil, ErrForbidden
	}

	if input.Title != nil {
		obj.Title = *input.Title
	}
	if input.Description != nil {
		obj.Description = *input.Description
	}
	if input.Weightage != nil {
		obj.Weightage = *input.Weightage
	}
	if input.NumActivities != nil {
		obj.NumActivities = *input.NumActivities
	}
	if input.OwnerID != nil {
		if !actor.Role.AtLeast(user.RoleAdmin) {
			return nil, ErrForbidden
		}
		obj.OwnerID = *input.OwnerID
	}
	if input.TargetDate != nil {
		if !IsQuarterEnd(*input.TargetDate, s.programYear) {
			return nil, ErrInvalidTarget
		}
		obj.TargetDate = *input.TargetDate
	}

	obj.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, obj); err != nil {
		return nil, err
	}
	return obj, nil
}

func (s *service) Delete(ctx context.Context, actor user.Actor, id uuid.UUID) error {
	if !actor.Role.AtLeast(user.RoleAdmin) {
		return ErrForbidden
	}
	return s.repo.DeleteWithUpdates(ctx, id)
}

// CreateUpdate records an incremental progress report. Non-admin callers are
// gated by maintenance mode, the updates_enabled switch, and the objective's
// deadline (target date plus the configured grace days).
func (s *service) CreateUpdate(ctx context.Context, actor user.Actor, objectiveID uuid.UUID, input CreateUpdateInput) (*ObjectiveUpdate, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, ErrInvalidInput
	}

	obj, err := s.repo.FindByID(ctx, objectiveID)
	if err != nil {
		return nil, err
	}

	isAdmin := actor.Role.AtLeast(user.RoleAdmin)
	if actor.ID != obj.OwnerID && !isAdmin {
		return nil, ErrForbidden
	}

	sys, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		if sys.MaintenanceMode {
			return nil, ErrMaintenanceMode
		}
		if !sys.UpdatesEnabled {
			return nil, ErrUpdatesDisabled
		}
		deadline := obj.TargetDate.AddDate(0, 0, sys.DeadlineGraceDays)
		if s.now().After(deadline) {
			return nil, ErrDeadlinePassed
		}
	}

	// Efficiency is admin-settable only
	if input.Efficiency != nil && !isAdmin {
		return nil, ErrForbidden
	}

	update := &ObjectiveUpdate{
		ID:            uuid.New(),
		ObjectiveID:   objectiveID,
		UserID:        actor.ID,
		AchievedCount: input.AchievedCount,
		UpdateDate:    input.UpdateDate,
		Efficiency:    input.Efficiency,
		Comments:      input.Comments,
		CreatedAt:     s.now(),
		UpdatedAt:     s.now(),
	}
	if len(input.Photos) > 0 {
		photos, err := json.Marshal(input.Photos)
		if err != nil {
			return nil, ErrInvalidInput
		}
		update.Photos = datatypes.JSON(photos)
	}

	if err := s.repo.CreateUpdate(ctx, update); err != nil {
		return nil, err
	}
	return update, nil
}

func (s *service) EditUpdate(ctx context.Context, actor user.Actor, updateID uuid.UUID, input EditUpdateInput) (*ObjectiveUpdate, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, ErrInvalidInput
	}

	update, err := s.repo.FindUpdateByID(ctx, updateID)
	if err != nil {
		return nil, err
	}

	isAdmin := actor.Role.AtLeast(user.RoleAdmin)
	if actor.ID != update.UserID && !isAdmin {
		return nil, ErrForbidden
	}

	if input.AchievedCount != nil {
		update.AchievedCount = *input.AchievedCount
	}
	if input.UpdateDate != nil {
		update.UpdateDate = *input.UpdateDate
	}
	if input.Comments != nil {
		update.Comments = *input.Comments
	}
	if input.Efficiency != nil {
		if !isAdmin {
			return nil, ErrForbidden
		}
		update.Efficiency = input.Efficiency
	}

	update.UpdatedAt = s.now()
	if err := s.repo.SaveUpdate(ctx, update); err != nil {
		return nil, err
	}
	return update, nil
}

func (s *service) DeleteUpdate(ctx context.Context, actor user.Actor, updateID uuid.UUID) error {
	if !actor.Role.AtLeast(user.RoleAdmin) {
		return ErrForbidden
	}
	if _, err := s.repo.FindUpdateByID(ctx, updateID); err != nil {
		return err
	}
	return s.repo.DeleteUpdate(ctx, updateID)
}

func (s *service) ListUpdates(ctx context.Context, objectiveID uuid.UUID) ([]ObjectiveUpdate, error) {
	if _, err := s.repo.FindByID(ctx, objectiveID); err != nil {
		return nil, err
	}
	return s.repo.FindUpdates(ctx, objectiveID)
}

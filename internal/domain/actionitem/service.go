package actionitem

import (
	"context"
	"encoding/json"
	"time"

	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/user"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Service interface
type Service interface {
	Create(ctx context.Context, actor user.Actor, input CreateItemInput) (*ActionItem, error)
	Get(ctx context.Context, id uuid.UUID) (*ItemDetails, error)
	List(ctx context.Context, filter ItemFilter) ([]ActionItem, int64, error)
	Update(ctx context.Context, actor user.Actor, id uuid.UUID, input UpdateItemInput) (*ActionItem, error)
	Close(ctx context.Context, actor user.Actor, id uuid.UUID, input CloseItemInput) (*ActionItem, error)
	Verify(ctx context.Context, actor user.Actor, id uuid.UUID, input VerifyItemInput) (*ActionItem, error)
	Delete(ctx context.Context, actor user.Actor, id uuid.UUID) error
}

type service struct {
	repo     Repository
	validate *validator.Validate
	now      func() time.Time
}

func NewService(repo Repository) Service {
	return &service{
		repo:     repo,
		validate: validator.New(),
		now:      time.Now,
	}
}

func (s *service) Create(ctx context.Context, actor user.Actor, input CreateItemInput) (*ActionItem, error) {
	if !actor.Role.AtLeast(user.RoleAdmin) {
		return nil, ErrForbidden
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, ErrInvalidInput
	}
	if input.Priority != "" && !input.Priority.IsValid() {
		return nil, ErrInvalidInput
	}

	item := &ActionItem{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		TargetDate:  input.TargetDate,
		Priority:    input.Priority,
		Status:      StatusOpen,
		AssigneeID:  input.AssigneeID,
		VerifierID:  input.VerifierID,
		CreatorID:   actor.ID,
		CreatedAt:   s.now(),
		UpdatedAt:   s.now(),
	}
	if item.Priority == "" {
		item.Priority = PriorityMedium
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ItemDetails, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	closure, err := s.repo.LatestClosure(ctx, id)
	if err != nil {
		return nil, err
	}
	verification, err := s.repo.LatestVerification(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ItemDetails{
		Item:         *item,
		Closure:      closure,
		Verification: verification,
	}, nil
}

func (s *service) List(ctx context.Context, filter ItemFilter) ([]ActionItem, int64, error) {
	if filter.PageSize == 0 {
		filter.PageSize = 50
	}
	return s.repo.FindAll(ctx, filter)
}

func (s *service) Update(ctx context.Context, actor user.Actor, id uuid.UUID, input UpdateItemInput) (*ActionItem, error) {
	if !actor.Role.AtLeast(user.RoleAdmin) {
		return nil, ErrForbidden
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, ErrInvalidInput
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		item.Title = *input.Title
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.TargetDate != nil {
		item.TargetDate = *input.TargetDate
	}
	if input.Priority != nil {
		if !input.Priority.IsValid() {
			return nil, ErrInvalidInput
		}
		item.Priority = *input.Priority
	}
	if input.AssigneeID != nil {
		item.AssigneeID = *input.AssigneeID
	}
	if input.VerifierID != nil {
		item.VerifierID = input.VerifierID
	}

	item.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Close records a closure and advances the item. With a verifier assigned the
// item parks in pending_verification; without one the closure is final.
func (s *service) Close(ctx context.Context, actor user.Actor, id uuid.UUID, input CloseItemInput) (*ActionItem, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, ErrInvalidInput
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.ID != item.AssigneeID && !actor.Role.AtLeast(user.RoleAdmin) {
		return nil, ErrForbidden
	}

	next := StatusClosed
	if item.VerifierID != nil {
		next = StatusPendingVerification
	}
	if !item.Status.CanTransition(next) {
		return nil, ErrInvalidTransition
	}

	closure := &Closure{
		ID:           uuid.New(),
		ActionItemID: id,
		ClosureText:  input.ClosureText,
		ClosedBy:     actor.ID,
		CreatedAt:    s.now(),
	}
	if len(input.MediaURLs) > 0 {
		media, err := json.Marshal(input.MediaURLs)
		if err != nil {
			return nil, ErrInvalidInput
		}
		closure.MediaURLs = datatypes.JSON(media)
	}

	if err := s.repo.CreateClosure(ctx, closure); err != nil {
		return nil, err
	}

	item.Status = next
	item.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Verify records the verifier's decision. Approval completes the item;
// rejection reopens it.
func (s *service) Verify(ctx context.Context, actor user.Actor, id uuid.UUID, input VerifyItemInput) (*ActionItem, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, ErrInvalidInput
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.VerifierID == nil {
		return nil, ErrNoVerifier
	}
	if actor.ID != *item.VerifierID && !actor.Role.AtLeast(user.RoleAdmin) {
		return nil, ErrForbidden
	}

	next := StatusOpen
	if input.Approved {
		next = StatusVerified
	}
	if !item.Status.CanTransition(next) {
		return nil, ErrInvalidTransition
	}

	verification := &Verification{
		ID:           uuid.New(),
		ActionItemID: id,
		Approved:     input.Approved,
		Comments:     input.Comments,
		VerifiedBy:   actor.ID,
		CreatedAt:    s.now(),
	}
	if err := s.repo.CreateVerification(ctx, verification); err != nil {
		return nil, err
	}

	item.Status = next
	item.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) Delete(ctx context.Context, actor user.Actor, id uuid.UUID) error {
	if !actor.Role.AtLeast(user.RoleAdmin) {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

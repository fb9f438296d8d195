package dailywork

import (
	"context"
	"time"

	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/user"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Service interface
type Service interface {
	Submit(ctx context.Context, actor user.Actor, input UpsertEntryInput) (*Entry, error)
	List(ctx context.Context, actor user.Actor, filter EntryFilter) ([]Entry, int64, error)
	Comment(ctx context.Context, actor user.Actor, id uuid.UUID, comment string) (*Entry, error)
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

// Submit records the caller's work log for a date, overwriting any previous
// entry for the same date.
func (s *service) Submit(ctx context.Context, actor user.Actor, input UpsertEntryInput) (*Entry, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, ErrInvalidInput
	}

	// Normalize to a date; the unique index is per calendar day
	workDate := input.WorkDate.UTC().Truncate(24 * time.Hour)

	entry := &Entry{
		ID:          uuid.New(),
		UserID:      actor.ID,
		WorkDate:    workDate,
		Description: input.Description,
		CreatedAt:   s.now(),
		UpdatedAt:   s.now(),
	}
	if err := s.repo.Upsert(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// List returns the caller's own entries; admins may list anyone's.
func (s *service) List(ctx context.Context, actor user.Actor, filter EntryFilter) ([]Entry, int64, error) {
	if filter.PageSize == 0 {
		filter.PageSize = 50
	}
	if !actor.Role.AtLeast(user.RoleAdmin) {
		id := actor.ID
		filter.UserID = &id
	}
	return s.repo.FindAll(ctx, filter)
}

func (s *service) Comment(ctx context.Context, actor user.Actor, id uuid.UUID, comment string) (*Entry, error) {
	if !actor.Role.AtLeast(user.RoleAdmin) {
		return nil, ErrForbidden
	}

	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	entry.AdminComment = comment
	entry.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Delete removes an entry. Owners may delete their own same-day entry;
// admins may delete any entry.
func (s *service) Delete(ctx context.Context, actor user.Actor, id uuid.UUID) error {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !actor.Role.AtLeast(user.RoleAdmin) {
		if entry.UserID != actor.ID {
			return ErrForbidden
		}
		today := s.now().UTC().Truncate(24 * time.Hour)
		if !entry.WorkDate.Equal(today) {
			return ErrForbidden
		}
	}

	return s.repo.Delete(ctx, id)
}

package user

import (
	"context"
	"time"

	"github.com/QamarDeenSoomro/hse-objectives-sub000/pkg/security/auth"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Actor identifies the caller of a privileged operation.
type Actor struct {
	ID    uuid.UUID
	Email string
	Role  Role
}

// Service interface
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*Profile, error)
	Authenticate(ctx context.Context, email, password string) (*Profile, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error)
	ListProfiles(ctx context.Context, actor Actor, filter ProfileFilter) ([]Profile, int64, error)
	UpdateProfile(ctx context.Context, actor Actor, id uuid.UUID, input UpdateProfileInput) (*Profile, error)
	SetRole(ctx context.Context, actor Actor, id uuid.UUID, role Role) (*Profile, error)
	Ban(ctx context.Context, actor Actor, id uuid.UUID, until time.Time) (*Profile, error)
	Unban(ctx context.Context, actor Actor, id uuid.UUID) (*Profile, error)
	DeleteProfile(ctx context.Context, actor Actor, id uuid.UUID) error
}

type service struct {
	repo     Repository
	validate *validator.Validate
}

func NewService(repo Repository) Service {
	return &service{
		repo:     repo,
		validate: validator.New(),
	}
}

// Register creates a new profile. The very first profile in an empty system
// is promoted to superadmin so the instance can be bootstrapped.
func (s *service) Register(ctx context.Context, input RegisterInput) (*Profile, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, ErrInvalidInput
	}

	existing, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	role := RoleUser
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		role = RoleSuperadmin
	}

	profile := &Profile{
		ID:           uuid.New(),
		Email:        input.Email,
		FullName:     input.FullName,
		Role:         role,
		PasswordHash: hash,
	}

	if err := s.repo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *service) Authenticate(ctx context.Context, email, password string) (*Profile, error) {
	profile, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if profile == nil || !auth.CheckPassword(profile.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if profile.IsBanned(time.Now()) {
		return nil, ErrUserBanned
	}
	return profile, nil
}

func (s *service) GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListProfiles(ctx context.Context, actor Actor, filter ProfileFilter) ([]Profile, int64, error) {
	if !actor.Role.AtLeast(RoleAdmin) {
		return nil, 0, ErrForbidden
	}
	if filter.PageSize == 0 {
		filter.PageSize = 50
	}
	return s.repo.FindAll(ctx, filter)
}

func (s *service) UpdateProfile(ctx context.Context, actor Actor, id uuid.UUID, input UpdateProfileInput) (*Profile, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, ErrInvalidInput
	}

	// Users edit themselves; admins edit anyone below their own rank
	profile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.ID != id {
		if !actor.Role.AtLeast(RoleAdmin) || profile.Role.Rank() >= actor.Role.Rank() {
			return nil, ErrForbidden
		}
	}

	if input.FullName != nil {
		profile.FullName = *input.FullName
	}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		profile.PasswordHash = hash
	}

	profile.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *service) SetRole(ctx context.Context, actor Actor, id uuid.UUID, role Role) (*Profile, error) {
	if !actor.Role.AtLeast(RoleSuperadmin) {
		return nil, ErrForbidden
	}
	if !role.IsValid() {
		return nil, ErrInvalidInput
	}

	profile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	profile.Role = role
	profile.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *service) Ban(ctx context.Context, actor Actor, id uuid.UUID, until time.Time) (*Profile, error) {
	if !actor.Role.AtLeast(RoleAdmin) {
		return nil, ErrForbidden
	}

	profile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Cannot ban an equal-or-higher role
	if profile.Role.Rank() >= actor.Role.Rank() {
		return nil, ErrForbidden
	}

	profile.BannedUntil = &until
	profile.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *service) Unban(ctx context.Context, actor Actor, id uuid.UUID) (*Profile, error) {
	if !actor.Role.AtLeast(RoleAdmin) {
		return nil, ErrForbidden
	}

	profile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	profile.BannedUntil = nil
	profile.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *service) DeleteProfile(ctx context.Context, actor Actor, id uuid.UUID) error {
	if !actor.Role.AtLeast(RoleSuperadmin) {
		return ErrForbidden
	}
	if actor.ID == id {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

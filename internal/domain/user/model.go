package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Common errors
var (
	ErrProfileNotFound    = errors.New("profile not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserBanned         = errors.New("account is banned")
	ErrInvalidInput       = errors.New("invalid input")
	ErrForbidden          = errors.New("insufficient role")
)

// Role is an ordered privilege level. A higher rank is a strict superset of
// the lower ranks; every privilege check goes through AtLeast.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

var roleRanks = map[Role]int{
	RoleUser:       1,
	RoleAdmin:      2,
	RoleSuperadmin: 3,
}

// IsValid reports whether the role is one of the known levels
func (r Role) IsValid() bool {
	_, ok := roleRanks[r]
	return ok
}

// Rank returns the numeric privilege rank; unknown roles rank 0
func (r Role) Rank() int {
	return roleRanks[r]
}

// AtLeast reports whether the role carries at least the given privilege
func (r Role) AtLeast(required Role) bool {
	return r.Rank() >= required.Rank() && required.Rank() > 0
}

// Profile represents a user account
type Profile struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	Email        string         `json:"email" gorm:"uniqueIndex:idx_profile_email,where:deleted_at is null;not null"`
	FullName     string         `json:"full_name" gorm:"not null"`
	Role         Role           `json:"role" gorm:"type:varchar(20);not null;default:'user';index:idx_profile_role"`
	PasswordHash string         `json:"-" gorm:"not null"`
	BannedUntil  *time.Time     `json:"banned_until,omitempty" gorm:"index:idx_profile_banned"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName keeps the table name compatible with exported backups
func (Profile) TableName() string {
	return "profiles"
}

// BeforeCreate is called before inserting a new profile
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Role == "" {
		p.Role = RoleUser
	}
	if !p.Role.IsValid() {
		return errors.New("invalid role")
	}
	return nil
}

// IsBanned reports whether the profile is banned at the given instant
func (p *Profile) IsBanned(now time.Time) bool {
	return p.BannedUntil != nil && p.BannedUntil.After(now)
}

type RegisterInput struct {
	Email    string `validate:"required,email"`
	FullName string `validate:"required,min=2,max=100"`
	Password string `validate:"required,min=8,max=72"`
}

type UpdateProfileInput struct {
	FullName *string `validate:"omitempty,min=2,max=100"`
	Password *string `validate:"omitempty,min=8,max=72"`
}

type ProfileFilter struct {
	Page     int   `validate:"min=0"`
	PageSize int   `validate:"min=1,max=100"`
	Role     *Role `validate:"omitempty"`
}

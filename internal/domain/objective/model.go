package objective

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Common errors
var (
	ErrObjectiveNotFound = errors.New("objective not found")
	ErrUpdateNotFound    = errors.New("objective update not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidTarget     = errors.New("target date must be a quarter-end of the program year")
	ErrForbidden         = errors.New("insufficient role")
	ErrDeadlinePassed    = errors.New("update deadline has passed for this objective")
	ErrUpdatesDisabled   = errors.New("progress updates are currently disabled")
	ErrMaintenanceMode   = errors.New("system is in maintenance mode")
)

// Objective is a weighted organizational goal tracked to a quarter-end date.
// NumActivities is the denominator for progress and must stay >= 1.
type Objective struct {
	ID            uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	Title         string         `json:"title" gorm:"type:varchar(255);not null"`
	Description   string         `json:"description" gorm:"type:text"`
	Weightage     int            `json:"weightage" gorm:"not null"`
	NumActivities int            `json:"num_activities" gorm:"not null"`
	OwnerID       uuid.UUID      `json:"owner_id" gorm:"type:uuid;not null;index:idx_objective_owner"`
	CreatorID     uuid.UUID      `json:"creator_id" gorm:"type:uuid;not null;index:idx_objective_creator"`
	TargetDate    time.Time      `json:"target_date" gorm:"not null;index:idx_objective_target"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName keeps the table name compatible with exported backups
func (Objective) TableName() string {
	return "objectives"
}

// BeforeCreate is called before inserting a new objective
func (o *Objective) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.NumActivities < 1 {
		return errors.New("num_activities must be at least 1")
	}
	if o.Weightage < 1 || o.Weightage > 100 {
		return errors.New("weightage must be between 1 and 100")
	}
	return nil
}

// ObjectiveUpdate is one incremental progress report. AchievedCount is the
// delta completed in this update, not a cumulative figure.
type ObjectiveUpdate struct {
	ID            uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	ObjectiveID   uuid.UUID      `json:"objective_id" gorm:"type:uuid;not null;index:idx_update_objective"`
	UserID        uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index:idx_update_user"`
	AchievedCount int            `json:"achieved_count" gorm:"not null"`
	UpdateDate    time.Time      `json:"update_date" gorm:"not null;index:idx_update_date"`
	Efficiency    *int           `json:"efficiency,omitempty"`
	Photos        datatypes.JSON `json:"photos,omitempty" gorm:"type:jsonb"`
	Comments      string         `json:"comments" gorm:"type:text"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName keeps the table name compatible with exported backups
func (ObjectiveUpdate) TableName() string {
	return "objective_updates"
}

// BeforeCreate is called before inserting a new update
func (u *ObjectiveUpdate) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.AchievedCount < 0 {
		return errors.New("achieved_count must not be negative")
	}
	return nil
}

// IsQuarterEnd reports whether t falls on a quarter-end date of year
func IsQuarterEnd(t time.Time, year int) bool {
	if t.Year() != year {
		return false
	}
	switch {
	case t.Month() == time.March && t.Day() == 31:
		return true
	case t.Month() == time.June && t.Day() == 30:
		return true
	case t.Month() == time.September && t.Day() == 30:
		return true
	case t.Month() == time.December && t.Day() == 31:
		return true
	}
	return false
}

type CreateObjectiveInput struct {
	Title         string    `validate:"required,min=3,max=255"`
	Description   string    `validate:"max=2000"`
	Weightage     int       `validate:"required,min=1,max=100"`
	NumActivities int       `validate:"required,min=1"`
	OwnerID       uuid.UUID `validate:"omitempty"`
	TargetDate    time.Time `validate:"required"`
}

type UpdateObjectiveInput struct {
	Title         *string    `validate:"omitempty,min=3,max=255"`
	Description   *string    `validate:"omitempty,max=2000"`
	Weightage     *int       `validate:"omitempty,min=1,max=100"`
	NumActivities *int       `validate:"omitempty,min=1"`
	OwnerID       *uuid.UUID `validate:"omitempty"`
	TargetDate    *time.Time `validate:"omitempty"`
}

type CreateUpdateInput struct {
	AchievedCount int       `validate:"min=0"`
	UpdateDate    time.Time `validate:"required"`
	Efficiency    *int      `validate:"omitempty,min=0,max=100"`
	Photos        []string  `validate:"omitempty,dive,url"`
	Comments      string    `validate:"max=2000"`
}

type EditUpdateInput struct {
	AchievedCount *int       `validate:"omitempty,min=0"`
	UpdateDate    *time.Time `validate:"omitempty"`
	Efficiency    *int       `validate:"omitempty,min=0,max=100"`
	Comments      *string    `validate:"omitempty,max=2000"`
}

type ObjectiveFilter struct {
	Page     int        `validate:"min=0"`
	PageSize int        `validate:"min=1,max=100"`
	OwnerID  *uuid.UUID `validate:"omitempty"`
}

// Progress is the derived view attached to an objective on read. It is
// always recomputed from the full update list, never cached incrementally,
// so edits and deletes of past updates change it retroactively.
type Progress struct {
	Planned         int `json:"planned"`
	Effective       int `json:"effective"`
	CumulativeCount int `json:"cumulative_count"`
}

// ObjectiveWithProgress pairs an objective with its derived progress
type ObjectiveWithProgress struct {
	Objective Objective `json:"objective"`
	Progress  Progress  `json:"progress"`
}

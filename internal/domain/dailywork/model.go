package dailywork

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Common errors
var (
	ErrEntryNotFound = errors.New("daily work entry not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrForbidden     = errors.New("insufficient role")
)

// Entry is a per-user, per-date free-text work log. One row exists per user
// per work date; re-submitting the same date overwrites the description.
type Entry struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	UserID       uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_daily_work_user_date,priority:1"`
	WorkDate     time.Time      `json:"work_date" gorm:"type:date;not null;uniqueIndex:idx_daily_work_user_date,priority:2"`
	Description  string         `json:"description" gorm:"type:text;not null"`
	AdminComment string         `json:"admin_comment" gorm:"type:text"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName keeps the table name compatible with exported backups
func (Entry) TableName() string {
	return "daily_work"
}

// BeforeCreate is called before inserting an entry
func (e *Entry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Description == "" {
		return errors.New("description must not be empty")
	}
	return nil
}

type UpsertEntryInput struct {
	WorkDate    time.Time `validate:"required"`
	Description string    `validate:"required,min=1,max=4000"`
}

type EntryFilter struct {
	Page     int        `validate:"min=0"`
	PageSize int        `validate:"min=1,max=100"`
	UserID   *uuid.UUID `validate:"omitempty"`
	From     *time.Time `validate:"omitempty"`
	To       *time.Time `validate:"omitempty"`
}

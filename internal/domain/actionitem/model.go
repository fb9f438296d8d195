package actionitem

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Common errors
var (
	ErrItemNotFound      = errors.New("action item not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrForbidden         = errors.New("insufficient role")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNoVerifier        = errors.New("action item has no verifier assigned")
)

// Priority of an action item
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// IsValid validates the priority
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Status of an action item.
//
// The lifecycle: an open item is closed by its assignee. If a verifier is
// assigned the closure parks the item in pending_verification until the
// verifier approves (verified) or rejects (back to open); without a verifier
// the closure completes the item directly (closed). closed and verified are
// terminal.
type Status string

const (
	StatusOpen                Status = "open"
	StatusClosed              Status = "closed"
	StatusPendingVerification Status = "pending_verification"
	StatusVerified            Status = "verified"
)

// IsValid validates the status
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusClosed, StatusPendingVerification, StatusVerified:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition leaves this status
func (s Status) IsTerminal() bool {
	return s == StatusClosed || s == StatusVerified
}

var transitions = map[Status][]Status{
	StatusOpen:                {StatusClosed, StatusPendingVerification},
	StatusPendingVerification: {StatusVerified, StatusOpen},
}

// CanTransition reports whether moving from s to next is allowed
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ActionItem is a standalone remediation task with an assign/close/verify
// workflow, independent of objectives.
type ActionItem struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	Title       string         `json:"title" gorm:"type:varchar(255);not null"`
	Description string         `json:"description" gorm:"type:text"`
	TargetDate  time.Time      `json:"target_date" gorm:"not null;index:idx_action_item_target"`
	Priority    Priority       `json:"priority" gorm:"type:varchar(20);not null;default:'medium';index:idx_action_item_priority"`
	Status      Status         `json:"status" gorm:"type:varchar(30);not null;default:'open';index:idx_action_item_status"`
	AssigneeID  uuid.UUID      `json:"assignee_id" gorm:"type:uuid;not null;index:idx_action_item_assignee"`
	VerifierID  *uuid.UUID     `json:"verifier_id,omitempty" gorm:"type:uuid;index:idx_action_item_verifier"`
	CreatorID   uuid.UUID      `json:"creator_id" gorm:"type:uuid;not null"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName keeps the table name compatible with exported backups
func (ActionItem) TableName() string {
	return "action_items"
}

// BeforeCreate is called before inserting a new action item
func (a *ActionItem) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Priority == "" {
		a.Priority = PriorityMedium
	}
	if a.Status == "" {
		a.Status = StatusOpen
	}
	if !a.Priority.IsValid() {
		return errors.New("invalid priority")
	}
	if !a.Status.IsValid() {
		return errors.New("invalid status")
	}
	return nil
}

// Closure records one close attempt. Closures are kept as history; the
// latest row is the authoritative one.
type Closure struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	ActionItemID uuid.UUID      `json:"action_item_id" gorm:"type:uuid;not null;index:idx_closure_item"`
	ClosureText  string         `json:"closure_text" gorm:"type:text;not null"`
	MediaURLs    datatypes.JSON `json:"media_urls,omitempty" gorm:"type:jsonb"`
	ClosedBy     uuid.UUID      `json:"closed_by" gorm:"type:uuid;not null"`
	CreatedAt    time.Time      `json:"created_at" gorm:"index:idx_closure_created"`
}

// TableName keeps the table name compatible with exported backups
func (Closure) TableName() string {
	return "action_item_closures"
}

// BeforeCreate is called before inserting a closure
func (c *Closure) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Verification records one verify decision. Kept as history like closures.
type Verification struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	ActionItemID uuid.UUID `json:"action_item_id" gorm:"type:uuid;not null;index:idx_verification_item"`
	Approved     bool      `json:"approved" gorm:"not null"`
	Comments     string    `json:"comments" gorm:"type:text"`
	VerifiedBy   uuid.UUID `json:"verified_by" gorm:"type:uuid;not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"index:idx_verification_created"`
}

// TableName keeps the table name compatible with exported backups
func (Verification) TableName() string {
	return "action_item_verifications"
}

// BeforeCreate is called before inserting a verification
func (v *Verification) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

type CreateItemInput struct {
	Title       string     `validate:"required,min=3,max=255"`
	Description string     `validate:"max=2000"`
	TargetDate  time.Time  `validate:"required"`
	Priority    Priority   `validate:"omitempty"`
	AssigneeID  uuid.UUID  `validate:"required"`
	VerifierID  *uuid.UUID `validate:"omitempty"`
}

type UpdateItemInput struct {
	Title       *string    `validate:"omitempty,min=3,max=255"`
	Description *string    `validate:"omitempty,max=2000"`
	TargetDate  *time.Time `validate:"omitempty"`
	Priority    *Priority  `validate:"omitempty"`
	AssigneeID  *uuid.UUID `validate:"omitempty"`
	VerifierID  *uuid.UUID `validate:"omitempty"`
}

type CloseItemInput struct {
	ClosureText string   `validate:"required,min=3,max=4000"`
	MediaURLs   []string `validate:"omitempty,dive,url"`
}

type VerifyItemInput struct {
	Approved bool   `validate:"omitempty"`
	Comments string `validate:"max=2000"`
}

type ItemFilter struct {
	Page       int        `validate:"min=0"`
	PageSize   int        `validate:"min=1,max=100"`
	AssigneeID *uuid.UUID `validate:"omitempty"`
	Status     *Status    `validate:"omitempty"`
	Priority   *Priority  `validate:"omitempty"`
}

// ItemDetails is an action item with its latest closure and verification
type ItemDetails struct {
	Item         ActionItem    `json:"item"`
	Closure      *Closure      `json:"closure,omitempty"`
	Verification *Verification `json:"verification,omitempty"`
}

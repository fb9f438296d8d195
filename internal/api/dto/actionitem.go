package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateActionItemRequest represents the request body for raising an action item
type CreateActionItemRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	TargetDate  time.Time  `json:"target_date" binding:"required"`
	Priority    string     `json:"priority"`
	AssigneeID  uuid.UUID  `json:"assignee_id" binding:"required"`
	VerifierID  *uuid.UUID `json:"verifier_id,omitempty"`
}

// UpdateActionItemRequest represents the request body for editing an action item
type UpdateActionItemRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	TargetDate  *time.Time `json:"target_date,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	AssigneeID  *uuid.UUID `json:"assignee_id,omitempty"`
	VerifierID  *uuid.UUID `json:"verifier_id,omitempty"`
}

// CloseActionItemRequest represents the request body for closing an action item
type CloseActionItemRequest struct {
	ClosureText string   `json:"closure_text" binding:"required"`
	MediaURLs   []string `json:"media_urls,omitempty"`
}

// VerifyActionItemRequest represents the request body for verifying a closure
type VerifyActionItemRequest struct {
	Approved bool   `json:"approved"`
	Comments string `json:"comments"`
}

// ActionItemResponse represents an action item in API responses
type ActionItemResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	TargetDate  time.Time  `json:"target_date"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	AssigneeID  uuid.UUID  `json:"assignee_id"`
	VerifierID  *uuid.UUID `json:"verifier_id,omitempty"`
	CreatorID   uuid.UUID  `json:"creator_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ClosureResponse represents the latest closure attempt on an action item
type ClosureResponse struct {
	ID          uuid.UUID `json:"id"`
	ClosedBy    uuid.UUID `json:"closed_by"`
	ClosureText string    `json:"closure_text"`
	MediaURLs   []string  `json:"media_urls,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// VerificationResponse represents the latest verification on an action item
type VerificationResponse struct {
	ID         uuid.UUID `json:"id"`
	VerifiedBy uuid.UUID `json:"verified_by"`
	Approved   bool      `json:"approved"`
	Comments   string    `json:"comments"`
	CreatedAt  time.Time `json:"created_at"`
}

// ActionItemDetailsResponse pairs an action item with its closure history tips
type ActionItemDetailsResponse struct {
	Item         ActionItemResponse    `json:"item"`
	Closure      *ClosureResponse      `json:"closure,omitempty"`
	Verification *VerificationResponse `json:"verification,omitempty"`
}

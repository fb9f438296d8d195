package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateObjectiveRequest represents the request body for creating an objective
type CreateObjectiveRequest struct {
	Title         string     `json:"title" binding:"required"`
	Description   string     `json:"description"`
	Weightage     int        `json:"weightage" binding:"required"`
	NumActivities int        `json:"num_activities" binding:"required"`
	OwnerID       *uuid.UUID `json:"owner_id,omitempty"`
	TargetDate    time.Time  `json:"target_date" binding:"required"`
}

// UpdateObjectiveRequest represents the request body for editing an objective
type UpdateObjectiveRequest struct {
	Title         *string    `json:"title,omitempty"`
	Description   *string    `json:"description,omitempty"`
	Weightage     *int       `json:"weightage,omitempty"`
	NumActivities *int       `json:"num_activities,omitempty"`
	OwnerID       *uuid.UUID `json:"owner_id,omitempty"`
	TargetDate    *time.Time `json:"target_date,omitempty"`
}

// CreateUpdateRequest represents the request body for logging progress
type CreateUpdateRequest struct {
	AchievedCount int       `json:"achieved_count"`
	UpdateDate    time.Time `json:"update_date" binding:"required"`
	Efficiency    *int      `json:"efficiency,omitempty"`
	Photos        []string  `json:"photos,omitempty"`
	Comments      string    `json:"comments"`
}

// EditUpdateRequest represents the request body for correcting a logged update
type EditUpdateRequest struct {
	AchievedCount *int       `json:"achieved_count,omitempty"`
	UpdateDate    *time.Time `json:"update_date,omitempty"`
	Efficiency    *int       `json:"efficiency,omitempty"`
	Comments      *string    `json:"comments,omitempty"`
}

// ProgressResponse is the derived progress attached to an objective
type ProgressResponse struct {
	Planned         int `json:"planned"`
	Effective       int `json:"effective"`
	CumulativeCount int `json:"cumulative_count"`
}

// ObjectiveResponse represents an objective in API responses
type ObjectiveResponse struct {
	ID            uuid.UUID        `json:"id"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Weightage     int              `json:"weightage"`
	NumActivities int              `json:"num_activities"`
	OwnerID       uuid.UUID        `json:"owner_id"`
	CreatorID     uuid.UUID        `json:"creator_id"`
	TargetDate    time.Time        `json:"target_date"`
	Progress      ProgressResponse `json:"progress"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// UpdateResponse represents one logged progress update
type UpdateResponse struct {
	ID            uuid.UUID `json:"id"`
	ObjectiveID   uuid.UUID `json:"objective_id"`
	UserID        uuid.UUID `json:"user_id"`
	AchievedCount int       `json:"achieved_count"`
	UpdateDate    time.Time `json:"update_date"`
	Efficiency    *int      `json:"efficiency,omitempty"`
	Photos        []string  `json:"photos,omitempty"`
	Comments      string    `json:"comments"`
	CreatedAt     time.Time `json:"created_at"`
}

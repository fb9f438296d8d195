package dto

import (
	"time"

	"github.com/google/uuid"
)

// UpsertDailyWorkRequest represents the request body for logging a day's work
type UpsertDailyWorkRequest struct {
	WorkDate    time.Time `json:"work_date" binding:"required"`
	Description string    `json:"description" binding:"required"`
}

// CommentDailyWorkRequest represents the request body for an admin remark
type CommentDailyWorkRequest struct {
	Comment string `json:"comment" binding:"required"`
}

// DailyWorkResponse represents one daily work entry in API responses
type DailyWorkResponse struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	WorkDate     time.Time `json:"work_date"`
	Description  string    `json:"description"`
	AdminComment string    `json:"admin_comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

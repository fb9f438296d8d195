package dto

import "time"

// UpdateProfileRequest represents the request body for editing a profile
type UpdateProfileRequest struct {
	FullName *string `json:"full_name,omitempty"`
	Password *string `json:"password,omitempty"`
}

// SetRoleRequest represents the request body for changing a user's role
type SetRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// BanRequest represents the request body for banning a user
type BanRequest struct {
	Until time.Time `json:"until" binding:"required"`
}

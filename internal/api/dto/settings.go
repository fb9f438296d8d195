package dto

// SystemSettingsRequest represents the request body for updating settings.
// Absent fields keep their current value.
type SystemSettingsRequest struct {
	UpdatesEnabled        *bool `json:"updates_enabled,omitempty"`
	MaintenanceMode       *bool `json:"maintenance_mode,omitempty"`
	DeadlineGraceDays     *int  `json:"deadline_grace_days,omitempty"`
	AllowSelfRegistration *bool `json:"allow_self_registration,omitempty"`
}

// SystemSettingsResponse represents the current settings snapshot
type SystemSettingsResponse struct {
	UpdatesEnabled        bool `json:"updates_enabled"`
	MaintenanceMode       bool `json:"maintenance_mode"`
	DeadlineGraceDays     int  `json:"deadline_grace_days"`
	AllowSelfRegistration bool `json:"allow_self_registration"`
}

// SetPermissionRequest represents the request body for gating a UI component
type SetPermissionRequest struct {
	Component string `json:"component" binding:"required"`
	MinRole   string `json:"min_role" binding:"required"`
}

// PermissionResponse represents one component gate
type PermissionResponse struct {
	Component string `json:"component"`
	MinRole   string `json:"min_role"`
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/api/dto"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/api/middleware"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/settings"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/user"
)

// SettingsHandler handles system settings and component permissions
type SettingsHandler struct {
	service settings.Service
}

// NewSettingsHandler creates a new SettingsHandler instance
func NewSettingsHandler(service settings.Service) *SettingsHandler {
	return &SettingsHandler{service: service}
}

func settingsStatusCode(err error) int {
	switch {
	case errors.Is(err, settings.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, settings.ErrInvalidInput), errors.Is(err, settings.ErrInvalidComponent):
		return http.StatusBadRequest
	case errors.Is(err, settings.ErrPermNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func settingsToResponse(s settings.SystemSettings) dto.SystemSettingsResponse {
	return dto.SystemSettingsResponse{
		UpdatesEnabled:        s.UpdatesEnabled,
		MaintenanceMode:       s.MaintenanceMode,
		DeadlineGraceDays:     s.DeadlineGraceDays,
		AllowSelfRegistration: s.AllowSelfRegistration,
	}
}

// GetSettings returns the current system settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	current, err := h.service.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": settingsToResponse(current)})
}

// UpdateSettings applies partial changes to the system settings
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.SystemSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	current, err := h.service.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if req.UpdatesEnabled != nil {
		current.UpdatesEnabled = *req.UpdatesEnabled
	}
	if req.MaintenanceMode != nil {
		current.MaintenanceMode = *req.MaintenanceMode
	}
	if req.DeadlineGraceDays != nil {
		current.DeadlineGraceDays = *req.DeadlineGraceDays
	}
	if req.AllowSelfRegistration != nil {
		current.AllowSelfRegistration = *req.AllowSelfRegistration
	}

	updated, err := h.service.Update(c.Request.Context(), actor, current)
	if err != nil {
		c.JSON(settingsStatusCode(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": settingsToResponse(updated)})
}

// ListPermissions returns all component gates
func (h *SettingsHandler) ListPermissions(c *gin.Context) {
	perms, err := h.service.ListPermissions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]dto.PermissionResponse, 0, len(perms))
	for _, p := range perms {
		responses = append(responses, dto.PermissionResponse{
			Component: p.Component,
			MinRole:   string(p.MinRole),
		})
	}
	c.JSON(http.StatusOK, gin.H{"data": responses})
}

// SetPermission creates or updates a component gate
func (h *SettingsHandler) SetPermission(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.SetPermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := user.Role(req.MinRole)
	if !role.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role value"})
		return
	}

	perm, err := h.service.SetPermission(c.Request.Context(), actor, req.Component, role)
	if err != nil {
		c.JSON(settingsStatusCode(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dto.PermissionResponse{
		Component: perm.Component,
		MinRole:   string(perm.MinRole),
	}})
}

// RemovePermission deletes a component gate
func (h *SettingsHandler) RemovePermission(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	component := c.Param("component")
	if err := h.service.RemovePermission(c.Request.Context(), actor, component); err != nil {
		c.JSON(settingsStatusCode(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "permission removed"})
}

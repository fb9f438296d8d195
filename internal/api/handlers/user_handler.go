package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/api/dto"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/api/middleware"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/user"
)

// UserHandler handles profile administration
type UserHandler struct {
	service user.Service
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

func userStatusCode(err error) int {
	switch {
	case errors.Is(err, user.ErrProfileNotFound):
		return http.StatusNotFound
	case errors.Is(err, user.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, user.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, user.ErrEmailExists):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// ListProfiles returns all profiles, paginated
func (h *UserHandler) ListProfiles(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	filter := user.ProfileFilter{}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "0"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "50"))
	if roleParam := c.Query("role"); roleParam != "" {
		role := user.Role(roleParam)
		if !role.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role value"})
			return
		}
		filter.Role = &role
	}

	profiles, total, err := h.service.ListProfiles(c.Request.Context(), actor, filter)
	if err != nil {
		c.JSON(userStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	responses := make([]dto.ProfileResponse, 0, len(profiles))
	for i := range profiles {
		responses = append(responses, ProfileToResponse(&profiles[i]))
	}
	c.JSON(http.StatusOK, gin.H{"data": responses, "total": total})
}

// GetProfile returns a single profile by ID
func (h *UserHandler) GetProfile(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), id)
	if err != nil {
		c.JSON(userStatusCode(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ProfileToResponse(profile)})
}

// UpdateProfile edits a profile's name or password
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), actor, id, user.UpdateProfileInput{
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		c.JSON(userStatusCode(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ProfileToResponse(profile)})
}

// SetRole changes a user's role
func (h *UserHandler) SetRole(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	var req dto.SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := user.Role(req.Role)
	if !role.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role value"})
		return
	}

	profile, err := h.service.SetRole(c.Request.Context(), actor, id, role)
	if err != nil {
		c.JSON(userStatusCode(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ProfileToResponse(profile)})
}

// Ban blocks a user from signing in until the given time
func (h *UserHandler) Ban(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	var req dto.BanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.service.Ban(c.Request.Context(), actor, id, req.Until)
	if err != nil {
		c.JSON(userStatusCode(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ProfileToResponse(profile)})
}

// Unban lifts a ban
func (h *UserHandler) Unban(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	profile, err := h.service.Unban(c.Request.Context(), actor, id)
	if err != nil {
		c.JSON(userStatusCode(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ProfileToResponse(profile)})
}

// DeleteProfile removes an account
func (h *UserHandler) DeleteProfile(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	if err := h.service.DeleteProfile(c.Request.Context(), actor, id); err != nil {
		c.JSON(userStatusCode(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile deleted"})
}

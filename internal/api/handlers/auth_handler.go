package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/api/dto"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/api/middleware"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/settings"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/user"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/pkg/config"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/pkg/security/auth"
)

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	users    user.Service
	settings settings.Service
	auth     config.AuthConfig
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(users user.Service, settingsSvc settings.Service, authCfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{users: users, settings: settingsSvc, auth: authCfg}
}

// Register creates a new account. The first account ever registered becomes
// the superadmin; afterwards self-registration can be switched off in the
// system settings.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sys, err := h.settings.Get(c.Request.Context())
	if err == nil && !sys.AllowSelfRegistration {
		c.JSON(http.StatusForbidden, gin.H{"error": "self registration is disabled"})
		return
	}

	profile, err := h.users.Register(c.Request.Context(), user.RegisterInput{
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, user.ErrEmailExists):
			status = http.StatusConflict
		case errors.Is(err, user.ErrInvalidInput):
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	token, err := auth.GenerateToken(profile.ID, profile.Email, string(profile.Role),
		h.auth.JWTSecret, h.auth.JWTIssuer, h.auth.JWTExpiryHours)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": dto.AuthResponse{
		Token: token,
		User:  ProfileToResponse(profile),
	}})
}

// Login authenticates by email and password
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		status := http.StatusUnauthorized
		if errors.Is(err, user.ErrUserBanned) {
			status = http.StatusForbidden
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	token, err := auth.GenerateToken(profile.ID, profile.Email, string(profile.Role),
		h.auth.JWTSecret, h.auth.JWTIssuer, h.auth.JWTExpiryHours)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.AuthResponse{
		Token: token,
		User:  ProfileToResponse(profile),
	}})
}

// Logout blacklists the current token until its natural expiry
func (h *AuthHandler) Logout(c *gin.Context) {
	token, ok := middleware.GetToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	expiry := time.Now().Add(time.Duration(h.auth.JWTExpiryHours) * time.Hour)
	auth.GetTokenBlacklist().AddToBlacklist(token, expiry)

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the authenticated caller's profile
func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	profile, err := h.users.GetProfile(c.Request.Context(), actor.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": ProfileToResponse(profile)})
}

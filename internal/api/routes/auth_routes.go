package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/api/handlers"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/api/middleware"
)

// AuthRoutes handles the setup of authentication routes
type AuthRoutes struct {
	handler *handlers.AuthHandler
	authMW  gin.HandlerFunc
}

// NewAuthRoutes creates a new AuthRoutes instance
func NewAuthRoutes(handler *handlers.AuthHandler, authMW gin.HandlerFunc) *AuthRoutes {
	return &AuthRoutes{handler: handler, authMW: authMW}
}

// RegisterRoutes registers all authentication routes
func (r *AuthRoutes) RegisterRoutes(router *gin.Engine) {
	metrics := middleware.NewMetricsMiddleware()

	authGroup := router.Group("/api/auth")
	authGroup.Use(metrics.CollectMetrics())

	authGroup.POST("/register", r.handler.Register)
	authGroup.POST("/login", r.handler.Login)

	authGroup.POST("/logout", r.authMW, r.handler.Logout)
	authGroup.GET("/me", r.authMW, r.handler.Me)
}

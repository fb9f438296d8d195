package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/api/handlers"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/api/middleware"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/user"
)

// SettingsRoutes handles the setup of system settings routes
type SettingsRoutes struct {
	handler *handlers.SettingsHandler
	authMW  gin.HandlerFunc
}

// NewSettingsRoutes creates a new SettingsRoutes instance
func NewSettingsRoutes(handler *handlers.SettingsHandler, authMW gin.HandlerFunc) *SettingsRoutes {
	return &SettingsRoutes{handler: handler, authMW: authMW}
}

// RegisterRoutes registers all settings routes
func (r *SettingsRoutes) RegisterRoutes(router *gin.Engine) {
	metrics := middleware.NewMetricsMiddleware()

	settingsGroup := router.Group("/api/settings")
	settingsGroup.Use(r.authMW)
	settingsGroup.Use(metrics.CollectMetrics())

	settingsGroup.GET("", r.handler.GetSettings)
	settingsGroup.PUT("", middleware.RequireRole(user.RoleSuperadmin), r.handler.UpdateSettings)

	settingsGroup.GET("/permissions", r.handler.ListPermissions)
	settingsGroup.PUT("/permissions", middleware.RequireRole(user.RoleSuperadmin), r.handler.SetPermission)
	settingsGroup.DELETE("/permissions/:component", middleware.RequireRole(user.RoleSuperadmin), r.handler.RemovePermission)
}

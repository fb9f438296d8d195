package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/api/handlers"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/api/middleware"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/user"
)

// BackupRoutes handles the setup of backup and restore routes
type BackupRoutes struct {
	handler *handlers.BackupHandler
	authMW  gin.HandlerFunc
}

// NewBackupRoutes creates a new BackupRoutes instance
func NewBackupRoutes(handler *handlers.BackupHandler, authMW gin.HandlerFunc) *BackupRoutes {
	return &BackupRoutes{handler: handler, authMW: authMW}
}

// RegisterRoutes registers all backup routes. The service re-checks the
// superadmin requirement before touching any store.
func (r *BackupRoutes) RegisterRoutes(router *gin.Engine) {
	metrics := middleware.NewMetricsMiddleware()

	adminGroup := router.Group("/api/admin")
	adminGroup.Use(r.authMW)
	adminGroup.Use(middleware.RequireRole(user.RoleSuperadmin))
	adminGroup.Use(metrics.CollectMetrics())

	adminGroup.POST("/backup", r.handler.CreateBackup)
	adminGroup.POST("/restore", r.handler.RestoreBackup)
}

package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/api/handlers"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/api/middleware"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/user"
)

// ObjectiveRoutes handles the setup of objective and progress update routes
type ObjectiveRoutes struct {
	handler *handlers.ObjectiveHandler
	authMW  gin.HandlerFunc
}

// NewObjectiveRoutes creates a new ObjectiveRoutes instance
func NewObjectiveRoutes(handler *handlers.ObjectiveHandler, authMW gin.HandlerFunc) *ObjectiveRoutes {
	return &ObjectiveRoutes{handler: handler, authMW: authMW}
}

// RegisterRoutes registers all objective routes
func (r *ObjectiveRoutes) RegisterRoutes(router *gin.Engine) {
	metrics := middleware.NewMetricsMiddleware()

	objectives := router.Group("/api/objectives")
	objectives.Use(r.authMW)
	objectives.Use(metrics.CollectMetrics())

	objectives.GET("", r.handler.ListObjectives)
	objectives.POST("", r.handler.CreateObjective)
	objectives.GET("/:id", r.handler.GetObjective)
	objectives.PUT("/:id", r.handler.UpdateObjective)
	objectives.DELETE("/:id", middleware.RequireRole(user.RoleAdmin), r.handler.DeleteObjective)

	objectives.POST("/:id/updates", r.handler.CreateUpdate)
	objectives.GET("/:id/updates", r.handler.ListUpdates)

	// Update edits address the update directly, not through its objective
	updates := router.Group("/api/updates")
	updates.Use(r.authMW)
	updates.Use(metrics.CollectMetrics())

	updates.PUT("/:update_id", r.handler.EditUpdate)
	updates.DELETE("/:update_id", middleware.RequireRole(user.RoleAdmin), r.handler.DeleteUpdate)
}

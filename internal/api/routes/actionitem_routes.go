package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/api/handlers"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/api/middleware"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/user"
)

// ActionItemRoutes handles the setup of action item routes
type ActionItemRoutes struct {
	handler *handlers.ActionItemHandler
	authMW  gin.HandlerFunc
}

// NewActionItemRoutes creates a new ActionItemRoutes instance
func NewActionItemRoutes(handler *handlers.ActionItemHandler, authMW gin.HandlerFunc) *ActionItemRoutes {
	return &ActionItemRoutes{handler: handler, authMW: authMW}
}

// RegisterRoutes registers all action item routes
func (r *ActionItemRoutes) RegisterRoutes(router *gin.Engine) {
	metrics := middleware.NewMetricsMiddleware()

	items := router.Group("/api/action-items")
	items.Use(r.authMW)
	items.Use(metrics.CollectMetrics())

	items.GET("", r.handler.ListItems)
	items.POST("", middleware.RequireRole(user.RoleAdmin), r.handler.CreateItem)
	items.GET("/:id", r.handler.GetItem)
	items.PUT("/:id", middleware.RequireRole(user.RoleAdmin), r.handler.UpdateItem)
	items.DELETE("/:id", middleware.RequireRole(user.RoleAdmin), r.handler.DeleteItem)

	items.POST("/:id/close", r.handler.CloseItem)
	items.POST("/:id/verify", r.handler.VerifyItem)
}

package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/api/handlers"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/api/middleware"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/user"
)

// UserRoutes handles the setup of profile administration routes
type UserRoutes struct {
	handler *handlers.UserHandler
	authMW  gin.HandlerFunc
}

// NewUserRoutes creates a new UserRoutes instance
func NewUserRoutes(handler *handlers.UserHandler, authMW gin.HandlerFunc) *UserRoutes {
	return &UserRoutes{handler: handler, authMW: authMW}
}

// RegisterRoutes registers all user administration routes
func (r *UserRoutes) RegisterRoutes(router *gin.Engine) {
	metrics := middleware.NewMetricsMiddleware()

	users := router.Group("/api/users")
	users.Use(r.authMW)
	users.Use(metrics.CollectMetrics())

	users.GET("", middleware.RequireRole(user.RoleAdmin), r.handler.ListProfiles)
	users.GET("/:id", r.handler.GetProfile)
	users.PUT("/:id", r.handler.UpdateProfile)

	users.PATCH("/:id/role", middleware.RequireRole(user.RoleSuperadmin), r.handler.SetRole)
	users.POST("/:id/ban", middleware.RequireRole(user.RoleAdmin), r.handler.Ban)
	users.DELETE("/:id/ban", middleware.RequireRole(user.RoleAdmin), r.handler.Unban)
	users.DELETE("/:id", middleware.RequireRole(user.RoleSuperadmin), r.handler.DeleteProfile)
}

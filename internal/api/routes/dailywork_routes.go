package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/api/handlers"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/api/middleware"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/user"
)

// DailyWorkRoutes handles the setup of daily work log routes
type DailyWorkRoutes struct {
	handler *handlers.DailyWorkHandler
	authMW  gin.HandlerFunc
}

// NewDailyWorkRoutes creates a new DailyWorkRoutes instance
func NewDailyWorkRoutes(handler *handlers.DailyWorkHandler, authMW gin.HandlerFunc) *DailyWorkRoutes {
	return &DailyWorkRoutes{handler: handler, authMW: authMW}
}

// RegisterRoutes registers all daily work routes
func (r *DailyWorkRoutes) RegisterRoutes(router *gin.Engine) {
	metrics := middleware.NewMetricsMiddleware()

	work := router.Group("/api/daily-work")
	work.Use(r.authMW)
	work.Use(metrics.CollectMetrics())

	work.POST("", r.handler.SubmitEntry)
	work.GET("", r.handler.ListEntries)
	work.PATCH("/:id/comment", middleware.RequireRole(user.RoleAdmin), r.handler.CommentEntry)
	work.DELETE("/:id", r.handler.DeleteEntry)
}

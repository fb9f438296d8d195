package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/api/handlers"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/api/middleware"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/user"
)

// ReportRoutes handles the setup of dashboard and report routes
type ReportRoutes struct {
	handler *handlers.ReportHandler
	authMW  gin.HandlerFunc
}

// NewReportRoutes creates a new ReportRoutes instance
func NewReportRoutes(handler *handlers.ReportHandler, authMW gin.HandlerFunc) *ReportRoutes {
	return &ReportRoutes{handler: handler, authMW: authMW}
}

// RegisterRoutes registers all report routes
func (r *ReportRoutes) RegisterRoutes(router *gin.Engine) {
	metrics := middleware.NewMetricsMiddleware()

	reports := router.Group("/api/reports")
	reports.Use(r.authMW)
	reports.Use(middleware.RequireRole(user.RoleAdmin))
	reports.Use(metrics.CollectMetrics())

	reports.GET("/dashboard", r.handler.Dashboard)
	reports.GET("/progress", r.handler.ProgressReport)
	reports.GET("/progress.csv", r.handler.ProgressReportCSV)
}

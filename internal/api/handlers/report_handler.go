package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/api/middleware"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/report"
)

// ReportHandler handles the dashboard summary and the progress report export
type ReportHandler struct {
	service report.Service
}

// NewReportHandler creates a new ReportHandler instance
func NewReportHandler(service report.Service) *ReportHandler {
	return &ReportHandler{service: service}
}

func reportStatusCode(err error) int {
	if errors.Is(err, report.ErrForbidden) {
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// Dashboard returns the aggregate summary for the admin dashboard
func (h *ReportHandler) Dashboard(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	summary, err := h.service.Dashboard(c.Request.Context(), actor)
	if err != nil {
		c.JSON(reportStatusCode(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": summary})
}

// ProgressReport returns the per-objective progress rows as JSON
func (h *ReportHandler) ProgressReport(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	rows, err := h.service.ProgressRows(c.Request.Context(), actor)
	if err != nil {
		c.JSON(reportStatusCode(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

// ProgressReportCSV returns the progress report as a CSV download
func (h *ReportHandler) ProgressReportCSV(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	csvBytes, err := h.service.ProgressCSV(c.Request.Context(), actor)
	if err != nil {
		c.JSON(reportStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="objective-progress.csv"`)
	c.Data(http.StatusOK, "text/csv", csvBytes)
}

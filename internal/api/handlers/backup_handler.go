package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/api/dto"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/api/middleware"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/backup"
)

// BackupHandler handles full-database backup and restore
type BackupHandler struct {
	service backup.Service
}

// NewBackupHandler creates a new BackupHandler instance
func NewBackupHandler(service backup.Service) *BackupHandler {
	return &BackupHandler{service: service}
}

func backupStatusCode(err error) int {
	switch {
	case errors.Is(err, backup.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, backup.ErrInvalidBackup), errors.Is(err, backup.ErrUnknownPlatform):
		return http.StatusBadRequest
	case errors.Is(err, backup.ErrPlatformUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// CreateBackup exports every table as a single downloadable JSON document
func (h *BackupHandler) CreateBackup(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	doc, err := h.service.Backup(c.Request.Context(), actor)
	if err != nil {
		c.JSON(backupStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	filename := fmt.Sprintf("backup-%s.json", doc.Timestamp)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.JSON(http.StatusOK, doc)
}

// RestoreBackup wipes and reloads the selected store from an uploaded
// backup document
func (h *BackupHandler) RestoreBackup(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.RestoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.service.Restore(c.Request.Context(), actor, &req.Backup, req.Platform)
	if err != nil {
		c.JSON(backupStatusCode(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": report})
}

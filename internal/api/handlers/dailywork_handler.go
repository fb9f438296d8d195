package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/api/dto"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/api/middleware"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/dailywork"
)

// DailyWorkHandler handles daily work log entries
type DailyWorkHandler struct {
	service dailywork.Service
}

// NewDailyWorkHandler creates a new DailyWorkHandler instance
func NewDailyWorkHandler(service dailywork.Service) *DailyWorkHandler {
	return &DailyWorkHandler{service: service}
}

func dailyWorkStatusCode(err error) int {
	switch {
	case errors.Is(err, dailywork.ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, dailywork.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, dailywork.ErrInvalidInput):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// SubmitEntry logs, or overwrites, the caller's entry for a day
func (h *DailyWorkHandler) SubmitEntry(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.UpsertDailyWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.service.Submit(c.Request.Context(), actor, dailywork.UpsertEntryInput{
		WorkDate:    req.WorkDate,
		Description: req.Description,
	})
	if err != nil {
		c.JSON(dailyWorkStatusCode(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": DailyWorkToResponse(entry)})
}

// ListEntries returns work log entries. Regular users only see their own.
func (h *DailyWorkHandler) ListEntries(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	filter := dailywork.EntryFilter{}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "0"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "50"))

	if userParam := c.Query("user_id"); userParam != "" {
		userID, err := uuid.Parse(userParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
			return
		}
		filter.UserID = &userID
	}
	if fromParam := c.Query("from"); fromParam != "" {
		from, err := time.Parse("2006-01-02", fromParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
			return
		}
		filter.From = &from
	}
	if toParam := c.Query("to"); toParam != "" {
		to, err := time.Parse("2006-01-02", toParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
			return
		}
		filter.To = &to
	}

	entries, total, err := h.service.List(c.Request.Context(), actor, filter)
	if err != nil {
		c.JSON(dailyWorkStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	responses := make([]dto.DailyWorkResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, DailyWorkToResponse(&entries[i]))
	}
	c.JSON(http.StatusOK, gin.H{"data": responses, "total": total})
}

// CommentEntry attaches an admin remark to an entry
func (h *DailyWorkHandler) CommentEntry(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry ID"})
		return
	}

	var req dto.CommentDailyWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.service.Comment(c.Request.Context(), actor, id, req.Comment)
	if err != nil {
		c.JSON(dailyWorkStatusCode(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": DailyWorkToResponse(entry)})
}

// DeleteEntry removes an entry
func (h *DailyWorkHandler) DeleteEntry(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		c.JSON(dailyWorkStatusCode(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "entry deleted"})
}

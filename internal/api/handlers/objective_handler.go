package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/api/dto"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/api/middleware"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/objective"
)

// ObjectiveHandler handles objectives and their progress updates
type ObjectiveHandler struct {
	service objective.Service
}

// NewObjectiveHandler creates a new ObjectiveHandler instance
func NewObjectiveHandler(service objective.Service) *ObjectiveHandler {
	return &ObjectiveHandler{service: service}
}

func objectiveStatusCode(err error) int {
	switch {
	case errors.Is(err, objective.ErrObjectiveNotFound), errors.Is(err, objective.ErrUpdateNotFound):
		return http.StatusNotFound
	case errors.Is(err, objective.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, objective.ErrInvalidInput), errors.Is(err, objective.ErrInvalidTarget):
		return http.StatusBadRequest
	case errors.Is(err, objective.ErrDeadlinePassed),
		errors.Is(err, objective.ErrUpdatesDisabled),
		errors.Is(err, objective.ErrMaintenanceMode):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// CreateObjective creates a new objective
func (h *ObjectiveHandler) CreateObjective(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.CreateObjectiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := objective.CreateObjectiveInput{
		Title:         req.Title,
		Description:   req.Description,
		Weightage:     req.Weightage,
		NumActivities: req.NumActivities,
		TargetDate:    req.TargetDate,
	}
	if req.OwnerID != nil {
		input.OwnerID = *req.OwnerID
	}

	created, err := h.service.Create(c.Request.Context(), actor, input)
	if err != nil {
		c.JSON(objectiveStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	withProgress, err := h.service.Get(c.Request.Context(), created.ID)
	if err != nil {
		c.JSON(objectiveStatusCode(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": ObjectiveToResponse(*withProgress)})
}

// GetObjective returns one objective with computed progress
func (h *ObjectiveHandler) GetObjective(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid objective ID"})
		return
	}

	found, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(objectiveStatusCode(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ObjectiveToResponse(*found)})
}

// ListObjectives returns objectives with computed progress, paginated
func (h *ObjectiveHandler) ListObjectives(c *gin.Context) {
	filter := objective.ObjectiveFilter{}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "0"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "50"))
	if ownerParam := c.Query("owner_id"); ownerParam != "" {
		ownerID, err := uuid.Parse(ownerParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid owner ID"})
			return
		}
		filter.OwnerID = &ownerID
	}

	objectives, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(objectiveStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	responses := make([]dto.ObjectiveResponse, 0, len(objectives))
	for _, o := range objectives {
		responses = append(responses, ObjectiveToResponse(o))
	}
	c.JSON(http.StatusOK, gin.H{"data": responses, "total": total})
}

// UpdateObjective edits an objective's definition
func (h *ObjectiveHandler) UpdateObjective(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid objective ID"})
		return
	}

	var req dto.UpdateObjectiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), actor, id, objective.UpdateObjectiveInput{
		Title:         req.Title,
		Description:   req.Description,
		Weightage:     req.Weightage,
		NumActivities: req.NumActivities,
		OwnerID:       req.OwnerID,
		TargetDate:    req.TargetDate,
	})
	if err != nil {
		c.JSON(objectiveStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	withProgress, err := h.service.Get(c.Request.Context(), updated.ID)
	if err != nil {
		c.JSON(objectiveStatusCode(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ObjectiveToResponse(*withProgress)})
}

// DeleteObjective removes an objective and all its updates
func (h *ObjectiveHandler) DeleteObjective(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid objective ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		c.JSON(objectiveStatusCode(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "objective deleted"})
}

// CreateUpdate logs a progress update against an objective
func (h *ObjectiveHandler) CreateUpdate(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	objectiveID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid objective ID"})
		return
	}

	var req dto.CreateUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.CreateUpdate(c.Request.Context(), actor, objectiveID, objective.CreateUpdateInput{
		AchievedCount: req.AchievedCount,
		UpdateDate:    req.UpdateDate,
		Efficiency:    req.Efficiency,
		Photos:        req.Photos,
		Comments:      req.Comments,
	})
	if err != nil {
		c.JSON(objectiveStatusCode(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": UpdateToResponse(created)})
}

// ListUpdates returns an objective's updates in date order
func (h *ObjectiveHandler) ListUpdates(c *gin.Context) {
	objectiveID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid objective ID"})
		return
	}

	updates, err := h.service.ListUpdates(c.Request.Context(), objectiveID)
	if err != nil {
		c.JSON(objectiveStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	responses := make([]dto.UpdateResponse, 0, len(updates))
	for i := range updates {
		responses = append(responses, UpdateToResponse(&updates[i]))
	}
	c.JSON(http.StatusOK, gin.H{"data": responses})
}

// EditUpdate corrects a previously logged update
func (h *ObjectiveHandler) EditUpdate(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	updateID, err := uuid.Parse(c.Param("update_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update ID"})
		return
	}

	var req dto.EditUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	edited, err := h.service.EditUpdate(c.Request.Context(), actor, updateID, objective.EditUpdateInput{
		AchievedCount: req.AchievedCount,
		UpdateDate:    req.UpdateDate,
		Efficiency:    req.Efficiency,
		Comments:      req.Comments,
	})
	if err != nil {
		c.JSON(objectiveStatusCode(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": UpdateToResponse(edited)})
}

// DeleteUpdate removes a logged update
func (h *ObjectiveHandler) DeleteUpdate(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	updateID, err := uuid.Parse(c.Param("update_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update ID"})
		return
	}

	if err := h.service.DeleteUpdate(c.Request.Context(), actor, updateID); err != nil {
		c.JSON(objectiveStatusCode(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "update deleted"})
}

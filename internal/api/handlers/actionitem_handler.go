package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/api/dto"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/api/middleware"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/actionitem"
)

// ActionItemHandler handles safety action items and their lifecycle
type ActionItemHandler struct {
	service actionitem.Service
}

// NewActionItemHandler creates a new ActionItemHandler instance
func NewActionItemHandler(service actionitem.Service) *ActionItemHandler {
	return &ActionItemHandler{service: service}
}

func itemStatusCode(err error) int {
	switch {
	case errors.Is(err, actionitem.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, actionitem.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, actionitem.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, actionitem.ErrInvalidTransition), errors.Is(err, actionitem.ErrNoVerifier):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// CreateItem raises a new action item
func (h *ActionItemHandler) CreateItem(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.CreateActionItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	priority := actionitem.Priority(req.Priority)
	if req.Priority != "" && !priority.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority value"})
		return
	}

	created, err := h.service.Create(c.Request.Context(), actor, actionitem.CreateItemInput{
		Title:       req.Title,
		Description: req.Description,
		TargetDate:  req.TargetDate,
		Priority:    priority,
		AssigneeID:  req.AssigneeID,
		VerifierID:  req.VerifierID,
	})
	if err != nil {
		c.JSON(itemStatusCode(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": ActionItemToResponse(created)})
}

// GetItem returns an action item with its latest closure and verification
func (h *ActionItemHandler) GetItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid action item ID"})
		return
	}

	details, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(itemStatusCode(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ItemDetailsToResponse(details)})
}

// ListItems returns action items, paginated and filterable
func (h *ActionItemHandler) ListItems(c *gin.Context) {
	filter := actionitem.ItemFilter{}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "0"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "50"))

	if assigneeParam := c.Query("assignee_id"); assigneeParam != "" {
		assigneeID, err := uuid.Parse(assigneeParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assignee ID"})
			return
		}
		filter.AssigneeID = &assigneeID
	}
	if statusParam := c.Query("status"); statusParam != "" {
		status := actionitem.Status(statusParam)
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status value"})
			return
		}
		filter.Status = &status
	}
	if priorityParam := c.Query("priority"); priorityParam != "" {
		priority := actionitem.Priority(priorityParam)
		if !priority.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority value"})
			return
		}
		filter.Priority = &priority
	}

	items, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(itemStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	responses := make([]dto.ActionItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, ActionItemToResponse(&items[i]))
	}
	c.JSON(http.StatusOK, gin.H{"data": responses, "total": total})
}

// UpdateItem edits an action item's definition
func (h *ActionItemHandler) UpdateItem(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid action item ID"})
		return
	}

	var req dto.UpdateActionItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := actionitem.UpdateItemInput{
		Title:       req.Title,
		Description: req.Description,
		TargetDate:  req.TargetDate,
		AssigneeID:  req.AssigneeID,
		VerifierID:  req.VerifierID,
	}
	if req.Priority != nil {
		priority := actionitem.Priority(*req.Priority)
		if !priority.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority value"})
			return
		}
		input.Priority = &priority
	}

	updated, err := h.service.Update(c.Request.Context(), actor, id, input)
	if err != nil {
		c.JSON(itemStatusCode(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ActionItemToResponse(updated)})
}

// CloseItem records a closure attempt. With a verifier assigned the item
// moves to pending verification, otherwise it closes directly.
func (h *ActionItemHandler) CloseItem(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid action item ID"})
		return
	}

	var req dto.CloseActionItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	closed, err := h.service.Close(c.Request.Context(), actor, id, actionitem.CloseItemInput{
		ClosureText: req.ClosureText,
		MediaURLs:   req.MediaURLs,
	})
	if err != nil {
		c.JSON(itemStatusCode(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ActionItemToResponse(closed)})
}

// VerifyItem approves or rejects a pending closure
func (h *ActionItemHandler) VerifyItem(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid action item ID"})
		return
	}

	var req dto.VerifyActionItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	verified, err := h.service.Verify(c.Request.Context(), actor, id, actionitem.VerifyItemInput{
		Approved: req.Approved,
		Comments: req.Comments,
	})
	if err != nil {
		c.JSON(itemStatusCode(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ActionItemToResponse(verified)})
}

// DeleteItem removes an action item
func (h *ActionItemHandler) DeleteItem(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid action item ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		c.JSON(itemStatusCode(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "action item deleted"})
}

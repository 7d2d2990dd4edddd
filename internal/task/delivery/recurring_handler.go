package delivery

import (
	"errors"
	"log"
	"net/http"

	"missioncontrol-backend/internal/task/domain"
	"missioncontrol-backend/internal/task/usecase"

	"github.com/gin-gonic/gin"
)

// RecurringTaskHandler handles schedule template HTTP requests
type RecurringTaskHandler struct {
	recurringUsecase usecase.RecurringTaskUsecase
}

// NewRecurringTaskHandler creates a new RecurringTaskHandler
func NewRecurringTaskHandler(recurringUsecase usecase.RecurringTaskUsecase) *RecurringTaskHandler {
	return &RecurringTaskHandler{
		recurringUsecase: recurringUsecase,
	}
}

// GetRecurringTasks returns all schedule templates, newest first
// GET /api/recurring
func (h *RecurringTaskHandler) GetRecurringTasks(c *gin.Context) {
	templates, err := h.recurringUsecase.GetRecurringTasks()
	if err != nil {
		log.Printf("[Recurring] Error fetching templates: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recurring tasks"})
		return
	}

	if templates == nil {
		templates = []*domain.RecurringTask{}
	}
	c.JSON(http.StatusOK, templates)
}

// CreateRecurringTask creates a schedule template
// POST /api/recurring
func (h *RecurringTaskHandler) CreateRecurringTask(c *gin.Context) {
	var req usecase.RecurringTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	template, err := h.recurringUsecase.CreateRecurringTask(req)
	if err != nil {
		log.Printf("[Recurring] Error creating template: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recurring task"})
		return
	}

	c.JSON(http.StatusCreated, template)
}

// UpdateRecurringTask replaces the writable fields of a template
// PUT /api/recurring/:id
func (h *RecurringTaskHandler) UpdateRecurringTask(c *gin.Context) {
	templateID := c.Param("id")

	var req usecase.RecurringTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	template, err := h.recurringUsecase.UpdateRecurringTask(templateID, req)
	if err != nil {
		if errors.Is(err, domain.ErrRecurringNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recurring task not found"})
			return
		}
		log.Printf("[Recurring] Error updating template %s: %v", templateID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recurring task"})
		return
	}

	c.JSON(http.StatusOK, template)
}

// DeleteRecurringTask removes a template (idempotent)
// DELETE /api/recurring/:id
func (h *RecurringTaskHandler) DeleteRecurringTask(c *gin.Context) {
	templateID := c.Param("id")

	if err := h.recurringUsecase.DeleteRecurringTask(templateID); err != nil {
		log.Printf("[Recurring] Error deleting template %s: %v", templateID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recurring task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shoplift/autopilot/internal/domain"
	"github.com/shoplift/autopilot/internal/service"
)

// TaskHandler handles task retrieval and manual confirmation endpoints.
type TaskHandler struct {
	manager *service.ProductManager
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(manager *service.ProductManager) *TaskHandler {
	return &TaskHandler{manager: manager}
}

// GetTask handles GET /api/v1/tasks/:id.
func (h *TaskHandler) GetTask(c *gin.Context) {
	detail, err := h.manager.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Confirm handles POST /api/v1/tasks/:id/confirm. Structural failures
// map to client errors: unknown task to 404, a task outside the
// manual-confirmation gate to 400.
func (h *TaskHandler) Confirm(c *gin.Context) {
	detail, err := h.manager.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		case errors.Is(err, domain.ErrInvalidTaskState):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, detail)
}

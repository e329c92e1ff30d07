package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apierrors "github.com/openkanban/kanban/internal/errors"
	"github.com/openkanban/kanban/internal/models"
	"github.com/openkanban/kanban/internal/services"
)

// TaskHandler coordinates task-level HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// AddTask creates a task inside a column.
func (h *TaskHandler) AddTask(c *gin.Context) {
	type AddTaskRequest struct {
		Content string `json:"content" binding:"required"`
	}

	var req AddTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Content required")
		return
	}

	task, err := h.taskService.Add(c.Param("id"), req.Content)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// UpdateTask applies a partial update to a task.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	type UpdateTaskRequest struct {
		Content     *string              `json:"content"`
		Description *string              `json:"description"`
		Priority    *models.TaskPriority `json:"priority"`
		DueDate     *time.Time           `json:"due_date"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Update(c.Param("id"), services.UpdateTaskInput{
		Content:     req.Content,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask removes a task and detaches it from any column.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.taskService.Delete(c.Param("id")); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

// MoveTask relocates a task to a position in a column.
func (h *TaskHandler) MoveTask(c *gin.Context) {
	type MoveTaskRequest struct {
		TaskID         string `json:"task_id" binding:"required"`
		TargetColumnID string `json:"target_column_id" binding:"required"`
		NewIndex       *int   `json:"new_index" binding:"required"`
	}

	var req MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Missing required fields")
		return
	}

	if err := h.taskService.Move(req.TaskID, req.TargetColumnID, *req.NewIndex); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task moved successfully"})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrContentRequired),
		errors.Is(err, services.ErrInvalidPriority):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrColumnNotFound),
		errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/openkanban/kanban/internal/errors"
	"github.com/openkanban/kanban/internal/middleware"
	"github.com/openkanban/kanban/internal/services"
)

// ColumnHandler coordinates column-level HTTP handlers.
type ColumnHandler struct {
	columnService *services.ColumnService
}

// NewColumnHandler creates a new ColumnHandler.
func NewColumnHandler(columnService *services.ColumnService) *ColumnHandler {
	return &ColumnHandler{
		columnService: columnService,
	}
}

// CreateColumn creates a column and appends it to the caller's board.
func (h *ColumnHandler) CreateColumn(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateColumnRequest struct {
		Title string `json:"title" binding:"required"`
	}

	var req CreateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Title is required")
		return
	}

	column, err := h.columnService.Create(c.Param("id"), userID, req.Title)
	if err != nil {
		respondColumnError(c, err)
		return
	}

	c.JSON(http.StatusCreated, column)
}

// UpdateColumn renames a column.
func (h *ColumnHandler) UpdateColumn(c *gin.Context) {
	type UpdateColumnRequest struct {
		Title string `json:"title" binding:"required"`
	}

	var req UpdateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Title is required")
		return
	}

	column, err := h.columnService.Update(c.Param("id"), req.Title)
	if err != nil {
		respondColumnError(c, err)
		return
	}

	c.JSON(http.StatusOK, column)
}

// DeleteColumn removes a column and every task it references.
func (h *ColumnHandler) DeleteColumn(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.columnService.Delete(c.Param("id"), userID); err != nil {
		respondColumnError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Column deleted"})
}

func respondColumnError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrBoardNotFound),
		errors.Is(err, services.ErrColumnNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

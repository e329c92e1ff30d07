package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openkanban/kanban/internal/dto"
	apierrors "github.com/openkanban/kanban/internal/errors"
	"github.com/openkanban/kanban/internal/middleware"
	"github.com/openkanban/kanban/internal/services"
)

// BoardHandler coordinates board-level HTTP handlers.
type BoardHandler struct {
	boardService *services.BoardService
}

// NewBoardHandler creates a new BoardHandler.
func NewBoardHandler(boardService *services.BoardService) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
	}
}

// ListBoards returns summaries of the caller's boards.
func (h *BoardHandler) ListBoards(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	summaries, err := h.boardService.List(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch boards")
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardSummaryDTOs(summaries))
}

// GetBoard returns one of the caller's boards with columns and tasks
// populated in stored order.
func (h *BoardHandler) GetBoard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	board, err := h.boardService.Get(c.Param("id"), userID)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardDTO(board))
}

// CreateBoard creates a board seeded with the default columns.
func (h *BoardHandler) CreateBoard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateBoardRequest struct {
		Title string `json:"title"`
	}

	// An empty or absent body is fine; the title defaults server-side.
	var req CreateBoardRequest
	_ = c.ShouldBindJSON(&req)

	board, err := h.boardService.Create(userID, req.Title)
	if err != nil {
		apierrors.InternalError(c, "Failed to create board")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCreatedBoardDTO(board))
}

// UpdateBoard applies a partial update (title and/or background).
func (h *BoardHandler) UpdateBoard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type UpdateBoardRequest struct {
		Title      *string `json:"title"`
		Background *string `json:"background"`
	}

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	board, err := h.boardService.Update(c.Param("id"), userID, services.UpdateBoardInput{
		Title:      req.Title,
		Background: req.Background,
	})
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCreatedBoardDTO(board))
}

// DeleteBoard cascades the delete to the board's columns and their tasks.
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.boardService.Delete(c.Param("id"), userID); err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Board deleted successfully"})
}

// ReorderColumns replaces the board's column order with the submitted list.
func (h *BoardHandler) ReorderColumns(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type ReorderRequest struct {
		NewColumnOrder []string `json:"new_column_order" binding:"required"`
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.boardService.ReorderColumns(c.Param("id"), userID, req.NewColumnOrder); err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Board reordered"})
}

func respondBoardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBoardNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/openkanban/kanban/internal/models"
	"github.com/openkanban/kanban/internal/repository"
)

var (
	ErrBoardNotFound = errors.New("board not found")
)

// DefaultBoardTitle is used when a board is created without a title.
const DefaultBoardTitle = "New Board"

// DefaultColumnTitles seed every new board, in display order.
var DefaultColumnTitles = []string{"To Do", "In Progress", "Done"}

// BoardService handles board business logic. All operations are scoped to
// the owning user; a board that exists but is owned by someone else behaves
// exactly like a missing one.
type BoardService struct {
	boardRepo  repository.BoardRepository
	columnRepo repository.ColumnRepository
	taskRepo   repository.TaskRepository
}

// NewBoardService creates a new BoardService
func NewBoardService(boardRepo repository.BoardRepository, columnRepo repository.ColumnRepository, taskRepo repository.TaskRepository) *BoardService {
	return &BoardService{
		boardRepo:  boardRepo,
		columnRepo: columnRepo,
		taskRepo:   taskRepo,
	}
}

// BoardSummary is the dashboard listing shape.
type BoardSummary struct {
	ID    string
	Title string
}

// PopulatedColumn is a column with its tasks resolved in stored order.
type PopulatedColumn struct {
	Column models.Column
	Tasks  []models.Task
}

// PopulatedBoard is a board with its columns and their tasks resolved in
// stored order.
type PopulatedBoard struct {
	Board   models.Board
	Columns []PopulatedColumn
}

// UpdateBoardInput represents a partial board update; nil fields are left
// unchanged.
type UpdateBoardInput struct {
	Title      *string
	Background *string
}

// List returns summaries of the boards owned by the user.
func (s *BoardService) List(userID string) ([]BoardSummary, error) {
	boards, err := s.boardRepo.ListByOwner(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}

	summaries := make([]BoardSummary, 0, len(boards))
	for _, board := range boards {
		summaries = append(summaries, BoardSummary{ID: board.ID, Title: board.Title})
	}
	return summaries, nil
}

// Get returns an owned board with columns and tasks populated in stored
// order. Ids that appear in an order list but no longer resolve are skipped.
func (s *BoardService) Get(boardID, userID string) (*PopulatedBoard, error) {
	board, err := s.boardRepo.FindByIDAndOwner(boardID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to find board: %w", err)
	}

	columns, err := s.columnRepo.FindByIDs(board.ColumnOrder)
	if err != nil {
		return nil, fmt.Errorf("failed to load columns: %w", err)
	}
	columnsByID := make(map[string]models.Column, len(columns))
	for _, column := range columns {
		columnsByID[column.ID] = column
	}

	populated := &PopulatedBoard{Board: *board}
	for _, columnID := range board.ColumnOrder {
		column, ok := columnsByID[columnID]
		if !ok {
			continue
		}

		tasks, err := s.taskRepo.FindByIDs(column.TaskIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load tasks: %w", err)
		}
		tasksByID := make(map[string]models.Task, len(tasks))
		for _, task := range tasks {
			tasksByID[task.ID] = task
		}

		ordered := make([]models.Task, 0, len(column.TaskIDs))
		for _, taskID := range column.TaskIDs {
			if task, ok := tasksByID[taskID]; ok {
				ordered = append(ordered, task)
			}
		}

		populated.Columns = append(populated.Columns, PopulatedColumn{
			Column: column,
			Tasks:  ordered,
		})
	}

	return populated, nil
}

// Create seeds a new board with the three default columns.
func (s *BoardService) Create(userID, title string) (*models.Board, error) {
	if strings.TrimSpace(title) == "" {
		title = DefaultBoardTitle
	}

	columns := make([]*models.Column, 0, len(DefaultColumnTitles))
	for _, columnTitle := range DefaultColumnTitles {
		columns = append(columns, &models.Column{
			Title:   columnTitle,
			TaskIDs: models.IDList{},
		})
	}

	board := &models.Board{
		UserID: userID,
		Title:  title,
	}

	if err := s.boardRepo.CreateWithColumns(board, columns); err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	return board, nil
}

// Update applies a partial update to an owned board.
func (s *BoardService) Update(boardID, userID string, input UpdateBoardInput) (*models.Board, error) {
	board, err := s.boardRepo.FindByIDAndOwner(boardID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to find board: %w", err)
	}

	if input.Title != nil {
		board.Title = *input.Title
	}
	if input.Background != nil {
		board.Background = *input.Background
	}

	if err := s.boardRepo.Update(board); err != nil {
		return nil, fmt.Errorf("failed to update board: %w", err)
	}

	return board, nil
}

// Delete removes an owned board, cascading to its columns and every task
// those columns reference.
func (s *BoardService) Delete(boardID, userID string) error {
	board, err := s.boardRepo.FindByIDAndOwner(boardID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBoardNotFound
		}
		return fmt.Errorf("failed to find board: %w", err)
	}

	columns, err := s.columnRepo.FindByIDs(board.ColumnOrder)
	if err != nil {
		return fmt.Errorf("failed to load columns: %w", err)
	}

	var taskIDs []string
	columnIDs := make([]string, 0, len(columns))
	for _, column := range columns {
		columnIDs = append(columnIDs, column.ID)
		taskIDs = append(taskIDs, column.TaskIDs...)
	}

	if err := s.boardRepo.DeleteCascade(board, columnIDs, taskIDs); err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}

	return nil
}

// ReorderColumns replaces an owned board's column order wholesale. The
// caller-supplied order is trusted verbatim.
func (s *BoardService) ReorderColumns(boardID, userID string, newOrder []string) error {
	board, err := s.boardRepo.FindByIDAndOwner(boardID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBoardNotFound
		}
		return fmt.Errorf("failed to find board: %w", err)
	}

	board.ColumnOrder = models.IDList(newOrder)
	if err := s.boardRepo.Update(board); err != nil {
		return fmt.Errorf("failed to reorder columns: %w", err)
	}

	return nil
}

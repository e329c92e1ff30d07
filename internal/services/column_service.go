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
	ErrColumnNotFound = errors.New("column not found")
	ErrTitleRequired  = errors.New("title is required")
)

// ColumnService handles column business logic.
type ColumnService struct {
	boardRepo  repository.BoardRepository
	columnRepo repository.ColumnRepository
	taskRepo   repository.TaskRepository
}

// NewColumnService creates a new ColumnService
func NewColumnService(boardRepo repository.BoardRepository, columnRepo repository.ColumnRepository, taskRepo repository.TaskRepository) *ColumnService {
	return &ColumnService{
		boardRepo:  boardRepo,
		columnRepo: columnRepo,
		taskRepo:   taskRepo,
	}
}

// Create creates a column and appends it to the owned board's order. The
// column is created before the board is checked; if the board is missing or
// not owned by the caller the column is left behind, matching the upstream
// behavior.
func (s *ColumnService) Create(boardID, userID, title string) (*models.Column, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}

	column := &models.Column{
		Title:   title,
		TaskIDs: models.IDList{},
	}
	if err := s.columnRepo.Create(column); err != nil {
		return nil, fmt.Errorf("failed to create column: %w", err)
	}

	if err := s.boardRepo.AppendColumn(boardID, userID, column.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to attach column to board: %w", err)
	}

	return column, nil
}

// Update renames a column. There is no ownership check at this layer: any
// authenticated caller may rename a column it knows the id of.
func (s *ColumnService) Update(columnID, title string) (*models.Column, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}

	column, err := s.columnRepo.FindByID(columnID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrColumnNotFound
		}
		return nil, fmt.Errorf("failed to find column: %w", err)
	}

	column.Title = title
	if err := s.columnRepo.Update(column); err != nil {
		return nil, fmt.Errorf("failed to update column: %w", err)
	}

	return column, nil
}

// Delete removes a column, the tasks it references, and its id from every
// board the caller owns. A second delete of the same id finds nothing and
// reports not found with no side effects.
func (s *ColumnService) Delete(columnID, userID string) error {
	column, err := s.columnRepo.FindByID(columnID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrColumnNotFound
		}
		return fmt.Errorf("failed to find column: %w", err)
	}

	if len(column.TaskIDs) > 0 {
		if err := s.taskRepo.DeleteByIDs(column.TaskIDs); err != nil {
			return fmt.Errorf("failed to delete column tasks: %w", err)
		}
	}

	if err := s.boardRepo.PullColumnFromOwned(userID, column.ID); err != nil {
		return fmt.Errorf("failed to detach column from board: %w", err)
	}

	if err := s.columnRepo.Delete(column.ID); err != nil {
		return fmt.Errorf("failed to delete column: %w", err)
	}

	return nil
}

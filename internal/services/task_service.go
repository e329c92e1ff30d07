package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/openkanban/kanban/internal/models"
	"github.com/openkanban/kanban/internal/repository"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrContentRequired = errors.New("content is required")
	ErrInvalidPriority = errors.New("priority must be Low, Medium or High")
)

// TaskService handles task business logic, including the positional move
// that backs drag-and-drop.
type TaskService struct {
	columnRepo repository.ColumnRepository
	taskRepo   repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(columnRepo repository.ColumnRepository, taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		columnRepo: columnRepo,
		taskRepo:   taskRepo,
	}
}

// UpdateTaskInput represents a partial task update; nil fields are left
// unchanged.
type UpdateTaskInput struct {
	Content     *string
	Description *string
	Priority    *models.TaskPriority
	DueDate     *time.Time
}

// Add creates a task and appends it to the column's order. If the column
// turns out not to exist the orphan task is deleted before reporting the
// failure.
func (s *TaskService) Add(columnID, content string) (*models.Task, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrContentRequired
	}

	task := &models.Task{Content: content}
	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	column, err := s.columnRepo.FindByID(columnID)
	if err != nil {
		// Compensate: do not leave an unreferenced task behind.
		_ = s.taskRepo.Delete(task.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrColumnNotFound
		}
		return nil, fmt.Errorf("failed to find column: %w", err)
	}

	column.TaskIDs = append(column.TaskIDs, task.ID)
	if err := s.columnRepo.Update(column); err != nil {
		_ = s.taskRepo.Delete(task.ID)
		return nil, fmt.Errorf("failed to attach task to column: %w", err)
	}

	return task, nil
}

// Update applies a partial update to a task.
func (s *TaskService) Update(taskID string, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Content != nil {
		if strings.TrimSpace(*input.Content) == "" {
			return nil, ErrContentRequired
		}
		task.Content = *input.Content
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// Delete removes a task and pulls its id from every column that references
// it. Normally that is exactly one column, but the sweep tolerates zero or
// several.
func (s *TaskService) Delete(taskID string) error {
	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	if err := s.columnRepo.RemoveTaskFromAll(taskID); err != nil {
		return fmt.Errorf("failed to detach task: %w", err)
	}

	return nil
}

// Move relocates a task to an arbitrary position in an arbitrary column.
// The task id is first removed from every column, so the move never needs
// to know the task's prior column. The index is clamped to the target
// column's bounds.
func (s *TaskService) Move(taskID, targetColumnID string, newIndex int) error {
	if err := s.columnRepo.RemoveTaskFromAll(taskID); err != nil {
		return fmt.Errorf("failed to detach task: %w", err)
	}

	column, err := s.columnRepo.FindByID(targetColumnID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrColumnNotFound
		}
		return fmt.Errorf("failed to find target column: %w", err)
	}

	column.TaskIDs = column.TaskIDs.Insert(taskID, newIndex)
	if err := s.columnRepo.Update(column); err != nil {
		return fmt.Errorf("failed to move task: %w", err)
	}

	return nil
}

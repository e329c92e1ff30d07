package repository

import (
	"github.com/openkanban/kanban/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id string) (*models.User, error)

	// FindByEmail finds a user by email (stored lowercase)
	FindByEmail(email string) (*models.User, error)
}

// BoardRepository defines the interface for board data access
type BoardRepository interface {
	// CreateWithColumns creates a board and its seed columns in one transaction
	CreateWithColumns(board *models.Board, columns []*models.Column) error

	// FindByIDAndOwner finds a board owned by the given user
	FindByIDAndOwner(id, userID string) (*models.Board, error)

	// ListByOwner lists all boards owned by the given user
	ListByOwner(userID string) ([]models.Board, error)

	// Update persists changes to a board
	Update(board *models.Board) error

	// AppendColumn appends a column id to an owned board's order
	AppendColumn(boardID, userID, columnID string) error

	// PullColumnFromOwned removes a column id from every board owned by the user
	PullColumnFromOwned(userID, columnID string) error

	// DeleteCascade deletes the board, the given columns, and the given tasks
	// in one transaction
	DeleteCascade(board *models.Board, columnIDs, taskIDs []string) error
}

// ColumnRepository defines the interface for column data access
type ColumnRepository interface {
	// Create creates a new column
	Create(column *models.Column) error

	// FindByID finds a column by ID
	FindByID(id string) (*models.Column, error)

	// FindByIDs finds all columns whose ids are in the given set
	FindByIDs(ids []string) ([]models.Column, error)

	// Update persists changes to a column
	Update(column *models.Column) error

	// Delete deletes a column
	Delete(id string) error

	// RemoveTaskFromAll removes a task id from every column that lists it
	RemoveTaskFromAll(taskID string) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id string) (*models.Task, error)

	// FindByIDs finds all tasks whose ids are in the given set
	FindByIDs(ids []string) ([]models.Task, error)

	// Update persists changes to a task
	Update(task *models.Task) error

	// Delete deletes a task
	Delete(id string) error

	// DeleteByIDs deletes all tasks whose ids are in the given set
	DeleteByIDs(ids []string) error
}

package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/openkanban/kanban/internal/models"
)

var (
	// ErrCreateBoard is returned when creating the board fails inside the seed transaction.
	ErrCreateBoard = errors.New("board repository: create board failed")
	// ErrCreateColumns is returned when creating the seed columns fails inside the seed transaction.
	ErrCreateColumns = errors.New("board repository: create columns failed")
)

// GormBoardRepository is a GORM implementation of BoardRepository
type GormBoardRepository struct {
	db *gorm.DB
}

// NewBoardRepository creates a new BoardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &GormBoardRepository{db: db}
}

// CreateWithColumns creates the seed columns and the board referencing them
// atomically.
func (r *GormBoardRepository) CreateWithColumns(board *models.Board, columns []*models.Column) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		order := make(models.IDList, 0, len(columns))
		for _, column := range columns {
			if err := tx.Create(column).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrCreateColumns, err)
			}
			order = append(order, column.ID)
		}

		board.ColumnOrder = order
		if err := tx.Create(board).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateBoard, err)
		}

		return nil
	})
}

// FindByIDAndOwner finds a board owned by the given user
func (r *GormBoardRepository) FindByIDAndOwner(id, userID string) (*models.Board, error) {
	var board models.Board
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&board).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// ListByOwner lists all boards owned by the given user
func (r *GormBoardRepository) ListByOwner(userID string) ([]models.Board, error) {
	var boards []models.Board
	if err := r.db.Where("user_id = ?", userID).Order("created_at").Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

// Update persists changes to a board
func (r *GormBoardRepository) Update(board *models.Board) error {
	return r.db.Save(board).Error
}

// AppendColumn appends a column id to an owned board's order. Returns
// gorm.ErrRecordNotFound if no board matches the id/owner pair.
func (r *GormBoardRepository) AppendColumn(boardID, userID, columnID string) error {
	var board models.Board
	if err := r.db.Where("id = ? AND user_id = ?", boardID, userID).First(&board).Error; err != nil {
		return err
	}

	board.ColumnOrder = append(board.ColumnOrder, columnID)
	return r.db.Save(&board).Error
}

// PullColumnFromOwned removes a column id from every board owned by the user
func (r *GormBoardRepository) PullColumnFromOwned(userID, columnID string) error {
	var boards []models.Board
	if err := r.db.Where("user_id = ?", userID).Find(&boards).Error; err != nil {
		return err
	}

	for i := range boards {
		order, removed := boards[i].ColumnOrder.Remove(columnID)
		if !removed {
			continue
		}
		boards[i].ColumnOrder = order
		if err := r.db.Save(&boards[i]).Error; err != nil {
			return err
		}
	}

	return nil
}

// DeleteCascade deletes the given tasks, then the columns, then the board,
// all inside one transaction.
func (r *GormBoardRepository) DeleteCascade(board *models.Board, columnIDs, taskIDs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if len(taskIDs) > 0 {
			if err := tx.Where("id IN ?", taskIDs).Delete(&models.Task{}).Error; err != nil {
				return err
			}
		}
		if len(columnIDs) > 0 {
			if err := tx.Where("id IN ?", columnIDs).Delete(&models.Column{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(board).Error
	})
}

package repository

import (
	"gorm.io/gorm"

	"github.com/openkanban/kanban/internal/models"
)

// GormColumnRepository is a GORM implementation of ColumnRepository
type GormColumnRepository struct {
	db *gorm.DB
}

// NewColumnRepository creates a new ColumnRepository
func NewColumnRepository(db *gorm.DB) ColumnRepository {
	return &GormColumnRepository{db: db}
}

// Create creates a new column
func (r *GormColumnRepository) Create(column *models.Column) error {
	return r.db.Create(column).Error
}

// FindByID finds a column by ID
func (r *GormColumnRepository) FindByID(id string) (*models.Column, error) {
	var column models.Column
	if err := r.db.Where("id = ?", id).First(&column).Error; err != nil {
		return nil, err
	}
	return &column, nil
}

// FindByIDs finds all columns whose ids are in the given set
func (r *GormColumnRepository) FindByIDs(ids []string) ([]models.Column, error) {
	if len(ids) == 0 {
		return []models.Column{}, nil
	}
	var columns []models.Column
	if err := r.db.Where("id IN ?", ids).Find(&columns).Error; err != nil {
		return nil, err
	}
	return columns, nil
}

// Update persists changes to a column
func (r *GormColumnRepository) Update(column *models.Column) error {
	return r.db.Save(column).Error
}

// Delete deletes a column
func (r *GormColumnRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.Column{}).Error
}

// RemoveTaskFromAll removes a task id from every column that lists it.
// A no-op for columns that do not reference the task.
func (r *GormColumnRepository) RemoveTaskFromAll(taskID string) error {
	var columns []models.Column
	if err := r.db.Find(&columns).Error; err != nil {
		return err
	}

	for i := range columns {
		taskIDs, removed := columns[i].TaskIDs.Remove(taskID)
		if !removed {
			continue
		}
		columns[i].TaskIDs = taskIDs
		if err := r.db.Save(&columns[i]).Error; err != nil {
			return err
		}
	}

	return nil
}

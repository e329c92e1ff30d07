package models

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// Board references its columns through ColumnOrder; the array is the
// authoritative column display order.
type Board struct {
	ID          string    `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID      string    `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Background  string    `gorm:"type:varchar(255)" json:"background"`
	ColumnOrder IDList    `gorm:"type:text" json:"column_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (b *Board) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		id, err := uuid.NewV4()
		if err != nil {
			return err
		}
		b.ID = id.String()
	}
	return nil
}

package models

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// Column owns the display order of its tasks through TaskIDs. A task belongs
// to a column only by appearing in that array; tasks carry no back-reference.
type Column struct {
	ID        string    `gorm:"type:varchar(36);primarykey" json:"id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	TaskIDs   IDList    `gorm:"type:text" json:"task_ids"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Column) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		id, err := uuid.NewV4()
		if err != nil {
			return err
		}
		c.ID = id.String()
	}
	return nil
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PointModel rows are append-only: there is no update or delete path.
type PointModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	PostID    *string   `gorm:"type:uuid;index" json:"post_id,omitempty"`
	Delta     int       `gorm:"column:points_change;not null" json:"points_change"`
	Reason    string    `gorm:"column:change_reason;type:varchar(100);not null" json:"change_reason"`
	CreatedAt time.Time `json:"created_at"`
}

func (PointModel) TableName() string {
	return "points"
}

func (p *PointModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

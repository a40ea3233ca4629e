package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MediaModel struct {
	ID        string         `gorm:"type:uuid;primary_key" json:"id"`
	PostID    *string        `gorm:"type:uuid;index" json:"post_id"`
	CommentID *string        `gorm:"type:uuid;index" json:"comment_id"`
	MediaURL  string         `gorm:"type:varchar(500);not null" json:"media_url"`
	MediaType string         `gorm:"type:varchar(20);not null" json:"media_type"`
	Position  int            `gorm:"default:0;index" json:"position"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (MediaModel) TableName() string {
	return "media"
}

func (m *MediaModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

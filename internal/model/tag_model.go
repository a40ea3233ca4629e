package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TagModel struct {
	ID         string    `gorm:"type:uuid;primary_key" json:"id"`
	TagName    string    `gorm:"uniqueIndex;not null" json:"tag_name"`
	IsAdminTag bool      `gorm:"default:false" json:"is_admin_tag"`
	UsageCount int       `gorm:"default:0" json:"usage_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (TagModel) TableName() string {
	return "tags"
}

func (t *TagModel) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

type PostTagModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	PostID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_post_tags_post_tag" json:"post_id"`
	TagID     string    `gorm:"type:uuid;not null;uniqueIndex:idx_post_tags_post_tag" json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (PostTagModel) TableName() string {
	return "post_tags"
}

func (pt *PostTagModel) BeforeCreate(tx *gorm.DB) error {
	if pt.ID == "" {
		pt.ID = uuid.New().String()
	}
	return nil
}

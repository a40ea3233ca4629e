package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TopicModel struct {
	ID        string         `gorm:"type:uuid;primary_key" json:"id"`
	Title     string         `gorm:"not null" json:"title"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Categories []CategoryModel `gorm:"foreignKey:TopicID" json:"categories,omitempty"`
}

func (TopicModel) TableName() string {
	return "topics"
}

func (t *TopicModel) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

type CategoryModel struct {
	ID           string         `gorm:"type:uuid;primary_key" json:"id"`
	TopicID      string         `gorm:"type:uuid;not null;index" json:"topic_id"`
	CategoryName string         `gorm:"not null" json:"category_name"`
	BasePrice    int            `gorm:"default:0" json:"base_price"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (CategoryModel) TableName() string {
	return "categories"
}

func (c *CategoryModel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

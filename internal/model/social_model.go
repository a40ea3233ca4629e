package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentModel struct {
	ID        string         `gorm:"type:uuid;primary_key" json:"id"`
	PostID    string         `gorm:"type:uuid;not null;index" json:"post_id"`
	UserID    string         `gorm:"type:uuid;not null;index" json:"user_id"`
	ParentID  *string        `gorm:"type:uuid;index" json:"parent_id"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User    *UserModel     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Media   []MediaModel   `gorm:"foreignKey:CommentID" json:"media,omitempty"`
	Replies []CommentModel `gorm:"foreignKey:ParentID" json:"replies,omitempty"`
}

func (CommentModel) TableName() string {
	return "comments"
}

func (c *CommentModel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

type LikeModel struct {
	ID        string         `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string         `gorm:"type:uuid;not null;index:idx_likes_user_post" json:"user_id"`
	PostID    string         `gorm:"type:uuid;not null;index:idx_likes_user_post" json:"post_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (LikeModel) TableName() string {
	return "likes"
}

func (l *LikeModel) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

type CommentLikeModel struct {
	ID        string         `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string         `gorm:"type:uuid;not null;index:idx_comment_likes_user_comment" json:"user_id"`
	CommentID string         `gorm:"type:uuid;not null;index:idx_comment_likes_user_comment" json:"comment_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (CommentLikeModel) TableName() string {
	return "comment_likes"
}

func (cl *CommentLikeModel) BeforeCreate(tx *gorm.DB) error {
	if cl.ID == "" {
		cl.ID = uuid.New().String()
	}
	return nil
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	ID                string         `gorm:"type:uuid;primary_key" json:"id"`
	Email             string         `gorm:"uniqueIndex;not null" json:"email"`
	Username          string         `gorm:"uniqueIndex;not null" json:"username"`
	Password          string         `gorm:"not null" json:"-"`
	Role              string         `gorm:"type:varchar(20);default:'USER'" json:"role"`
	Points            int            `gorm:"default:0" json:"points"`
	Level             int            `gorm:"default:1" json:"level"`
	TodayTaskCount    int            `gorm:"default:0" json:"today_task_count"`
	ProfilePictureURL string         `gorm:"type:varchar(500)" json:"profile_picture_url"`
	CountryID         *string        `gorm:"type:uuid;index" json:"country_id"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	Country *CountryModel `gorm:"foreignKey:CountryID" json:"country,omitempty"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

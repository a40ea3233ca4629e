package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CountryModel struct {
	ID          string    `gorm:"type:uuid;primary_key" json:"id"`
	CountryCode string    `gorm:"type:varchar(2);uniqueIndex;not null" json:"country_code"`
	CountryName string    `gorm:"not null" json:"country_name"`
	FlagIcon    string    `gorm:"type:varchar(500)" json:"flag_icon"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (CountryModel) TableName() string {
	return "countries"
}

func (c *CountryModel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

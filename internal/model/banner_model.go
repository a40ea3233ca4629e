package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdBannerModel struct {
	ID             string         `gorm:"type:uuid;primary_key" json:"id"`
	Position       int            `gorm:"not null;index" json:"position"`
	CompanyName    string         `gorm:"not null" json:"company_name"`
	Description    string         `gorm:"type:text" json:"description"`
	ImageURL       string         `gorm:"type:varchar(500)" json:"image_url"`
	LinkURL        string         `gorm:"type:varchar(500)" json:"link_url"`
	ContractPeriod int            `gorm:"not null" json:"contract_period"`
	ContractDate   time.Time      `json:"contract_date"`
	StartDate      time.Time      `json:"start_date"`
	EndDate        time.Time      `json:"end_date"`
	Status         string         `gorm:"type:varchar(20);default:'ACTIVE'" json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (AdBannerModel) TableName() string {
	return "ad_banners"
}

func (b *AdBannerModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

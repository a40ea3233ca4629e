package entity

import "time"

type AdBannerStatus string

const (
	BannerActive   AdBannerStatus = "ACTIVE"
	BannerInactive AdBannerStatus = "INACTIVE"
	BannerExpired  AdBannerStatus = "EXPIRED"
)

type AdBanner struct {
	ID             string         `json:"banner_id"`
	Position       int            `json:"position"`
	CompanyName    string         `json:"company_name"`
	Description    string         `json:"description"`
	ImageURL       string         `json:"image_url"`
	LinkURL        string         `json:"link_url,omitempty"`
	ContractPeriod int            `json:"contract_period"`
	ContractDate   time.Time      `json:"contract_date"`
	StartDate      time.Time      `json:"start_date"`
	EndDate        time.Time      `json:"end_date"`
	Status         AdBannerStatus `json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

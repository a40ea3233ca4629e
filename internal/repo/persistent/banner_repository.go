package persistent

import (
	"lingora/internal/entity"
	"lingora/internal/model"

	"gorm.io/gorm"
)

type BannerRepository interface {
	Create(banner *entity.AdBanner) (*entity.AdBanner, error)
	GetByID(bannerID string) (*entity.AdBanner, error)
	List(page, limit int, activeOnly bool) ([]*entity.AdBanner, int64, error)
	Update(bannerID string, banner *entity.AdBanner) (*entity.AdBanner, error)
	Delete(bannerID string) error
}

type bannerRepository struct {
	db *gorm.DB
}

func NewBannerRepository(db *gorm.DB) BannerRepository {
	return &bannerRepository{db: db}
}

func (r *bannerRepository) Create(banner *entity.AdBanner) (*entity.AdBanner, error) {
	bannerModel := model.AdBannerModel{
		Position:       banner.Position,
		CompanyName:    banner.CompanyName,
		Description:    banner.Description,
		ImageURL:       banner.ImageURL,
		LinkURL:        banner.LinkURL,
		ContractPeriod: banner.ContractPeriod,
		ContractDate:   banner.ContractDate,
		StartDate:      banner.StartDate,
		EndDate:        banner.EndDate,
		Status:         string(banner.Status),
	}
	if bannerModel.Status == "" {
		bannerModel.Status = string(entity.BannerActive)
	}
	if err := r.db.Create(&bannerModel).Error; err != nil {
		return nil, err
	}
	return ToBannerEntity(&bannerModel), nil
}

func (r *bannerRepository) GetByID(bannerID string) (*entity.AdBanner, error) {
	var bannerModel model.AdBannerModel
	err := r.db.Where("id = ?", bannerID).First(&bannerModel).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return ToBannerEntity(&bannerModel), nil
}

func (r *bannerRepository) List(page, limit int, activeOnly bool) ([]*entity.AdBanner, int64, error) {
	page, limit = normalizePage(page, limit)

	query := r.db.Model(&model.AdBannerModel{})
	if activeOnly {
		query = query.Where("status = ?", string(entity.BannerActive))
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bannerModels []model.AdBannerModel
	err := query.Order("position ASC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&bannerModels).Error
	if err != nil {
		return nil, 0, err
	}

	banners := make([]*entity.AdBanner, len(bannerModels))
	for i := range bannerModels {
		banners[i] = ToBannerEntity(&bannerModels[i])
	}
	return banners, total, nil
}

func (r *bannerRepository) Update(bannerID string, banner *entity.AdBanner) (*entity.AdBanner, error) {
	updates := map[string]interface{}{
		"position":        banner.Position,
		"company_name":    banner.CompanyName,
		"description":     banner.Description,
		"image_url":       banner.ImageURL,
		"link_url":        banner.LinkURL,
		"contract_period": banner.ContractPeriod,
		"contract_date":   banner.ContractDate,
		"start_date":      banner.StartDate,
		"end_date":        banner.EndDate,
		"status":          string(banner.Status),
	}

	result := r.db.Model(&model.AdBannerModel{}).Where("id = ?", bannerID).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, entity.ErrNotFound
	}
	return r.GetByID(bannerID)
}

func (r *bannerRepository) Delete(bannerID string) error {
	result := r.db.Where("id = ?", bannerID).Delete(&model.AdBannerModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

package usecase

import (
	"time"

	"lingora/internal/entity"
	"lingora/internal/repo/persistent"
)

type BannerUseCase interface {
	CreateBanner(banner *entity.AdBanner) (*entity.AdBanner, error)
	GetBanner(bannerID string) (*entity.AdBanner, error)
	ListBanners(page, limit int, activeOnly bool) ([]*entity.AdBanner, int64, error)
	UpdateBanner(bannerID string, banner *entity.AdBanner) (*entity.AdBanner, error)
	DeleteBanner(bannerID string) error
}

type bannerUseCase struct {
	bannerRepo persistent.BannerRepository
}

func NewBannerUseCase(bannerRepo persistent.BannerRepository) BannerUseCase {
	return &bannerUseCase{bannerRepo: bannerRepo}
}

func (uc *bannerUseCase) CreateBanner(banner *entity.AdBanner) (*entity.AdBanner, error) {
	if banner.CompanyName == "" || banner.ImageURL == "" {
		return nil, entity.ErrBadRequest
	}
	if banner.EndDate.Before(banner.StartDate) {
		return nil, entity.ErrBadRequest
	}
	return uc.bannerRepo.Create(banner)
}

func (uc *bannerUseCase) GetBanner(bannerID string) (*entity.AdBanner, error) {
	return uc.bannerRepo.GetByID(bannerID)
}

func (uc *bannerUseCase) ListBanners(page, limit int, activeOnly bool) ([]*entity.AdBanner, int64, error) {
	banners, total, err := uc.bannerRepo.List(page, limit, activeOnly)
	if err != nil {
		return nil, 0, err
	}

	// Contracts past their end date read as expired even before the
	// row is updated.
	now := time.Now()
	for _, banner := range banners {
		if banner.Status == entity.BannerActive && banner.EndDate.Before(now) {
			banner.Status = entity.BannerExpired
		}
	}
	return banners, total, nil
}

func (uc *bannerUseCase) UpdateBanner(bannerID string, banner *entity.AdBanner) (*entity.AdBanner, error) {
	return uc.bannerRepo.Update(bannerID, banner)
}

func (uc *bannerUseCase) DeleteBanner(bannerID string) error {
	return uc.bannerRepo.Delete(bannerID)
}

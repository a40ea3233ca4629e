package persistent

import (
	"lingora/internal/entity"
	"lingora/internal/model"

	"gorm.io/gorm"
)

type CountryRepository interface {
	List() ([]*entity.Country, error)
	GetByID(countryID string) (*entity.Country, error)
}

type countryRepository struct {
	db *gorm.DB
}

func NewCountryRepository(db *gorm.DB) CountryRepository {
	return &countryRepository{db: db}
}

func (r *countryRepository) List() ([]*entity.Country, error) {
	var countryModels []model.CountryModel
	if err := r.db.Order("country_name ASC").Find(&countryModels).Error; err != nil {
		return nil, err
	}

	countries := make([]*entity.Country, len(countryModels))
	for i := range countryModels {
		countries[i] = ToCountryEntity(&countryModels[i])
	}
	return countries, nil
}

func (r *countryRepository) GetByID(countryID string) (*entity.Country, error) {
	var countryModel model.CountryModel
	err := r.db.Where("id = ?", countryID).First(&countryModel).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return ToCountryEntity(&countryModel), nil
}

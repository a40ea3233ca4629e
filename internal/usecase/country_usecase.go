package usecase

import (
	"context"
	"encoding/json"
	"time"

	"lingora/internal/entity"
	"lingora/internal/repo/persistent"
	"lingora/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const (
	countryCacheKey = "countries:all"
	countryCacheTTL = 24 * time.Hour
)

type CountryUseCase interface {
	ListCountries(ctx context.Context) ([]*entity.Country, error)
}

type countryUseCase struct {
	countryRepo persistent.CountryRepository
	redisClient *redis.Client
	logger      *logger.Logger
}

func NewCountryUseCase(
	countryRepo persistent.CountryRepository,
	redisClient *redis.Client,
	logger *logger.Logger,
) CountryUseCase {
	return &countryUseCase{
		countryRepo: countryRepo,
		redisClient: redisClient,
		logger:      logger,
	}
}

// ListCountries serves the country table from redis; the table changes
// rarely, so a cache miss repopulates it for a day.
func (uc *countryUseCase) ListCountries(ctx context.Context) ([]*entity.Country, error) {
	if uc.redisClient != nil {
		cached, err := uc.redisClient.Get(ctx, countryCacheKey).Result()
		if err == nil {
			var countries []*entity.Country
			if err := json.Unmarshal([]byte(cached), &countries); err == nil {
				return countries, nil
			}
		}
	}

	countries, err := uc.countryRepo.List()
	if err != nil {
		return nil, err
	}

	if uc.redisClient != nil {
		if data, err := json.Marshal(countries); err == nil {
			if err := uc.redisClient.Set(ctx, countryCacheKey, data, countryCacheTTL).Err(); err != nil {
				uc.logger.Warn("Failed to cache countries: %v", err)
			}
		}
	}
	return countries, nil
}

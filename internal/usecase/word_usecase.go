package usecase

import (
	"context"
	"fmt"
	"time"

	"lingora/internal/entity"
	"lingora/internal/repo/persistent"
	"lingora/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const rotationClaimTTL = 48 * time.Hour

type WordUseCase interface {
	RotateDaily(ctx context.Context) ([]*entity.SelectedWord, error)
	TodayWords(ctx context.Context) ([]*entity.SelectedWord, error)
	CreateWord(word, partOfSpeech string) (*entity.Word, error)
	ListWords(page, limit int) ([]*entity.Word, int64, error)
}

type wordUseCase struct {
	wordRepo    persistent.WordRepository
	redisClient *redis.Client
	wordCount   int
	logger      *logger.Logger
}

func NewWordUseCase(
	wordRepo persistent.WordRepository,
	redisClient *redis.Client,
	wordCount int,
	logger *logger.Logger,
) WordUseCase {
	return &wordUseCase{
		wordRepo:    wordRepo,
		redisClient: redisClient,
		wordCount:   wordCount,
		logger:      logger,
	}
}

// RotateDaily picks the day's words. The date-keyed redis claim makes
// the rotation run once per day across instances: whichever caller
// wins the SETNX performs the selection, the rest read the result.
func (uc *wordUseCase) RotateDaily(ctx context.Context) ([]*entity.SelectedWord, error) {
	today := time.Now().Format("2006-01-02")
	claimKey := fmt.Sprintf("words:rotation:%s", today)

	claimed, err := uc.redisClient.SetNX(ctx, claimKey, "1", rotationClaimTTL).Result()
	if err != nil {
		uc.logger.Warn("Rotation claim check failed, proceeding without guard: %v", err)
		claimed = true
	}
	if !claimed {
		return uc.wordRepo.SelectionsForDate(time.Now())
	}

	selections, err := uc.wordRepo.RotateForDate(time.Now(), uc.wordCount)
	if err != nil {
		// Release the claim so a later run can retry today.
		uc.redisClient.Del(ctx, claimKey)
		return nil, err
	}

	uc.logger.Info("Rotated %d daily words for %s", len(selections), today)
	return selections, nil
}

func (uc *wordUseCase) TodayWords(ctx context.Context) ([]*entity.SelectedWord, error) {
	selections, err := uc.wordRepo.SelectionsForDate(time.Now())
	if err != nil {
		return nil, err
	}
	if len(selections) == 0 {
		// First request of the day before the scheduler fired.
		return uc.RotateDaily(ctx)
	}
	return selections, nil
}

func (uc *wordUseCase) CreateWord(word, partOfSpeech string) (*entity.Word, error) {
	if word == "" {
		return nil, entity.ErrBadRequest
	}
	return uc.wordRepo.CreateWord(word, partOfSpeech)
}

func (uc *wordUseCase) ListWords(page, limit int) ([]*entity.Word, int64, error) {
	return uc.wordRepo.ListWords(page, limit)
}

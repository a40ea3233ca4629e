package usecase

import (
	"lingora/internal/entity"
	"lingora/internal/repo/persistent"
)

type PointsUseCase interface {
	Balance(userID string) (int, error)
	History(userID string, page, limit int) ([]*entity.PointEntry, error)
}

type pointsUseCase struct {
	ledgerRepo persistent.LedgerRepository
}

func NewPointsUseCase(ledgerRepo persistent.LedgerRepository) PointsUseCase {
	return &pointsUseCase{ledgerRepo: ledgerRepo}
}

func (uc *pointsUseCase) Balance(userID string) (int, error) {
	return uc.ledgerRepo.Balance(userID)
}

func (uc *pointsUseCase) History(userID string, page, limit int) ([]*entity.PointEntry, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	return uc.ledgerRepo.History(userID, limit, (page-1)*limit)
}

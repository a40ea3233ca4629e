package persistent

import (
	"lingora/internal/entity"
	"lingora/internal/model"

	"gorm.io/gorm"
)

// LedgerRepository owns every mutation of a user's point balance. A
// delta is only ever applied together with its audit row, on the
// transaction handle supplied by the caller.
type LedgerRepository interface {
	ApplyDeltaTx(tx *gorm.DB, userID string, delta int, reason string, postID *string) (int, error)
	Balance(userID string) (int, error)
	History(userID string, limit, offset int) ([]*entity.PointEntry, error)
}

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

// ApplyDeltaTx adjusts the balance and appends the matching audit row.
// Debits use a conditional update (points >= amount) so the funds
// check and the decrement are a single atomic statement; two
// concurrent debits can never both pass against a stale balance.
func (r *ledgerRepository) ApplyDeltaTx(tx *gorm.DB, userID string, delta int, reason string, postID *string) (int, error) {
	if delta < 0 {
		res := tx.Model(&model.UserModel{}).
			Where("id = ? AND points >= ?", userID, -delta).
			UpdateColumn("points", gorm.Expr("points + ?", delta))
		if res.Error != nil {
			return 0, res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&model.UserModel{}).Where("id = ?", userID).Count(&count).Error; err != nil {
				return 0, err
			}
			if count == 0 {
				return 0, entity.ErrNotFound
			}
			return 0, entity.ErrInsufficientPoints
		}
	} else {
		res := tx.Model(&model.UserModel{}).
			Where("id = ?", userID).
			UpdateColumn("points", gorm.Expr("points + ?", delta))
		if res.Error != nil {
			return 0, res.Error
		}
		if res.RowsAffected == 0 {
			return 0, entity.ErrNotFound
		}
	}

	pointModel := &model.PointModel{
		UserID: userID,
		PostID: postID,
		Delta:  delta,
		Reason: reason,
	}
	if err := tx.Create(pointModel).Error; err != nil {
		return 0, err
	}

	var user model.UserModel
	if err := tx.Select("points").Where("id = ?", userID).First(&user).Error; err != nil {
		return 0, err
	}
	return user.Points, nil
}

func (r *ledgerRepository) Balance(userID string) (int, error) {
	var user model.UserModel
	if err := r.db.Select("points").Where("id = ?", userID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, entity.ErrNotFound
		}
		return 0, err
	}
	return user.Points, nil
}

func (r *ledgerRepository) History(userID string, limit, offset int) ([]*entity.PointEntry, error) {
	var pointModels []model.PointModel
	query := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&pointModels).Error; err != nil {
		return nil, err
	}

	entries := make([]*entity.PointEntry, len(pointModels))
	for i := range pointModels {
		entries[i] = ToPointEntity(&pointModels[i])
	}
	return entries, nil
}

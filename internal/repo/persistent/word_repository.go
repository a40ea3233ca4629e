package persistent

import (
	"time"

	"lingora/internal/entity"
	"lingora/internal/model"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// WordRepository manages the wordlist and the per-day rotation
// selection. RotateForDate is the only writer of selected_words and
// keeps the day's selection exact-once per call: it clears the date
// before inserting, so a re-run replaces rather than accumulates.
type WordRepository interface {
	RotateForDate(date time.Time, count int) ([]*entity.SelectedWord, error)
	SelectionsForDate(date time.Time) ([]*entity.SelectedWord, error)
	CreateWord(word, partOfSpeech string) (*entity.Word, error)
	ListWords(page, limit int) ([]*entity.Word, int64, error)
}

type wordRepository struct {
	db *gorm.DB
}

func NewWordRepository(db *gorm.DB) WordRepository {
	return &wordRepository{db: db}
}

func (r *wordRepository) RotateForDate(date time.Time, count int) ([]*entity.SelectedWord, error) {
	day := date.Format(dateLayout)

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("selected_date = ?", day).Delete(&model.SelectedWordModel{}).Error; err != nil {
			return err
		}

		// Least-used words first so the whole list cycles through;
		// RANDOM() breaks ties between equally used words.
		var wordIDs []string
		err := tx.Raw(
			"SELECT id FROM wordlist WHERE deleted_at IS NULL ORDER BY usage_count ASC, RANDOM() LIMIT ?",
			count,
		).Scan(&wordIDs).Error
		if err != nil {
			return err
		}
		if len(wordIDs) == 0 {
			return entity.ErrNotFound
		}

		for _, wordID := range wordIDs {
			selection := model.SelectedWordModel{WordID: wordID, SelectedDate: day}
			if err := tx.Create(&selection).Error; err != nil {
				return err
			}
		}

		return tx.Model(&model.WordModel{}).
			Where("id IN ?", wordIDs).
			UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error
	})
	if err != nil {
		return nil, err
	}

	return r.SelectionsForDate(date)
}

func (r *wordRepository) SelectionsForDate(date time.Time) ([]*entity.SelectedWord, error) {
	var selectionModels []model.SelectedWordModel
	err := r.db.Preload("Word").
		Where("selected_date = ?", date.Format(dateLayout)).
		Order("created_at ASC").
		Find(&selectionModels).Error
	if err != nil {
		return nil, err
	}

	selections := make([]*entity.SelectedWord, len(selectionModels))
	for i := range selectionModels {
		selections[i] = ToSelectedWordEntity(&selectionModels[i])
	}
	return selections, nil
}

func (r *wordRepository) CreateWord(word, partOfSpeech string) (*entity.Word, error) {
	wordModel := model.WordModel{Word: word, PartOfSpeech: partOfSpeech}
	if err := r.db.Create(&wordModel).Error; err != nil {
		return nil, err
	}
	return ToWordEntity(&wordModel), nil
}

func (r *wordRepository) ListWords(page, limit int) ([]*entity.Word, int64, error) {
	page, limit = normalizePage(page, limit)

	var total int64
	if err := r.db.Model(&model.WordModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var wordModels []model.WordModel
	err := r.db.Order("word ASC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&wordModels).Error
	if err != nil {
		return nil, 0, err
	}

	words := make([]*entity.Word, len(wordModels))
	for i := range wordModels {
		words[i] = ToWordEntity(&wordModels[i])
	}
	return words, total, nil
}

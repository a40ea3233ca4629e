package persistent

import (
	"testing"
	"time"

	"lingora/internal/entity"
	"lingora/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedWords(t *testing.T, db *gorm.DB, words ...string) {
	t.Helper()
	for _, w := range words {
		require.NoError(t, db.Create(&model.WordModel{Word: w, PartOfSpeech: "noun"}).Error)
	}
}

func TestRotateForDateSelectsLeastUsed(t *testing.T) {
	db := openTestDB(t)
	repo := NewWordRepository(db)
	seedWords(t, db, "alpha", "beta", "gamma", "delta")

	// Pre-bump two words so the rotation must prefer the fresh ones.
	require.NoError(t, db.Model(&model.WordModel{}).
		Where("word IN ?", []string{"alpha", "beta"}).
		UpdateColumn("usage_count", 5).Error)

	selections, err := repo.RotateForDate(time.Now(), 2)
	require.NoError(t, err)
	require.Len(t, selections, 2)

	picked := map[string]bool{}
	for _, s := range selections {
		require.NotNil(t, s.Word)
		picked[s.Word.Word] = true
		assert.Equal(t, 1, s.Word.UsageCount)
	}
	assert.True(t, picked["gamma"])
	assert.True(t, picked["delta"])
}

func TestRotateForDateReplacesExistingSelection(t *testing.T) {
	db := openTestDB(t)
	repo := NewWordRepository(db)
	seedWords(t, db, "alpha", "beta", "gamma")

	_, err := repo.RotateForDate(time.Now(), 2)
	require.NoError(t, err)

	// A re-run for the same date replaces the selection instead of
	// piling more rows onto it.
	selections, err := repo.RotateForDate(time.Now(), 2)
	require.NoError(t, err)
	assert.Len(t, selections, 2)

	var rowCount int64
	require.NoError(t, db.Model(&model.SelectedWordModel{}).Count(&rowCount).Error)
	assert.Equal(t, int64(2), rowCount)
}

func TestRotateForDateEmptyPool(t *testing.T) {
	db := openTestDB(t)
	repo := NewWordRepository(db)

	_, err := repo.RotateForDate(time.Now(), 3)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestSelectionsForDateScopedByDay(t *testing.T) {
	db := openTestDB(t)
	repo := NewWordRepository(db)
	seedWords(t, db, "alpha", "beta")

	_, err := repo.RotateForDate(time.Now(), 2)
	require.NoError(t, err)

	yesterday, err := repo.SelectionsForDate(time.Now().AddDate(0, 0, -1))
	require.NoError(t, err)
	assert.Empty(t, yesterday)

	today, err := repo.SelectionsForDate(time.Now())
	require.NoError(t, err)
	assert.Len(t, today, 2)
}

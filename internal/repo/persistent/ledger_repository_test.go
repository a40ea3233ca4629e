package persistent

import (
	"testing"

	"lingora/internal/entity"
	"lingora/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&model.CountryModel{},
		&model.UserModel{},
		&model.TopicModel{},
		&model.CategoryModel{},
		&model.PostModel{},
		&model.PostGeneralModel{},
		&model.PostColumnModel{},
		&model.PostQuestionModel{},
		&model.PostSentenceModel{},
		&model.PostConsultationModel{},
		&model.MediaModel{},
		&model.CommentModel{},
		&model.LikeModel{},
		&model.CommentLikeModel{},
		&model.TagModel{},
		&model.PostTagModel{},
		&model.PointModel{},
		&model.WordModel{},
		&model.SelectedWordModel{},
		&model.LogModel{},
	)
	require.NoError(t, err)
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string, points int) string {
	t.Helper()
	user := model.UserModel{
		Email:    username + "@example.com",
		Username: username,
		Password: "hashed",
		Role:     "USER",
		Points:   points,
	}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}

func TestApplyDeltaDebitAndCredit(t *testing.T) {
	db := openTestDB(t)
	repo := NewLedgerRepository(db)
	userID := seedUser(t, db, "alice", 100)

	newBalance, err := repo.ApplyDeltaTx(db, userID, -30, entity.ReasonQuestionCreated, nil)
	require.NoError(t, err)
	assert.Equal(t, 70, newBalance)

	newBalance, err = repo.ApplyDeltaTx(db, userID, 30, entity.ReasonQuestionRefunded, nil)
	require.NoError(t, err)
	assert.Equal(t, 100, newBalance)

	// Every delta leaves an audit row.
	var auditCount int64
	require.NoError(t, db.Model(&model.PointModel{}).Where("user_id = ?", userID).Count(&auditCount).Error)
	assert.Equal(t, int64(2), auditCount)
}

func TestApplyDeltaInsufficientFunds(t *testing.T) {
	db := openTestDB(t)
	repo := NewLedgerRepository(db)
	userID := seedUser(t, db, "bob", 20)

	_, err := repo.ApplyDeltaTx(db, userID, -30, entity.ReasonQuestionCreated, nil)
	assert.ErrorIs(t, err, entity.ErrInsufficientPoints)

	// The balance is untouched and no audit row is written.
	balance, err := repo.Balance(userID)
	require.NoError(t, err)
	assert.Equal(t, 20, balance)

	var auditCount int64
	require.NoError(t, db.Model(&model.PointModel{}).Where("user_id = ?", userID).Count(&auditCount).Error)
	assert.Equal(t, int64(0), auditCount)
}

func TestApplyDeltaExactBalanceAllowed(t *testing.T) {
	db := openTestDB(t)
	repo := NewLedgerRepository(db)
	userID := seedUser(t, db, "carol", 30)

	newBalance, err := repo.ApplyDeltaTx(db, userID, -30, entity.ReasonConsultationCreated, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, newBalance)
}

func TestApplyDeltaUnknownUser(t *testing.T) {
	db := openTestDB(t)
	repo := NewLedgerRepository(db)

	_, err := repo.ApplyDeltaTx(db, "00000000-0000-0000-0000-000000000000", -10, entity.ReasonQuestionCreated, nil)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestHistoryPagination(t *testing.T) {
	db := openTestDB(t)
	repo := NewLedgerRepository(db)
	userID := seedUser(t, db, "dave", 1000)

	for i := 1; i <= 5; i++ {
		_, err := repo.ApplyDeltaTx(db, userID, -i, entity.ReasonQuestionCreated, nil)
		require.NoError(t, err)
	}

	page, err := repo.History(userID, 2, 0)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	all, err := repo.History(userID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

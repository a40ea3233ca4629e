package usecase

import (
	"fmt"
	"testing"

	"lingora/internal/entity"
	"lingora/internal/model"
	"lingora/internal/repo/persistent"
	"lingora/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testEnv struct {
	db          *gorm.DB
	postUseCase PostUseCase
	ledgerRepo  persistent.LedgerRepository
}

func setupTest(t *testing.T) *testEnv {
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

	postRepo := persistent.NewPostRepository(db)
	queryRepo := persistent.NewQueryRepository(db)
	ledgerRepo := persistent.NewLedgerRepository(db)
	variants := persistent.NewVariantStore()

	postUseCase := NewPostUseCase(postRepo, queryRepo, ledgerRepo, variants, nil, logger.New())

	return &testEnv{db: db, postUseCase: postUseCase, ledgerRepo: ledgerRepo}
}

func (e *testEnv) createUser(t *testing.T, username string, role entity.UserRole, points int) string {
	t.Helper()
	user := model.UserModel{
		Email:    username + "@example.com",
		Username: username,
		Password: "hashed",
		Role:     string(role),
		Points:   points,
	}
	require.NoError(t, e.db.Create(&user).Error)
	return user.ID
}

func (e *testEnv) addComment(t *testing.T, postID, userID string) {
	t.Helper()
	comment := model.CommentModel{PostID: postID, UserID: userID, Content: "a comment"}
	require.NoError(t, e.db.Create(&comment).Error)
}

func questionInput(points int) *entity.CreatePostInput {
	return &entity.CreatePostInput{
		Type:    entity.PostTypeQuestion,
		Title:   "question title",
		Content: "question body",
		Points:  points,
	}
}

func TestQuestionLifecycleSettlesLedger(t *testing.T) {
	env := setupTest(t)
	userID := env.createUser(t, "asker", entity.RoleUser, 100)

	// Publishing a 30 point question escrows 30.
	post, err := env.postUseCase.CreatePost(userID, questionInput(30))
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPublic, post.Status)

	balance, err := env.ledgerRepo.Balance(userID)
	require.NoError(t, err)
	assert.Equal(t, 70, balance)

	// Raising the stake to 50 debits the 20 difference.
	newPoints := 50
	_, err = env.postUseCase.UpdatePost(userID, post.ID, &entity.UpdatePostInput{Points: &newPoints})
	require.NoError(t, err)

	balance, err = env.ledgerRepo.Balance(userID)
	require.NoError(t, err)
	assert.Equal(t, 50, balance)

	// Deleting refunds the full current escrow.
	err = env.postUseCase.DeletePost(userID, entity.RoleUser, post.ID)
	require.NoError(t, err)

	balance, err = env.ledgerRepo.Balance(userID)
	require.NoError(t, err)
	assert.Equal(t, 100, balance)

	history, err := env.ledgerRepo.History(userID, 0, 0)
	require.NoError(t, err)
	require.Len(t, history, 3)

	deltas := make(map[int]bool)
	for _, entry := range history {
		deltas[entry.Delta] = true
		require.NotNil(t, entry.PostID)
		assert.Equal(t, post.ID, *entry.PostID)
	}
	assert.True(t, deltas[-30])
	assert.True(t, deltas[-20])
	assert.True(t, deltas[50])
}

func TestCreateQuestionInsufficientPoints(t *testing.T) {
	env := setupTest(t)
	userID := env.createUser(t, "broke", entity.RoleUser, 10)

	_, err := env.postUseCase.CreatePost(userID, questionInput(30))
	assert.ErrorIs(t, err, entity.ErrInsufficientPoints)

	// The whole create rolls back with the failed debit.
	var postCount int64
	require.NoError(t, env.db.Model(&model.PostModel{}).Count(&postCount).Error)
	assert.Equal(t, int64(0), postCount)

	balance, err := env.ledgerRepo.Balance(userID)
	require.NoError(t, err)
	assert.Equal(t, 10, balance)
}

func TestCreateQuestionRequiresPositivePoints(t *testing.T) {
	env := setupTest(t)
	userID := env.createUser(t, "asker", entity.RoleUser, 100)

	_, err := env.postUseCase.CreatePost(userID, questionInput(0))
	assert.ErrorIs(t, err, entity.ErrBadRequest)
}

func TestDraftCapPerType(t *testing.T) {
	env := setupTest(t)
	userID := env.createUser(t, "writer", entity.RoleUser, 0)

	for i := 0; i < 5; i++ {
		in := &entity.CreatePostInput{
			Type:    entity.PostTypeGeneral,
			Title:   fmt.Sprintf("draft %d", i),
			Content: "wip",
		}
		_, err := env.postUseCase.CreateDraft(userID, in)
		require.NoError(t, err)
	}

	_, err := env.postUseCase.CreateDraft(userID, &entity.CreatePostInput{
		Type:    entity.PostTypeGeneral,
		Title:   "draft 6",
		Content: "wip",
	})
	assert.ErrorIs(t, err, entity.ErrDraftLimit)

	// The cap is per type: a different type still has room.
	_, err = env.postUseCase.CreateDraft(userID, &entity.CreatePostInput{
		Type:    entity.PostTypeColumn,
		Title:   "column draft",
		Content: "wip",
	})
	assert.NoError(t, err)
}

func TestDraftQuestionSkipsEscrowUntilPublished(t *testing.T) {
	env := setupTest(t)
	userID := env.createUser(t, "asker", entity.RoleUser, 100)

	// A question draft stores its points but does not escrow them.
	draft, err := env.postUseCase.CreateDraft(userID, questionInput(30))
	require.NoError(t, err)

	balance, err := env.ledgerRepo.Balance(userID)
	require.NoError(t, err)
	assert.Equal(t, 100, balance)

	// Publishing the draft debits the full amount.
	status := entity.StatusPublic
	published, err := env.postUseCase.UpdatePost(userID, draft.ID, &entity.UpdatePostInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPublic, published.Status)

	balance, err = env.ledgerRepo.Balance(userID)
	require.NoError(t, err)
	assert.Equal(t, 70, balance)
}

func TestDraftPointEditsLeaveLedgerUntouched(t *testing.T) {
	env := setupTest(t)
	userID := env.createUser(t, "asker", entity.RoleUser, 50)

	// Drafts may hold stakes above the current balance.
	draft, err := env.postUseCase.CreateDraft(userID, questionInput(100))
	require.NoError(t, err)

	// Lowering the stake on a draft settles nothing: there is no
	// escrow to return.
	newPoints := 1
	_, err = env.postUseCase.UpdatePost(userID, draft.ID, &entity.UpdatePostInput{Points: &newPoints})
	require.NoError(t, err)

	balance, err := env.ledgerRepo.Balance(userID)
	require.NoError(t, err)
	assert.Equal(t, 50, balance)

	history, err := env.ledgerRepo.History(userID, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestDraftRaisedThenPublishedChargesFinalAmountOnce(t *testing.T) {
	env := setupTest(t)
	userID := env.createUser(t, "asker", entity.RoleUser, 100)

	draft, err := env.postUseCase.CreateDraft(userID, questionInput(30))
	require.NoError(t, err)

	// Raising the stake while still a draft escrows nothing.
	newPoints := 50
	_, err = env.postUseCase.UpdatePost(userID, draft.ID, &entity.UpdatePostInput{Points: &newPoints})
	require.NoError(t, err)

	balance, err := env.ledgerRepo.Balance(userID)
	require.NoError(t, err)
	assert.Equal(t, 100, balance)

	// Publishing debits the final stake exactly once.
	status := entity.StatusPublic
	_, err = env.postUseCase.UpdatePost(userID, draft.ID, &entity.UpdatePostInput{Status: &status})
	require.NoError(t, err)

	balance, err = env.ledgerRepo.Balance(userID)
	require.NoError(t, err)
	assert.Equal(t, 50, balance)

	history, err := env.ledgerRepo.History(userID, 0, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, -50, history[0].Delta)
}

func TestPublishedPostCannotRevertToDraft(t *testing.T) {
	env := setupTest(t)
	userID := env.createUser(t, "asker", entity.RoleUser, 100)

	post, err := env.postUseCase.CreatePost(userID, questionInput(30))
	require.NoError(t, err)

	draft := entity.StatusDraft
	_, err = env.postUseCase.UpdatePost(userID, post.ID, &entity.UpdatePostInput{Status: &draft})
	assert.ErrorIs(t, err, entity.ErrBadRequest)

	var postModel model.PostModel
	require.NoError(t, env.db.Where("id = ?", post.ID).First(&postModel).Error)
	assert.Equal(t, string(entity.StatusPublic), postModel.Status)

	balance, err := env.ledgerRepo.Balance(userID)
	require.NoError(t, err)
	assert.Equal(t, 70, balance)
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	env := setupTest(t)
	userID := env.createUser(t, "asker", entity.RoleUser, 100)

	post, err := env.postUseCase.CreatePost(userID, questionInput(30))
	require.NoError(t, err)

	for _, bad := range []entity.PostStatus{entity.StatusDeleted, entity.PostStatus("BOGUS")} {
		status := bad
		_, err = env.postUseCase.UpdatePost(userID, post.ID, &entity.UpdatePostInput{Status: &status})
		assert.ErrorIs(t, err, entity.ErrBadRequest)
	}

	var postModel model.PostModel
	require.NoError(t, env.db.Where("id = ?", post.ID).First(&postModel).Error)
	assert.Equal(t, string(entity.StatusPublic), postModel.Status)
}

func TestDeleteDraftDoesNotRefund(t *testing.T) {
	env := setupTest(t)
	userID := env.createUser(t, "asker", entity.RoleUser, 100)

	draft, err := env.postUseCase.CreateDraft(userID, questionInput(30))
	require.NoError(t, err)

	require.NoError(t, env.postUseCase.DeletePost(userID, entity.RoleUser, draft.ID))

	balance, err := env.ledgerRepo.Balance(userID)
	require.NoError(t, err)
	assert.Equal(t, 100, balance)

	history, err := env.ledgerRepo.History(userID, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestDeleteUnansweredQuestionWithCommentsConflicts(t *testing.T) {
	env := setupTest(t)
	userID := env.createUser(t, "asker", entity.RoleUser, 100)
	commenterID := env.createUser(t, "helper", entity.RoleUser, 0)

	post, err := env.postUseCase.CreatePost(userID, questionInput(30))
	require.NoError(t, err)

	env.addComment(t, post.ID, commenterID)

	err = env.postUseCase.DeletePost(userID, entity.RoleUser, post.ID)
	assert.ErrorIs(t, err, entity.ErrConflict)

	// Once answered the question can go, points coming back.
	answered := true
	_, err = env.postUseCase.UpdatePost(userID, post.ID, &entity.UpdatePostInput{IsAnswered: &answered})
	require.NoError(t, err)

	require.NoError(t, env.postUseCase.DeletePost(userID, entity.RoleUser, post.ID))

	balance, err := env.ledgerRepo.Balance(userID)
	require.NoError(t, err)
	assert.Equal(t, 100, balance)
}

func TestDeleteForeignPostForbidden(t *testing.T) {
	env := setupTest(t)
	ownerID := env.createUser(t, "owner", entity.RoleUser, 100)
	strangerID := env.createUser(t, "stranger", entity.RoleUser, 0)
	adminID := env.createUser(t, "admin", entity.RoleAdmin, 0)

	post, err := env.postUseCase.CreatePost(ownerID, questionInput(30))
	require.NoError(t, err)

	err = env.postUseCase.DeletePost(strangerID, entity.RoleUser, post.ID)
	assert.ErrorIs(t, err, entity.ErrForbidden)

	// Admins may delete anyone's post; the refund still goes to the
	// owner.
	require.NoError(t, env.postUseCase.DeletePost(adminID, entity.RoleAdmin, post.ID))

	balance, err := env.ledgerRepo.Balance(ownerID)
	require.NoError(t, err)
	assert.Equal(t, 100, balance)
}

func TestUpdateForeignPostNotFound(t *testing.T) {
	env := setupTest(t)
	ownerID := env.createUser(t, "owner", entity.RoleUser, 100)
	strangerID := env.createUser(t, "stranger", entity.RoleUser, 100)

	post, err := env.postUseCase.CreatePost(ownerID, questionInput(30))
	require.NoError(t, err)

	title := "hijacked"
	_, err = env.postUseCase.UpdatePost(strangerID, post.ID, &entity.UpdatePostInput{Title: &title})
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestConsultationLifecycle(t *testing.T) {
	env := setupTest(t)
	studentID := env.createUser(t, "student", entity.RoleUser, 100)
	teacherID := env.createUser(t, "teacher", entity.RoleTeacher, 0)
	strangerID := env.createUser(t, "stranger", entity.RoleUser, 0)
	adminID := env.createUser(t, "admin", entity.RoleAdmin, 0)

	post, err := env.postUseCase.CreatePost(studentID, &entity.CreatePostInput{
		Type:      entity.PostTypeConsultation,
		Title:     "Pronunciation help",
		Content:   "I need help with th sounds",
		BasePrice: 40,
	})
	require.NoError(t, err)

	balance, err := env.ledgerRepo.Balance(studentID)
	require.NoError(t, err)
	assert.Equal(t, 60, balance)

	// Assign the teacher.
	_, err = env.postUseCase.UpdatePost(studentID, post.ID, &entity.UpdatePostInput{TeacherID: &teacherID})
	require.NoError(t, err)

	// Participants and admins see the consultation, others do not.
	_, err = env.postUseCase.GetConsultation(post.ID, studentID, entity.RoleUser)
	assert.NoError(t, err)
	_, err = env.postUseCase.GetConsultation(post.ID, teacherID, entity.RoleTeacher)
	assert.NoError(t, err)
	_, err = env.postUseCase.GetConsultation(post.ID, adminID, entity.RoleAdmin)
	assert.NoError(t, err)
	_, err = env.postUseCase.GetConsultation(post.ID, strangerID, entity.RoleUser)
	assert.ErrorIs(t, err, entity.ErrForbidden)

	// Completing stamps completed_at exactly once.
	completed := entity.ConsultationCompleted
	updated, err := env.postUseCase.UpdatePost(studentID, post.ID, &entity.UpdatePostInput{ConsultationStatus: &completed})
	require.NoError(t, err)
	require.NotNil(t, updated.Content.CompletedAt)
	firstStamp := *updated.Content.CompletedAt

	updated, err = env.postUseCase.UpdatePost(studentID, post.ID, &entity.UpdatePostInput{ConsultationStatus: &completed})
	require.NoError(t, err)
	require.NotNil(t, updated.Content.CompletedAt)
	assert.Equal(t, firstStamp, *updated.Content.CompletedAt)
}

func TestConsultationExcludedFromPostFeed(t *testing.T) {
	env := setupTest(t)
	studentID := env.createUser(t, "student", entity.RoleUser, 100)

	consultation, err := env.postUseCase.CreatePost(studentID, &entity.CreatePostInput{
		Type:      entity.PostTypeConsultation,
		Title:     "Private consult",
		Content:   "details",
		BasePrice: 10,
	})
	require.NoError(t, err)

	_, err = env.postUseCase.CreatePost(studentID, &entity.CreatePostInput{
		Type:    entity.PostTypeGeneral,
		Title:   "Hello",
		Content: "world",
	})
	require.NoError(t, err)

	page, err := env.postUseCase.ListPosts(entity.PostFilter{}, studentID)
	require.NoError(t, err)
	require.Equal(t, int64(1), page.Total)
	assert.Equal(t, entity.PostTypeGeneral, page.Data[0].Type)

	// The consultation detail endpoint hides general posts and vice
	// versa.
	_, err = env.postUseCase.GetPost(consultation.ID, studentID)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestPopularSortOrdersByWeightedEngagement(t *testing.T) {
	env := setupTest(t)
	userID := env.createUser(t, "author", entity.RoleUser, 0)

	makePost := func(title string, likes, views int) string {
		post, err := env.postUseCase.CreatePost(userID, &entity.CreatePostInput{
			Type:    entity.PostTypeGeneral,
			Title:   title,
			Content: "body",
		})
		require.NoError(t, err)
		require.NoError(t, env.db.Model(&model.PostModel{}).Where("id = ?", post.ID).
			Updates(map[string]interface{}{"likes": likes, "views": views}).Error)
		return post.ID
	}

	// Scores: a = 2*2+10 = 14, b = 10*2+1 = 21, c = 0*2+5 = 5.
	a := makePost("a", 2, 10)
	b := makePost("b", 10, 1)
	c := makePost("c", 0, 5)

	page, err := env.postUseCase.ListPosts(entity.PostFilter{Sort: entity.SortPopular}, userID)
	require.NoError(t, err)
	require.Len(t, page.Data, 3)
	assert.Equal(t, b, page.Data[0].PostID)
	assert.Equal(t, a, page.Data[1].PostID)
	assert.Equal(t, c, page.Data[2].PostID)
}

func TestSentencePostCountsDailyTask(t *testing.T) {
	env := setupTest(t)
	userID := env.createUser(t, "learner", entity.RoleUser, 0)

	for i := 0; i < 2; i++ {
		_, err := env.postUseCase.CreatePost(userID, &entity.CreatePostInput{
			Type:    entity.PostTypeSentence,
			Title:   fmt.Sprintf("sentence %d", i),
			Content: "I tried using today's word.",
		})
		require.NoError(t, err)
	}

	var user model.UserModel
	require.NoError(t, env.db.Where("id = ?", userID).First(&user).Error)
	assert.Equal(t, 2, user.TodayTaskCount)

	var logRow model.LogModel
	require.NoError(t, env.db.Where("type = ?", model.LogTypeTodayTask).First(&logRow).Error)
	assert.Equal(t, 2, logRow.Count)
}

func TestTagsUpsertAndSharedAcrossPosts(t *testing.T) {
	env := setupTest(t)
	userID := env.createUser(t, "author", entity.RoleUser, 0)

	for i := 0; i < 2; i++ {
		_, err := env.postUseCase.CreatePost(userID, &entity.CreatePostInput{
			Type:    entity.PostTypeGeneral,
			Title:   fmt.Sprintf("post %d", i),
			Content: "body",
			Tags:    []string{"grammar", "beginner"},
		})
		require.NoError(t, err)
	}

	var tagCount int64
	require.NoError(t, env.db.Model(&model.TagModel{}).Count(&tagCount).Error)
	assert.Equal(t, int64(2), tagCount)

	var tag model.TagModel
	require.NoError(t, env.db.Where("tag_name = ?", "grammar").First(&tag).Error)
	assert.Equal(t, 2, tag.UsageCount)

	var linkCount int64
	require.NoError(t, env.db.Model(&model.PostTagModel{}).Count(&linkCount).Error)
	assert.Equal(t, int64(4), linkCount)
}

func TestToggleLikeMaintainsCounter(t *testing.T) {
	env := setupTest(t)
	authorID := env.createUser(t, "author", entity.RoleUser, 0)
	likerID := env.createUser(t, "liker", entity.RoleUser, 0)

	post, err := env.postUseCase.CreatePost(authorID, &entity.CreatePostInput{
		Type:    entity.PostTypeGeneral,
		Title:   "likeable",
		Content: "body",
	})
	require.NoError(t, err)

	liked, err := env.postUseCase.ToggleLike(likerID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	var postModel model.PostModel
	require.NoError(t, env.db.Where("id = ?", post.ID).First(&postModel).Error)
	assert.Equal(t, 1, postModel.Likes)

	liked, err = env.postUseCase.ToggleLike(likerID, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	require.NoError(t, env.db.Where("id = ?", post.ID).First(&postModel).Error)
	assert.Equal(t, 0, postModel.Likes)
}

func TestMediaReconcileOnUpdate(t *testing.T) {
	env := setupTest(t)
	userID := env.createUser(t, "author", entity.RoleUser, 0)

	post, err := env.postUseCase.CreatePost(userID, &entity.CreatePostInput{
		Type:    entity.PostTypeGeneral,
		Title:   "with media",
		Content: "body",
		Media: []entity.MediaInput{
			{MediaURL: "https://cdn.example.com/a.jpg", MediaType: "IMAGE", Position: 0},
			{MediaURL: "https://cdn.example.com/b.jpg", MediaType: "IMAGE", Position: 1},
		},
	})
	require.NoError(t, err)

	var media []model.MediaModel
	require.NoError(t, env.db.Where("post_id = ?", post.ID).Order("position ASC").Find(&media).Error)
	require.Len(t, media, 2)
	keepID := media[0].ID

	// Keep the first, drop the second, add a new one.
	_, err = env.postUseCase.UpdatePost(userID, post.ID, &entity.UpdatePostInput{
		Media: []entity.MediaInput{
			{MediaID: &keepID, MediaURL: "https://cdn.example.com/a.jpg", MediaType: "IMAGE", Position: 1},
			{MediaURL: "https://cdn.example.com/c.jpg", MediaType: "IMAGE", Position: 0},
		},
	})
	require.NoError(t, err)

	require.NoError(t, env.db.Where("post_id = ?", post.ID).Order("position ASC").Find(&media).Error)
	require.Len(t, media, 2)
	assert.Equal(t, "https://cdn.example.com/c.jpg", media[0].MediaURL)
	assert.Equal(t, keepID, media[1].ID)
}

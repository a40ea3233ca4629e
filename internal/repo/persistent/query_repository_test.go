package persistent

import (
	"testing"

	"lingora/internal/entity"
	"lingora/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedConsultation(t *testing.T, db *gorm.DB, studentID string, teacherID *string, status string) string {
	t.Helper()

	post := model.PostModel{
		UserID: studentID,
		Type:   string(entity.PostTypeConsultation),
		Status: string(entity.StatusPublic),
	}
	require.NoError(t, db.Create(&post).Error)

	consultation := model.PostConsultationModel{
		PostID:    post.ID,
		Title:     "consult",
		Content:   "details",
		Price:     20,
		Status:    status,
		StudentID: studentID,
		TeacherID: teacherID,
	}
	require.NoError(t, db.Create(&consultation).Error)
	return post.ID
}

func TestListConsultationsParticipantScope(t *testing.T) {
	db := openTestDB(t)
	repo := NewQueryRepository(db)

	studentID := seedUser(t, db, "student", 0)
	teacherID := seedUser(t, db, "teacher", 0)
	strangerID := seedUser(t, db, "stranger", 0)

	seedConsultation(t, db, studentID, &teacherID, string(entity.ConsultationPending))
	seedConsultation(t, db, strangerID, nil, string(entity.ConsultationPending))

	// Students and teachers only see rows they take part in.
	page, err := repo.ListConsultations(entity.ConsultationFilter{}, studentID, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	page, err = repo.ListConsultations(entity.ConsultationFilter{}, teacherID, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	// Admins see everything.
	page, err = repo.ListConsultations(entity.ConsultationFilter{}, "", true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
}

func TestListConsultationsStatusAndTeacherFilter(t *testing.T) {
	db := openTestDB(t)
	repo := NewQueryRepository(db)

	studentID := seedUser(t, db, "student", 0)
	teacherID := seedUser(t, db, "teacher", 0)

	seedConsultation(t, db, studentID, &teacherID, string(entity.ConsultationPending))
	completedID := seedConsultation(t, db, studentID, &teacherID, string(entity.ConsultationCompleted))

	completed := entity.ConsultationCompleted
	page, err := repo.ListConsultations(entity.ConsultationFilter{
		TeacherID: &teacherID,
		Status:    &completed,
	}, studentID, false)
	require.NoError(t, err)
	require.Equal(t, int64(1), page.Total)
	assert.Equal(t, completedID, page.Data[0].PostID)
}

func TestGetConsultationDetailViewerAnnotations(t *testing.T) {
	db := openTestDB(t)
	repo := NewQueryRepository(db)

	studentID := seedUser(t, db, "student", 0)
	teacherID := seedUser(t, db, "teacher", 0)

	postID := seedConsultation(t, db, studentID, &teacherID, string(entity.ConsultationPending))
	require.NoError(t, db.Create(&model.LikeModel{UserID: teacherID, PostID: postID}).Error)

	// The viewer's liked flag is scoped per viewer.
	view, err := repo.GetConsultationDetail(postID, teacherID)
	require.NoError(t, err)
	assert.True(t, view.UserLiked)

	view, err = repo.GetConsultationDetail(postID, studentID)
	require.NoError(t, err)
	assert.False(t, view.UserLiked)
}

func TestGetPostDetailAnnotations(t *testing.T) {
	db := openTestDB(t)
	repo := NewQueryRepository(db)

	authorID := seedUser(t, db, "author", 0)
	viewerID := seedUser(t, db, "viewer", 0)

	post := model.PostModel{
		UserID: authorID,
		Type:   string(entity.PostTypeGeneral),
		Status: string(entity.StatusPublic),
	}
	require.NoError(t, db.Create(&post).Error)
	require.NoError(t, db.Create(&model.PostGeneralModel{
		PostID:  post.ID,
		Title:   "title",
		Content: "body",
	}).Error)

	comment := model.CommentModel{PostID: post.ID, UserID: viewerID, Content: "top level"}
	require.NoError(t, db.Create(&comment).Error)
	reply := model.CommentModel{PostID: post.ID, UserID: authorID, ParentID: &comment.ID, Content: "reply"}
	require.NoError(t, db.Create(&reply).Error)
	require.NoError(t, db.Create(&model.LikeModel{UserID: viewerID, PostID: post.ID}).Error)

	view, err := repo.GetPostDetail(post.ID, viewerID)
	require.NoError(t, err)

	assert.Equal(t, "title", view.Content.Title)
	assert.True(t, view.UserLiked)
	assert.Equal(t, int64(2), view.CommentCount)
	// Only top-level comments are listed, replies show as a count.
	require.Len(t, view.Comments, 1)
	assert.Equal(t, int64(1), view.Comments[0].ReplyCount)
}

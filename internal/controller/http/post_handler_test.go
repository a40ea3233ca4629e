package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"lingora/internal/entity"
	"lingora/internal/usecase"
	"lingora/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPostUseCase is a mock implementation of PostUseCase
type MockPostUseCase struct {
	mock.Mock
}

func (m *MockPostUseCase) CreatePost(userID string, in *entity.CreatePostInput) (*entity.Post, error) {
	args := m.Called(userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) CreateDraft(userID string, in *entity.CreatePostInput) (*entity.Post, error) {
	args := m.Called(userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) ListDrafts(userID string) ([]*entity.PostView, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.PostView), args.Error(1)
}

func (m *MockPostUseCase) UpdatePost(userID, postID string, in *entity.UpdatePostInput) (*entity.Post, error) {
	args := m.Called(userID, postID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) DeletePost(userID string, role entity.UserRole, postID string) error {
	args := m.Called(userID, role, postID)
	return args.Error(0)
}

func (m *MockPostUseCase) ListPosts(filter entity.PostFilter, viewerID string) (*entity.PostPage, error) {
	args := m.Called(filter, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PostPage), args.Error(1)
}

func (m *MockPostUseCase) GetPost(postID, viewerID string) (*entity.PostView, error) {
	args := m.Called(postID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PostView), args.Error(1)
}

func (m *MockPostUseCase) ListConsultations(filter entity.ConsultationFilter, viewerID string, role entity.UserRole) (*entity.PostPage, error) {
	args := m.Called(filter, viewerID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PostPage), args.Error(1)
}

func (m *MockPostUseCase) GetConsultation(postID, viewerID string, role entity.UserRole) (*entity.PostView, error) {
	args := m.Called(postID, viewerID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PostView), args.Error(1)
}

func (m *MockPostUseCase) ToggleAdminPick(postID string) (bool, error) {
	args := m.Called(postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostUseCase) IncrementView(postID string) error {
	args := m.Called(postID)
	return args.Error(0)
}

func (m *MockPostUseCase) ToggleLike(userID, postID string) (bool, error) {
	args := m.Called(userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostUseCase) AttachTags(userID string, role entity.UserRole, postID string, tags []string) error {
	args := m.Called(userID, role, postID, tags)
	return args.Error(0)
}

var _ usecase.PostUseCase = (*MockPostUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func asUser(userID, role string, handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("user_role", role)
		handler(c)
	}
}

func TestCreatePost_Question(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts", asUser("user-123", "USER", handler.CreatePost))

	expected := &entity.Post{
		ID:     "post-123",
		UserID: "user-123",
		Type:   entity.PostTypeQuestion,
		Status: entity.StatusPublic,
	}
	mockUseCase.On("CreatePost", "user-123", mock.MatchedBy(func(in *entity.CreatePostInput) bool {
		return in.Type == entity.PostTypeQuestion && in.Points == 30
	})).Return(expected, nil)

	body, _ := json.Marshal(map[string]interface{}{
		"type":    "QUESTION",
		"title":   "How do I use the subjunctive?",
		"content": "I keep mixing it up with the conditional.",
		"points":  30,
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestCreatePost_InvalidType(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts", asUser("user-123", "USER", handler.CreatePost))

	body, _ := json.Marshal(map[string]interface{}{
		"type":    "PODCAST",
		"title":   "title",
		"content": "content",
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "CreatePost")
}

func TestCreatePost_InsufficientPoints(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts", asUser("user-123", "USER", handler.CreatePost))

	mockUseCase.On("CreatePost", "user-123", mock.Anything).Return(nil, entity.ErrInsufficientPoints)

	body, _ := json.Marshal(map[string]interface{}{
		"type":    "QUESTION",
		"title":   "title",
		"content": "content",
		"points":  9999,
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "insufficient points", response["error"])
}

func TestCreateDraft_LimitReached(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts/drafts", asUser("user-123", "USER", handler.CreateDraft))

	mockUseCase.On("CreateDraft", "user-123", mock.Anything).Return(nil, entity.ErrDraftLimit)

	body, _ := json.Marshal(map[string]interface{}{
		"type":    "GENERAL",
		"title":   "draft six",
		"content": "one too many",
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/drafts", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeletePost_Conflict(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.DELETE("/posts/:id", asUser("user-123", "USER", handler.DeletePost))

	mockUseCase.On("DeletePost", "user-123", entity.RoleUser, "post-123").Return(entity.ErrConflict)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/posts/post-123", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeletePost_OK(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.DELETE("/posts/:id", asUser("admin-1", "ADMIN", handler.DeletePost))

	mockUseCase.On("DeletePost", "admin-1", entity.RoleAdmin, "post-123").Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/posts/post-123", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestGetPost_IncrementsViews(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/posts/:id", asUser("user-123", "USER", handler.GetPost))

	view := &entity.PostView{PostID: "post-123", Type: entity.PostTypeGeneral}
	mockUseCase.On("GetPost", "post-123", "user-123").Return(view, nil)
	mockUseCase.On("IncrementView", "post-123").Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/post-123", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestListPosts_ParsesFilter(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/posts", asUser("user-123", "USER", handler.ListPosts))

	page := &entity.PostPage{Data: []*entity.PostView{}, Total: 0, Page: 2, Limit: 5}
	mockUseCase.On("ListPosts", mock.MatchedBy(func(f entity.PostFilter) bool {
		return f.Sort == entity.SortPopular && f.Page == 2 && f.Limit == 5 &&
			f.Type != nil && *f.Type == entity.PostTypeColumn
	}), "user-123").Return(page, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts?sort=popular&page=2&limit=5&type=COLUMN", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestGetConsultation_Forbidden(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/consultations/:id", asUser("stranger", "USER", handler.GetConsultation))

	mockUseCase.On("GetConsultation", "post-123", "stranger", entity.RoleUser).Return(nil, entity.ErrForbidden)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/consultations/post-123", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestToggleLike(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts/:id/like", asUser("user-123", "USER", handler.ToggleLike))

	mockUseCase.On("ToggleLike", "user-123", "post-123").Return(true, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/post-123/like", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, true, response["liked"])
}

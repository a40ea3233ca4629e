package http

import (
	"net/http"
	"strconv"

	"lingora/internal/entity"
	"lingora/internal/usecase"
	"lingora/pkg/logger"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUseCase usecase.PostUseCase
	logger      *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, logger *logger.Logger) *PostHandler {
	return &PostHandler{postUseCase: postUseCase, logger: logger}
}

type CreatePostRequest struct {
	Type       string              `json:"type" binding:"required,oneof=GENERAL COLUMN QUESTION SENTENCE CONSULTATION"`
	CategoryID *string             `json:"category_id"`
	Title      string              `json:"title" binding:"required"`
	Content    string              `json:"content" binding:"required"`
	Points     int                 `json:"points"`
	BasePrice  int                 `json:"base_price"`
	IsPrivate  bool                `json:"is_private"`
	Media      []entity.MediaInput `json:"media"`
	Tags       []string            `json:"tags"`
}

func (r *CreatePostRequest) toInput() *entity.CreatePostInput {
	return &entity.CreatePostInput{
		Type:       entity.PostType(r.Type),
		CategoryID: r.CategoryID,
		Title:      r.Title,
		Content:    r.Content,
		Points:     r.Points,
		BasePrice:  r.BasePrice,
		IsPrivate:  r.IsPrivate,
		Media:      r.Media,
		Tags:       r.Tags,
	}
}

type UpdatePostRequest struct {
	CategoryID         *string             `json:"category_id"`
	Title              *string             `json:"title"`
	Content            *string             `json:"content"`
	Points             *int                `json:"points"`
	IsAnswered         *bool               `json:"is_answered"`
	Price              *int                `json:"price"`
	ConsultationStatus *string             `json:"consultation_status"`
	TeacherID          *string             `json:"teacher_id"`
	IsPrivate          *bool               `json:"is_private"`
	Status             *string             `json:"status"`
	Media              []entity.MediaInput `json:"media"`
}

func (r *UpdatePostRequest) toInput() *entity.UpdatePostInput {
	in := &entity.UpdatePostInput{
		CategoryID: r.CategoryID,
		Title:      r.Title,
		Content:    r.Content,
		Points:     r.Points,
		IsAnswered: r.IsAnswered,
		Price:      r.Price,
		TeacherID:  r.TeacherID,
		IsPrivate:  r.IsPrivate,
		Media:      r.Media,
	}
	if r.ConsultationStatus != nil {
		status := entity.ConsultationStatus(*r.ConsultationStatus)
		in.ConsultationStatus = &status
	}
	if r.Status != nil {
		status := entity.PostStatus(*r.Status)
		in.Status = &status
	}
	return in
}

// CreatePost godoc
// @Summary      Create a post
// @Description  Create and publish a post. QUESTION posts escrow the offered points, CONSULTATION posts escrow the base price.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreatePostRequest true "Post payload"
// @Success      201  {object}  entity.Post
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postUseCase.CreatePost(userID, req.toInput())
	if err != nil {
		h.logger.Error("Failed to create post: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// CreateDraft godoc
// @Summary      Save a draft
// @Description  Save a post as a draft. Drafts skip variant validation and never touch the point ledger. At most 5 drafts are kept per post type.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreatePostRequest true "Draft payload"
// @Success      201  {object}  entity.Post
// @Failure      400  {object}  map[string]string
// @Router       /posts/drafts [post]
func (h *PostHandler) CreateDraft(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postUseCase.CreateDraft(userID, req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// ListDrafts godoc
// @Summary      List own drafts
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  entity.PostView
// @Router       /posts/drafts [get]
func (h *PostHandler) ListDrafts(c *gin.Context) {
	drafts, err := h.postUseCase.ListDrafts(c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": drafts})
}

// UpdatePost godoc
// @Summary      Update a post
// @Description  Update own post. Changing a question's points or a consultation's price settles the difference against the point ledger. Publishing a draft escrows the full amount.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        request body UpdatePostRequest true "Fields to change"
// @Success      200  {object}  entity.Post
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("id")

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postUseCase.UpdatePost(userID, postID, req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Soft-delete own post and refund any escrowed points. Refused while the post has comments and is unresolved.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID := c.GetString("user_id")
	role := entity.UserRole(c.GetString("user_role"))

	if err := h.postUseCase.DeletePost(userID, role, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}

// ListPosts godoc
// @Summary      List posts
// @Description  Paginated public posts. Consultations are excluded; use /consultations. Sort accepts latest, oldest or popular.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        type query string false "Post type filter"
// @Param        admin_pick query bool false "Admin picks only"
// @Param        category_id query string false "Category filter"
// @Param        topic_id query string false "Topic filter"
// @Param        sort query string false "latest | oldest | popular"
// @Param        page query int false "Page"
// @Param        limit query int false "Page size"
// @Success      200  {object}  entity.PostPage
// @Router       /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	filter := entity.PostFilter{
		Sort: entity.SortOrder(c.DefaultQuery("sort", "latest")),
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))

	if raw := c.Query("type"); raw != "" {
		postType := entity.PostType(raw)
		if !postType.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post type"})
			return
		}
		filter.Type = &postType
	}
	filter.AdminPick = c.Query("admin_pick") == "true"
	if raw := c.Query("category_id"); raw != "" {
		filter.CategoryID = &raw
	}
	if raw := c.Query("topic_id"); raw != "" {
		filter.TopicID = &raw
	}

	page, err := h.postUseCase.ListPosts(filter, c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetPost godoc
// @Summary      Get post detail
// @Description  Full post view with recent comments, incrementing the view counter.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  entity.PostView
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	postID := c.Param("id")

	view, err := h.postUseCase.GetPost(postID, c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.postUseCase.IncrementView(postID); err != nil {
		h.logger.Warn("Failed to increment views for post %s: %v", postID, err)
	}
	c.JSON(http.StatusOK, view)
}

// ToggleLike godoc
// @Summary      Toggle a like
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  map[string]bool
// @Router       /posts/{id}/like [post]
func (h *PostHandler) ToggleLike(c *gin.Context) {
	liked, err := h.postUseCase.ToggleLike(c.GetString("user_id"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

// IncrementView godoc
// @Summary      Record a view
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  map[string]string
// @Router       /posts/{id}/view [post]
func (h *PostHandler) IncrementView(c *gin.Context) {
	if err := h.postUseCase.IncrementView(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "view recorded"})
}

type AttachTagsRequest struct {
	Tags []string `json:"tags" binding:"required,min=1"`
}

// AttachTags godoc
// @Summary      Attach tags to a post
// @Description  Tags are created on first use and shared across posts. Admin-attached tags are flagged as curated.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        request body AttachTagsRequest true "Tag names"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/tags [post]
func (h *PostHandler) AttachTags(c *gin.Context) {
	var req AttachTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.postUseCase.AttachTags(
		c.GetString("user_id"),
		entity.UserRole(c.GetString("user_role")),
		c.Param("id"),
		req.Tags,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tags attached"})
}

// ToggleAdminPick godoc
// @Summary      Toggle the admin pick flag
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  map[string]bool
// @Failure      403  {object}  map[string]string
// @Router       /posts/{id}/admin-pick [post]
func (h *PostHandler) ToggleAdminPick(c *gin.Context) {
	pick, err := h.postUseCase.ToggleAdminPick(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin_pick": pick})
}

// ListConsultations godoc
// @Summary      List consultations
// @Description  Consultations visible to the caller: admins see all, others only those they opened or teach.
// @Tags         consultations
// @Produce      json
// @Security     BearerAuth
// @Param        category_id query string false "Category filter"
// @Param        topic_id query string false "Topic filter"
// @Param        teacher_id query string false "Assigned teacher filter"
// @Param        status query string false "PENDING | IN_PROGRESS | COMPLETED"
// @Param        page query int false "Page"
// @Param        limit query int false "Page size"
// @Success      200  {object}  entity.PostPage
// @Router       /consultations [get]
func (h *PostHandler) ListConsultations(c *gin.Context) {
	filter := entity.ConsultationFilter{
		Sort: entity.SortOrder(c.DefaultQuery("sort", "latest")),
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))

	if raw := c.Query("category_id"); raw != "" {
		filter.CategoryID = &raw
	}
	if raw := c.Query("topic_id"); raw != "" {
		filter.TopicID = &raw
	}
	if raw := c.Query("teacher_id"); raw != "" {
		filter.TeacherID = &raw
	}
	if raw := c.Query("status"); raw != "" {
		status := entity.ConsultationStatus(raw)
		filter.Status = &status
	}

	page, err := h.postUseCase.ListConsultations(
		filter,
		c.GetString("user_id"),
		entity.UserRole(c.GetString("user_role")),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetConsultation godoc
// @Summary      Get consultation detail
// @Description  Only the student, the assigned teacher, or an admin may read a consultation.
// @Tags         consultations
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  entity.PostView
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /consultations/{id} [get]
func (h *PostHandler) GetConsultation(c *gin.Context) {
	view, err := h.postUseCase.GetConsultation(
		c.Param("id"),
		c.GetString("user_id"),
		entity.UserRole(c.GetString("user_role")),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

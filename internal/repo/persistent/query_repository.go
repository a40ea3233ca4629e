package persistent

import (
	"lingora/internal/entity"
	"lingora/internal/model"

	"gorm.io/gorm"
)

// QueryRepository is the read-only projection layer: list and detail
// views joining posts, variants, authors and social counters. It never
// participates in lifecycle transactions.
type QueryRepository interface {
	ListPosts(filter entity.PostFilter, viewerID string) (*entity.PostPage, error)
	GetPostDetail(postID, viewerID string) (*entity.PostView, error)
	ListConsultations(filter entity.ConsultationFilter, viewerID string, isAdmin bool) (*entity.PostPage, error)
	GetConsultationDetail(postID, viewerID string) (*entity.PostView, error)
	ListDrafts(userID string) ([]*entity.PostView, error)
}

type queryRepository struct {
	db *gorm.DB
}

func NewQueryRepository(db *gorm.DB) QueryRepository {
	return &queryRepository{db: db}
}

const (
	defaultPageLimit    = 10
	previewCommentCount = 3
	detailCommentCount  = 10
)

// popularityExpr ranks by weighted engagement. Applied as a database
// order-by so the ranking is correct across the whole result set, not
// just the fetched page.
const popularityExpr = "(posts.likes * 2 + posts.views) DESC"

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	return page, limit
}

func applySort(query *gorm.DB, sort entity.SortOrder) *gorm.DB {
	switch sort {
	case entity.SortOldest:
		return query.Order("posts.created_at ASC")
	case entity.SortPopular:
		return query.Order(popularityExpr)
	default:
		return query.Order("posts.created_at DESC")
	}
}

func (r *queryRepository) ListPosts(filter entity.PostFilter, viewerID string) (*entity.PostPage, error) {
	page, limit := normalizePage(filter.Page, filter.Limit)

	query := r.db.Model(&model.PostModel{}).Where("posts.status = ?", string(entity.StatusPublic))

	if filter.Type != nil {
		query = query.Where("posts.type = ?", string(*filter.Type))
	} else {
		// Consultations have their own authorized surface.
		query = query.Where("posts.type <> ?", string(entity.PostTypeConsultation))
	}
	if filter.AdminPick {
		query = query.Where("posts.admin_pick = ?", true)
	}
	if filter.CategoryID != nil {
		query = query.Where("posts.category_id = ?", *filter.CategoryID)
	}
	if filter.TopicID != nil {
		query = query.Joins("JOIN categories ON categories.id = posts.category_id").
			Where("categories.topic_id = ?", *filter.TopicID)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var postModels []model.PostModel
	err := applySort(query, filter.Sort).
		Preload("User.Country").
		Preload("Category").
		Preload("General").
		Preload("Column").
		Preload("Question").
		Preload("Sentence").
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("media.position ASC")
		}).
		Limit(limit).Offset((page - 1) * limit).
		Find(&postModels).Error
	if err != nil {
		return nil, err
	}

	views := make([]*entity.PostView, len(postModels))
	for i := range postModels {
		view := ToPostView(&postModels[i])
		if err := r.annotatePost(view, viewerID, previewCommentCount); err != nil {
			return nil, err
		}
		views[i] = view
	}

	return &entity.PostPage{Data: views, Total: total, Page: page, Limit: limit}, nil
}

func (r *queryRepository) GetPostDetail(postID, viewerID string) (*entity.PostView, error) {
	var postModel model.PostModel
	err := r.db.
		Preload("User.Country").
		Preload("Category").
		Preload("General").
		Preload("Column").
		Preload("Question").
		Preload("Sentence").
		Preload("Consultation").
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("media.position ASC")
		}).
		Where("id = ?", postID).First(&postModel).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}

	view := ToPostView(&postModel)
	if err := r.annotatePost(view, viewerID, detailCommentCount); err != nil {
		return nil, err
	}
	return view, nil
}

func (r *queryRepository) ListConsultations(filter entity.ConsultationFilter, viewerID string, isAdmin bool) (*entity.PostPage, error) {
	page, limit := normalizePage(filter.Page, filter.Limit)

	query := r.db.Model(&model.PostModel{}).
		Joins("JOIN post_consultations ON post_consultations.post_id = posts.id").
		Where("posts.type = ?", string(entity.PostTypeConsultation))

	// Non-admin viewers only see consultations they take part in.
	if !isAdmin {
		query = query.Where("post_consultations.student_id = ? OR post_consultations.teacher_id = ?", viewerID, viewerID)
	}
	if filter.CategoryID != nil {
		query = query.Where("posts.category_id = ?", *filter.CategoryID)
	}
	if filter.TopicID != nil {
		query = query.Joins("JOIN categories ON categories.id = posts.category_id").
			Where("categories.topic_id = ?", *filter.TopicID)
	}
	if filter.TeacherID != nil {
		query = query.Where("post_consultations.teacher_id = ?", *filter.TeacherID)
	}
	if filter.Status != nil {
		query = query.Where("post_consultations.status = ?", string(*filter.Status))
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var postModels []model.PostModel
	err := applySort(query, filter.Sort).
		Preload("User.Country").
		Preload("Category").
		Preload("Consultation.Teacher").
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("media.position ASC")
		}).
		Limit(limit).Offset((page - 1) * limit).
		Find(&postModels).Error
	if err != nil {
		return nil, err
	}

	views := make([]*entity.PostView, len(postModels))
	for i := range postModels {
		view := ToPostView(&postModels[i])
		if err := r.annotatePost(view, viewerID, 0); err != nil {
			return nil, err
		}
		views[i] = view
	}

	return &entity.PostPage{Data: views, Total: total, Page: page, Limit: limit}, nil
}

func (r *queryRepository) GetConsultationDetail(postID, viewerID string) (*entity.PostView, error) {
	var postModel model.PostModel
	err := r.db.
		Preload("User.Country").
		Preload("Category").
		Preload("Consultation.Teacher.Country").
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("media.position ASC")
		}).
		Where("id = ? AND type = ?", postID, string(entity.PostTypeConsultation)).
		First(&postModel).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}

	view := ToPostView(&postModel)
	if err := r.annotatePost(view, viewerID, detailCommentCount); err != nil {
		return nil, err
	}
	return view, nil
}

func (r *queryRepository) ListDrafts(userID string) ([]*entity.PostView, error) {
	var postModels []model.PostModel
	err := r.db.
		Preload("Category").
		Preload("General").
		Preload("Column").
		Preload("Question").
		Preload("Sentence").
		Preload("Consultation").
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("media.position ASC")
		}).
		Where("user_id = ? AND status = ?", userID, string(entity.StatusDraft)).
		Order("updated_at DESC").
		Find(&postModels).Error
	if err != nil {
		return nil, err
	}

	views := make([]*entity.PostView, len(postModels))
	for i := range postModels {
		views[i] = ToPostView(&postModels[i])
	}
	return views, nil
}

// annotatePost fills the per-viewer liked flag, the comment counter
// and, when commentLimit > 0, the most recent comments with their
// reply counts and viewer liked flags.
func (r *queryRepository) annotatePost(view *entity.PostView, viewerID string, commentLimit int) error {
	if err := r.db.Model(&model.CommentModel{}).
		Where("post_id = ?", view.PostID).
		Count(&view.CommentCount).Error; err != nil {
		return err
	}

	if viewerID != "" {
		var likeCount int64
		if err := r.db.Model(&model.LikeModel{}).
			Where("user_id = ? AND post_id = ?", viewerID, view.PostID).
			Count(&likeCount).Error; err != nil {
			return err
		}
		view.UserLiked = likeCount > 0
	}

	if commentLimit <= 0 {
		return nil
	}

	var commentModels []model.CommentModel
	err := r.db.
		Preload("User.Country").
		Preload("Media").
		Where("post_id = ? AND parent_id IS NULL", view.PostID).
		Order("created_at DESC").
		Limit(commentLimit).
		Find(&commentModels).Error
	if err != nil {
		return err
	}

	view.Comments = make([]entity.Comment, 0, len(commentModels))
	for i := range commentModels {
		comment := ToCommentEntity(&commentModels[i])

		if err := r.db.Model(&model.CommentModel{}).
			Where("parent_id = ?", comment.ID).
			Count(&comment.ReplyCount).Error; err != nil {
			return err
		}

		if viewerID != "" {
			var likeCount int64
			if err := r.db.Model(&model.CommentLikeModel{}).
				Where("user_id = ? AND comment_id = ?", viewerID, comment.ID).
				Count(&likeCount).Error; err != nil {
				return err
			}
			comment.UserLiked = likeCount > 0
		}

		view.Comments = append(view.Comments, *comment)
	}
	return nil
}

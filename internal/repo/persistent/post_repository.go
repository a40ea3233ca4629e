package persistent

import (
	"time"

	"lingora/internal/entity"
	"lingora/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository holds the write-side primitives the lifecycle manager
// composes into transactions. Methods with a Tx suffix run on the
// caller's transaction handle; the rest are single-statement
// operations on the shared connection.
type PostRepository interface {
	InTx(fn func(tx *gorm.DB) error) error

	CreateTx(tx *gorm.DB, post *entity.Post) error
	GetOwnedTx(tx *gorm.DB, postID, userID string) (*entity.Post, error)
	GetByIDTx(tx *gorm.DB, postID string) (*entity.Post, error)
	UpdateCategoryTx(tx *gorm.DB, postID string, categoryID *string) error
	UpdateStatusTx(tx *gorm.DB, postID string, status entity.PostStatus) error
	TouchTx(tx *gorm.DB, postID string) error
	SoftDeleteTx(tx *gorm.DB, postID string) error
	ReconcileMediaTx(tx *gorm.DB, postID string, media []entity.MediaInput) error
	AttachTagsTx(tx *gorm.DB, postID string, tagNames []string, isAdminTag bool) error
	CountCommentsTx(tx *gorm.DB, postID string) (int64, error)

	CountDrafts(userID string, postType entity.PostType) (int64, error)
	GetAdminPick(postID string) (bool, error)
	SetAdminPick(postID string, pick bool) error
	IncrementViews(postID string) error
	ToggleLike(userID, postID string) (bool, error)
	IsLiked(userID, postID string) (bool, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) InTx(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

func (r *postRepository) CreateTx(tx *gorm.DB, post *entity.Post) error {
	postModel := &model.PostModel{
		ID:         post.ID,
		UserID:     post.UserID,
		CategoryID: post.CategoryID,
		Type:       string(post.Type),
		Status:     string(post.Status),
	}
	if err := tx.Create(postModel).Error; err != nil {
		return err
	}

	post.ID = postModel.ID
	post.CreatedAt = postModel.CreatedAt
	post.UpdatedAt = postModel.UpdatedAt
	return nil
}

// GetOwnedTx loads a live post scoped to its owner. A missing,
// soft-deleted, or foreign post is indistinguishable from the caller's
// point of view: all are ErrNotFound.
func (r *postRepository) GetOwnedTx(tx *gorm.DB, postID, userID string) (*entity.Post, error) {
	var postModel model.PostModel
	err := tx.Preload("Media", func(db *gorm.DB) *gorm.DB {
		return db.Order("media.position ASC")
	}).Where("id = ? AND user_id = ?", postID, userID).First(&postModel).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return ToPostEntity(&postModel), nil
}

func (r *postRepository) GetByIDTx(tx *gorm.DB, postID string) (*entity.Post, error) {
	var postModel model.PostModel
	err := tx.Where("id = ?", postID).First(&postModel).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return ToPostEntity(&postModel), nil
}

func (r *postRepository) UpdateCategoryTx(tx *gorm.DB, postID string, categoryID *string) error {
	return tx.Model(&model.PostModel{}).Where("id = ?", postID).Update("category_id", categoryID).Error
}

func (r *postRepository) UpdateStatusTx(tx *gorm.DB, postID string, status entity.PostStatus) error {
	return tx.Model(&model.PostModel{}).Where("id = ?", postID).Update("status", string(status)).Error
}

func (r *postRepository) TouchTx(tx *gorm.DB, postID string) error {
	return tx.Model(&model.PostModel{}).Where("id = ?", postID).Update("updated_at", time.Now()).Error
}

// SoftDeleteTx marks the post DELETED and stamps deleted_at. Variant
// rows are left in place for audit.
func (r *postRepository) SoftDeleteTx(tx *gorm.DB, postID string) error {
	now := time.Now()
	return tx.Model(&model.PostModel{}).Where("id = ?", postID).Updates(map[string]interface{}{
		"status":     string(entity.StatusDeleted),
		"deleted_at": now,
	}).Error
}

// ReconcileMediaTx diffs the incoming set against the stored rows:
// matched ids are updated, absent ids soft-deleted, entries without an
// id inserted.
func (r *postRepository) ReconcileMediaTx(tx *gorm.DB, postID string, media []entity.MediaInput) error {
	keepIDs := make([]string, 0, len(media))
	for _, m := range media {
		if m.MediaID != nil {
			keepIDs = append(keepIDs, *m.MediaID)
		}
	}

	query := tx.Where("post_id = ?", postID)
	if len(keepIDs) > 0 {
		query = query.Where("id NOT IN ?", keepIDs)
	}
	if err := query.Delete(&model.MediaModel{}).Error; err != nil {
		return err
	}

	for _, m := range media {
		if m.MediaID != nil {
			updates := map[string]interface{}{
				"media_url":  m.MediaURL,
				"media_type": m.MediaType,
				"position":   m.Position,
			}
			if err := tx.Model(&model.MediaModel{}).Where("id = ? AND post_id = ?", *m.MediaID, postID).Updates(updates).Error; err != nil {
				return err
			}
			continue
		}

		mediaModel := &model.MediaModel{
			PostID:    &postID,
			MediaURL:  m.MediaURL,
			MediaType: m.MediaType,
			Position:  m.Position,
		}
		if err := tx.Create(mediaModel).Error; err != nil {
			return err
		}
	}
	return nil
}

// AttachTagsTx upserts each tag by its unique name, so concurrent
// first-use of the same name cannot produce duplicate rows.
func (r *postRepository) AttachTagsTx(tx *gorm.DB, postID string, tagNames []string, isAdminTag bool) error {
	for _, name := range tagNames {
		tagModel := &model.TagModel{
			TagName:    name,
			IsAdminTag: isAdminTag,
			UsageCount: 1,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tag_name"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"usage_count": gorm.Expr("tags.usage_count + 1")}),
		}).Create(tagModel).Error; err != nil {
			return err
		}

		// The upsert path does not report the winning row's id.
		var tag model.TagModel
		if err := tx.Where("tag_name = ?", name).First(&tag).Error; err != nil {
			return err
		}

		link := &model.PostTagModel{PostID: postID, TagID: tag.ID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(link).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *postRepository) CountCommentsTx(tx *gorm.DB, postID string) (int64, error) {
	var count int64
	err := tx.Model(&model.CommentModel{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

func (r *postRepository) CountDrafts(userID string, postType entity.PostType) (int64, error) {
	var count int64
	err := r.db.Model(&model.PostModel{}).
		Where("user_id = ? AND type = ? AND status = ?", userID, string(postType), string(entity.StatusDraft)).
		Count(&count).Error
	return count, err
}

func (r *postRepository) GetAdminPick(postID string) (bool, error) {
	var postModel model.PostModel
	if err := r.db.Select("admin_pick").Where("id = ?", postID).First(&postModel).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, entity.ErrNotFound
		}
		return false, err
	}
	return postModel.AdminPick, nil
}

func (r *postRepository) SetAdminPick(postID string, pick bool) error {
	res := r.db.Model(&model.PostModel{}).Where("id = ?", postID).Update("admin_pick", pick)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *postRepository) IncrementViews(postID string) error {
	return r.db.Model(&model.PostModel{}).Where("id = ?", postID).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

// ToggleLike flips the viewer's like, reviving a previously
// soft-deleted row instead of inserting a duplicate, and keeps the
// post's like counter in step.
func (r *postRepository) ToggleLike(userID, postID string) (bool, error) {
	liked := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing model.LikeModel
		err := tx.Unscoped().Where("user_id = ? AND post_id = ?", userID, postID).First(&existing).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			if err := tx.Create(&model.LikeModel{UserID: userID, PostID: postID}).Error; err != nil {
				return err
			}
			liked = true
		case err != nil:
			return err
		case existing.DeletedAt.Valid:
			if err := tx.Unscoped().Model(&existing).Update("deleted_at", nil).Error; err != nil {
				return err
			}
			liked = true
		default:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
		}

		delta := -1
		if liked {
			delta = 1
		}
		return tx.Model(&model.PostModel{}).Where("id = ?", postID).
			UpdateColumn("likes", gorm.Expr("likes + ?", delta)).Error
	})
	return liked, err
}

func (r *postRepository) IsLiked(userID, postID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.LikeModel{}).Where("user_id = ? AND post_id = ?", userID, postID).Count(&count).Error
	return count > 0, err
}

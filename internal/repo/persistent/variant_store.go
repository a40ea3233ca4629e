package persistent

import (
	"time"

	"lingora/internal/entity"
	"lingora/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VariantStore dispatches type-specific payload handling. Each post
// type registers its own ops; adding a type means adding a
// registration, nothing else changes.
type VariantStore interface {
	// Validate checks the type-specific required fields for a create.
	Validate(in *entity.CreatePostInput, isDraft bool) error
	// Escrow reports the amount a non-draft create must debit and the
	// audit reason to record with it. Zero means no escrow.
	Escrow(in *entity.CreatePostInput) (int, string)
	// CreateTx writes the variant row (and any type-specific side
	// effects) on the caller's transaction.
	CreateTx(tx *gorm.DB, post *entity.Post, in *entity.CreatePostInput) error
	// UpdateTx rewrites the variant row and reports the signed ledger
	// delta the caller must settle (zero when no re-settlement is due).
	UpdateTx(tx *gorm.DB, post *entity.Post, in *entity.UpdatePostInput) (int, string, error)
	// ReadTx loads the variant payload for a post.
	ReadTx(tx *gorm.DB, postType entity.PostType, postID string) (*entity.PostContent, error)
	// Refund reports the escrowed amount to return on deletion.
	Refund(postType entity.PostType, content *entity.PostContent) (int, string)
}

type variantOps struct {
	validate func(in *entity.CreatePostInput, isDraft bool) error
	escrow   func(in *entity.CreatePostInput) (int, string)
	create   func(tx *gorm.DB, post *entity.Post, in *entity.CreatePostInput) error
	update   func(tx *gorm.DB, post *entity.Post, in *entity.UpdatePostInput) (int, string, error)
	read     func(tx *gorm.DB, postID string) (*entity.PostContent, error)
	refund   func(content *entity.PostContent) (int, string)
}

type variantStore struct {
	registry map[entity.PostType]variantOps
}

func NewVariantStore() VariantStore {
	s := &variantStore{registry: make(map[entity.PostType]variantOps)}
	s.register(entity.PostTypeGeneral, generalOps())
	s.register(entity.PostTypeColumn, columnOps())
	s.register(entity.PostTypeQuestion, questionOps())
	s.register(entity.PostTypeSentence, sentenceOps())
	s.register(entity.PostTypeConsultation, consultationOps())
	return s
}

func (s *variantStore) register(t entity.PostType, ops variantOps) {
	s.registry[t] = ops
}

func (s *variantStore) ops(t entity.PostType) (variantOps, error) {
	ops, ok := s.registry[t]
	if !ok {
		return variantOps{}, entity.ErrBadRequest
	}
	return ops, nil
}

func (s *variantStore) Validate(in *entity.CreatePostInput, isDraft bool) error {
	ops, err := s.ops(in.Type)
	if err != nil {
		return err
	}
	if ops.validate == nil {
		return nil
	}
	return ops.validate(in, isDraft)
}

func (s *variantStore) Escrow(in *entity.CreatePostInput) (int, string) {
	ops, err := s.ops(in.Type)
	if err != nil || ops.escrow == nil {
		return 0, ""
	}
	return ops.escrow(in)
}

func (s *variantStore) CreateTx(tx *gorm.DB, post *entity.Post, in *entity.CreatePostInput) error {
	ops, err := s.ops(in.Type)
	if err != nil {
		return err
	}
	return ops.create(tx, post, in)
}

func (s *variantStore) UpdateTx(tx *gorm.DB, post *entity.Post, in *entity.UpdatePostInput) (int, string, error) {
	ops, err := s.ops(post.Type)
	if err != nil {
		return 0, "", err
	}
	return ops.update(tx, post, in)
}

func (s *variantStore) ReadTx(tx *gorm.DB, postType entity.PostType, postID string) (*entity.PostContent, error) {
	ops, err := s.ops(postType)
	if err != nil {
		return nil, err
	}
	return ops.read(tx, postID)
}

func (s *variantStore) Refund(postType entity.PostType, content *entity.PostContent) (int, string) {
	ops, err := s.ops(postType)
	if err != nil || ops.refund == nil || content == nil {
		return 0, ""
	}
	return ops.refund(content)
}

// plainUpdate covers the title/content-only variants.
func plainUpdate(in *entity.UpdatePostInput) map[string]interface{} {
	updates := map[string]interface{}{}
	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.Content != nil {
		updates["content"] = *in.Content
	}
	return updates
}

func generalOps() variantOps {
	return variantOps{
		create: func(tx *gorm.DB, post *entity.Post, in *entity.CreatePostInput) error {
			return tx.Create(&model.PostGeneralModel{
				PostID:  post.ID,
				Title:   in.Title,
				Content: in.Content,
			}).Error
		},
		update: func(tx *gorm.DB, post *entity.Post, in *entity.UpdatePostInput) (int, string, error) {
			updates := plainUpdate(in)
			if len(updates) == 0 {
				return 0, "", nil
			}
			return 0, "", tx.Model(&model.PostGeneralModel{}).Where("post_id = ?", post.ID).Updates(updates).Error
		},
		read: func(tx *gorm.DB, postID string) (*entity.PostContent, error) {
			var m model.PostGeneralModel
			if err := tx.Where("post_id = ?", postID).First(&m).Error; err != nil {
				return nil, err
			}
			return &entity.PostContent{Title: m.Title, Content: m.Content}, nil
		},
	}
}

func columnOps() variantOps {
	return variantOps{
		create: func(tx *gorm.DB, post *entity.Post, in *entity.CreatePostInput) error {
			return tx.Create(&model.PostColumnModel{
				PostID:  post.ID,
				Title:   in.Title,
				Content: in.Content,
			}).Error
		},
		update: func(tx *gorm.DB, post *entity.Post, in *entity.UpdatePostInput) (int, string, error) {
			updates := plainUpdate(in)
			if len(updates) == 0 {
				return 0, "", nil
			}
			return 0, "", tx.Model(&model.PostColumnModel{}).Where("post_id = ?", post.ID).Updates(updates).Error
		},
		read: func(tx *gorm.DB, postID string) (*entity.PostContent, error) {
			var m model.PostColumnModel
			if err := tx.Where("post_id = ?", postID).First(&m).Error; err != nil {
				return nil, err
			}
			return &entity.PostContent{Title: m.Title, Content: m.Content}, nil
		},
	}
}

func questionOps() variantOps {
	return variantOps{
		validate: func(in *entity.CreatePostInput, isDraft bool) error {
			if !isDraft && in.Points <= 0 {
				return entity.ErrBadRequest
			}
			return nil
		},
		escrow: func(in *entity.CreatePostInput) (int, string) {
			return in.Points, entity.ReasonQuestionCreated
		},
		create: func(tx *gorm.DB, post *entity.Post, in *entity.CreatePostInput) error {
			return tx.Create(&model.PostQuestionModel{
				PostID:  post.ID,
				Title:   in.Title,
				Content: in.Content,
				Points:  in.Points,
			}).Error
		},
		update: func(tx *gorm.DB, post *entity.Post, in *entity.UpdatePostInput) (int, string, error) {
			escrowDelta := 0
			reason := ""

			if in.Points != nil && post.Content != nil && *in.Points != post.Content.Points {
				// Raising the stake debits the difference, lowering
				// it credits it back.
				escrowDelta = -(*in.Points - post.Content.Points)
				reason = entity.ReasonQuestionRevised
			}

			updates := plainUpdate(in)
			if in.Points != nil {
				updates["points"] = *in.Points
			}
			if in.IsAnswered != nil {
				updates["is_answered"] = *in.IsAnswered
			}
			if len(updates) > 0 {
				if err := tx.Model(&model.PostQuestionModel{}).Where("post_id = ?", post.ID).Updates(updates).Error; err != nil {
					return 0, "", err
				}
			}
			return escrowDelta, reason, nil
		},
		read: func(tx *gorm.DB, postID string) (*entity.PostContent, error) {
			var m model.PostQuestionModel
			if err := tx.Where("post_id = ?", postID).First(&m).Error; err != nil {
				return nil, err
			}
			return &entity.PostContent{
				Title:      m.Title,
				Content:    m.Content,
				Points:     m.Points,
				IsAnswered: m.IsAnswered,
			}, nil
		},
		refund: func(content *entity.PostContent) (int, string) {
			return content.Points, entity.ReasonQuestionRefunded
		},
	}
}

func sentenceOps() variantOps {
	return variantOps{
		create: func(tx *gorm.DB, post *entity.Post, in *entity.CreatePostInput) error {
			if err := tx.Create(&model.PostSentenceModel{
				PostID:  post.ID,
				Title:   in.Title,
				Content: in.Content,
			}).Error; err != nil {
				return err
			}

			// Sentence posts count toward the author's daily task.
			if err := tx.Model(&model.UserModel{}).
				Where("id = ?", post.UserID).
				UpdateColumn("today_task_count", gorm.Expr("today_task_count + ?", 1)).Error; err != nil {
				return err
			}

			today := time.Now().Format("2006-01-02")
			return tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "type"}, {Name: "log_date"}},
				DoUpdates: clause.Assignments(map[string]interface{}{"count": gorm.Expr("logs.count + 1")}),
			}).Create(&model.LogModel{
				Type:    model.LogTypeTodayTask,
				LogDate: today,
				Count:   1,
			}).Error
		},
		update: func(tx *gorm.DB, post *entity.Post, in *entity.UpdatePostInput) (int, string, error) {
			updates := plainUpdate(in)
			if len(updates) == 0 {
				return 0, "", nil
			}
			return 0, "", tx.Model(&model.PostSentenceModel{}).Where("post_id = ?", post.ID).Updates(updates).Error
		},
		read: func(tx *gorm.DB, postID string) (*entity.PostContent, error) {
			var m model.PostSentenceModel
			if err := tx.Where("post_id = ?", postID).First(&m).Error; err != nil {
				return nil, err
			}
			return &entity.PostContent{Title: m.Title, Content: m.Content}, nil
		},
	}
}

func consultationOps() variantOps {
	return variantOps{
		validate: func(in *entity.CreatePostInput, isDraft bool) error {
			if !isDraft && in.BasePrice <= 0 {
				return entity.ErrBadRequest
			}
			return nil
		},
		escrow: func(in *entity.CreatePostInput) (int, string) {
			return in.BasePrice, entity.ReasonConsultationCreated
		},
		create: func(tx *gorm.DB, post *entity.Post, in *entity.CreatePostInput) error {
			return tx.Create(&model.PostConsultationModel{
				PostID:    post.ID,
				Title:     in.Title,
				Content:   in.Content,
				Price:     in.BasePrice,
				Status:    string(entity.ConsultationPending),
				IsPrivate: in.IsPrivate,
				StudentID: post.UserID,
			}).Error
		},
		update: func(tx *gorm.DB, post *entity.Post, in *entity.UpdatePostInput) (int, string, error) {
			newPrice := in.Price

			// A category change reprices from the new category's base
			// price, overriding any explicitly supplied price.
			if in.CategoryID != nil && (post.CategoryID == nil || *in.CategoryID != *post.CategoryID) {
				var category model.CategoryModel
				if err := tx.Where("id = ?", *in.CategoryID).First(&category).Error; err != nil {
					if err == gorm.ErrRecordNotFound {
						return 0, "", entity.ErrBadRequest
					}
					return 0, "", err
				}
				newPrice = &category.BasePrice
			}

			escrowDelta := 0
			reason := ""
			if newPrice != nil && post.Content != nil && *newPrice != post.Content.Price {
				escrowDelta = -(*newPrice - post.Content.Price)
				reason = entity.ReasonConsultationRepriced
			}

			updates := plainUpdate(in)
			if newPrice != nil {
				updates["price"] = *newPrice
			}
			if in.IsPrivate != nil {
				updates["is_private"] = *in.IsPrivate
			}
			if in.TeacherID != nil {
				updates["teacher_id"] = *in.TeacherID
			}
			if in.ConsultationStatus != nil {
				updates["status"] = string(*in.ConsultationStatus)
				// completed_at is stamped once, on the transition into
				// COMPLETED.
				if *in.ConsultationStatus == entity.ConsultationCompleted &&
					post.Content != nil && post.Content.ConsultationStatus != entity.ConsultationCompleted {
					now := time.Now()
					updates["completed_at"] = &now
				}
			}
			if len(updates) > 0 {
				if err := tx.Model(&model.PostConsultationModel{}).Where("post_id = ?", post.ID).Updates(updates).Error; err != nil {
					return 0, "", err
				}
			}
			return escrowDelta, reason, nil
		},
		read: func(tx *gorm.DB, postID string) (*entity.PostContent, error) {
			var m model.PostConsultationModel
			if err := tx.Where("post_id = ?", postID).First(&m).Error; err != nil {
				return nil, err
			}
			return &entity.PostContent{
				Title:              m.Title,
				Content:            m.Content,
				Price:              m.Price,
				ConsultationStatus: entity.ConsultationStatus(m.Status),
				IsPrivate:          m.IsPrivate,
				StudentID:          m.StudentID,
				TeacherID:          m.TeacherID,
				CompletedAt:        m.CompletedAt,
			}, nil
		},
		refund: func(content *entity.PostContent) (int, string) {
			return content.Price, entity.ReasonConsultationRefunded
		},
	}
}

package usecase

import (
	"fmt"

	"lingora/internal/entity"
	"lingora/internal/repo/persistent"
	"lingora/pkg/logger"
	"lingora/pkg/queue"

	"gorm.io/gorm"
)

// maxDraftsPerType caps how many drafts a user may hold per post type.
const maxDraftsPerType = 5

type PostUseCase interface {
	CreatePost(userID string, in *entity.CreatePostInput) (*entity.Post, error)
	CreateDraft(userID string, in *entity.CreatePostInput) (*entity.Post, error)
	ListDrafts(userID string) ([]*entity.PostView, error)
	UpdatePost(userID, postID string, in *entity.UpdatePostInput) (*entity.Post, error)
	DeletePost(userID string, role entity.UserRole, postID string) error

	ListPosts(filter entity.PostFilter, viewerID string) (*entity.PostPage, error)
	GetPost(postID, viewerID string) (*entity.PostView, error)
	ListConsultations(filter entity.ConsultationFilter, viewerID string, role entity.UserRole) (*entity.PostPage, error)
	GetConsultation(postID, viewerID string, role entity.UserRole) (*entity.PostView, error)

	ToggleAdminPick(postID string) (bool, error)
	AttachTags(userID string, role entity.UserRole, postID string, tags []string) error
	IncrementView(postID string) error
	ToggleLike(userID, postID string) (bool, error)
}

type postUseCase struct {
	postRepo    persistent.PostRepository
	queryRepo   persistent.QueryRepository
	ledgerRepo  persistent.LedgerRepository
	variants    persistent.VariantStore
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewPostUseCase(
	postRepo persistent.PostRepository,
	queryRepo persistent.QueryRepository,
	ledgerRepo persistent.LedgerRepository,
	variants persistent.VariantStore,
	queueClient *queue.Client,
	logger *logger.Logger,
) PostUseCase {
	return &postUseCase{
		postRepo:    postRepo,
		queryRepo:   queryRepo,
		ledgerRepo:  ledgerRepo,
		variants:    variants,
		queueClient: queueClient,
		logger:      logger,
	}
}

func (uc *postUseCase) CreatePost(userID string, in *entity.CreatePostInput) (*entity.Post, error) {
	return uc.create(userID, in, entity.StatusPublic)
}

func (uc *postUseCase) CreateDraft(userID string, in *entity.CreatePostInput) (*entity.Post, error) {
	count, err := uc.postRepo.CountDrafts(userID, in.Type)
	if err != nil {
		return nil, fmt.Errorf("failed to count drafts: %w", err)
	}
	if count >= maxDraftsPerType {
		return nil, entity.ErrDraftLimit
	}
	return uc.create(userID, in, entity.StatusDraft)
}

// create writes the outer row, the variant payload, media and tags in
// one transaction. Publishing a QUESTION or CONSULTATION debits the
// escrow inside the same transaction, so a failed debit rolls the post
// back entirely. Drafts never touch the ledger.
func (uc *postUseCase) create(userID string, in *entity.CreatePostInput, status entity.PostStatus) (*entity.Post, error) {
	if !in.Type.Valid() {
		return nil, entity.ErrBadRequest
	}
	isDraft := status == entity.StatusDraft
	if err := uc.variants.Validate(in, isDraft); err != nil {
		return nil, err
	}

	post := &entity.Post{
		UserID:     userID,
		CategoryID: in.CategoryID,
		Type:       in.Type,
		Status:     status,
	}

	err := uc.postRepo.InTx(func(tx *gorm.DB) error {
		if err := uc.postRepo.CreateTx(tx, post); err != nil {
			return err
		}
		if err := uc.variants.CreateTx(tx, post, in); err != nil {
			return err
		}
		if len(in.Media) > 0 {
			if err := uc.postRepo.ReconcileMediaTx(tx, post.ID, in.Media); err != nil {
				return err
			}
		}
		if len(in.Tags) > 0 {
			if err := uc.postRepo.AttachTagsTx(tx, post.ID, in.Tags, false); err != nil {
				return err
			}
		}

		if !isDraft {
			if amount, reason := uc.variants.Escrow(in); amount > 0 {
				if _, err := uc.ledgerRepo.ApplyDeltaTx(tx, userID, -amount, reason, &post.ID); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	content, err := uc.loadContent(post)
	if err != nil {
		return nil, err
	}
	post.Content = content

	if uc.queueClient != nil && !isDraft {
		go uc.publishPostEvent("post.created", post)
	}

	return post, nil
}

func (uc *postUseCase) ListDrafts(userID string) ([]*entity.PostView, error) {
	return uc.queryRepo.ListDrafts(userID)
}

func (uc *postUseCase) UpdatePost(userID, postID string, in *entity.UpdatePostInput) (*entity.Post, error) {
	var post *entity.Post

	err := uc.postRepo.InTx(func(tx *gorm.DB) error {
		var err error
		post, err = uc.postRepo.GetOwnedTx(tx, postID, userID)
		if err != nil {
			return err
		}
		post.Content, err = uc.variants.ReadTx(tx, post.Type, post.ID)
		if err != nil {
			return err
		}

		publishing := in.Status != nil && *in.Status == entity.StatusPublic && post.Status == entity.StatusDraft

		escrowDelta, reason, err := uc.variants.UpdateTx(tx, post, in)
		if err != nil {
			return err
		}

		if in.CategoryID != nil {
			if err := uc.postRepo.UpdateCategoryTx(tx, post.ID, in.CategoryID); err != nil {
				return err
			}
		}
		if in.Status != nil && *in.Status != post.Status {
			// Publishing a draft is the only status transition this
			// endpoint performs; deletion has its own endpoint.
			if !publishing {
				return entity.ErrBadRequest
			}
			if err := uc.postRepo.UpdateStatusTx(tx, post.ID, *in.Status); err != nil {
				return err
			}
		}
		if in.Media != nil {
			if err := uc.postRepo.ReconcileMediaTx(tx, post.ID, in.Media); err != nil {
				return err
			}
		}

		if publishing {
			// The draft was never escrowed, so publishing debits the
			// full amount as if the post were created now. Any
			// point-diff from this same update is folded in because
			// the escrow is computed from the final payload.
			content, err := uc.variants.ReadTx(tx, post.Type, post.ID)
			if err != nil {
				return err
			}
			publishIn := &entity.CreatePostInput{
				Type:      post.Type,
				Points:    content.Points,
				BasePrice: content.Price,
			}
			if err := uc.variants.Validate(publishIn, false); err != nil {
				return err
			}
			if amount, escrowReason := uc.variants.Escrow(publishIn); amount > 0 {
				if _, err := uc.ledgerRepo.ApplyDeltaTx(tx, userID, -amount, escrowReason, &post.ID); err != nil {
					return err
				}
			}
		} else if escrowDelta != 0 && post.Status == entity.StatusPublic {
			// Drafts never escrowed, so price edits on them settle
			// nothing until the post is published.
			if _, err := uc.ledgerRepo.ApplyDeltaTx(tx, userID, escrowDelta, reason, &post.ID); err != nil {
				return err
			}
		}

		return uc.postRepo.TouchTx(tx, post.ID)
	})
	if err != nil {
		return nil, err
	}

	var fresh *entity.Post
	err = uc.postRepo.InTx(func(tx *gorm.DB) error {
		var err error
		fresh, err = uc.postRepo.GetByIDTx(tx, post.ID)
		if err != nil {
			return err
		}
		fresh.Content, err = uc.variants.ReadTx(tx, fresh.Type, fresh.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return fresh, nil
}

// DeletePost soft-deletes and refunds the escrow. Posts with comments
// are only deletable once resolved: an answered question, a completed
// consultation.
func (uc *postUseCase) DeletePost(userID string, role entity.UserRole, postID string) error {
	return uc.postRepo.InTx(func(tx *gorm.DB) error {
		post, err := uc.postRepo.GetByIDTx(tx, postID)
		if err != nil {
			return err
		}
		if post.UserID != userID && role != entity.RoleAdmin {
			return entity.ErrForbidden
		}

		content, err := uc.variants.ReadTx(tx, post.Type, post.ID)
		if err != nil {
			return err
		}

		commentCount, err := uc.postRepo.CountCommentsTx(tx, post.ID)
		if err != nil {
			return err
		}
		if commentCount > 0 {
			unresolved := (post.Type == entity.PostTypeQuestion && !content.IsAnswered) ||
				(post.Type == entity.PostTypeConsultation && content.ConsultationStatus != entity.ConsultationCompleted)
			if unresolved {
				return entity.ErrConflict
			}
		}

		// Drafts never escrowed anything, so there is nothing to
		// return on their deletion.
		if post.Status == entity.StatusPublic {
			if amount, reason := uc.variants.Refund(post.Type, content); amount > 0 {
				if _, err := uc.ledgerRepo.ApplyDeltaTx(tx, post.UserID, amount, reason, &post.ID); err != nil {
					return err
				}
			}
		}

		return uc.postRepo.SoftDeleteTx(tx, post.ID)
	})
}

func (uc *postUseCase) ListPosts(filter entity.PostFilter, viewerID string) (*entity.PostPage, error) {
	return uc.queryRepo.ListPosts(filter, viewerID)
}

func (uc *postUseCase) GetPost(postID, viewerID string) (*entity.PostView, error) {
	view, err := uc.queryRepo.GetPostDetail(postID, viewerID)
	if err != nil {
		return nil, err
	}
	// The consultation surface applies its own access rules.
	if view.Type == entity.PostTypeConsultation {
		return nil, entity.ErrNotFound
	}
	return view, nil
}

func (uc *postUseCase) ListConsultations(filter entity.ConsultationFilter, viewerID string, role entity.UserRole) (*entity.PostPage, error) {
	return uc.queryRepo.ListConsultations(filter, viewerID, role == entity.RoleAdmin)
}

// GetConsultation restricts the detail view to its participants: the
// student who opened it, the assigned teacher, or an admin.
func (uc *postUseCase) GetConsultation(postID, viewerID string, role entity.UserRole) (*entity.PostView, error) {
	view, err := uc.queryRepo.GetConsultationDetail(postID, viewerID)
	if err != nil {
		return nil, err
	}
	if role == entity.RoleAdmin {
		return view, nil
	}
	if view.Content.StudentID == viewerID {
		return view, nil
	}
	if view.Content.TeacherID != nil && *view.Content.TeacherID == viewerID {
		return view, nil
	}
	return nil, entity.ErrForbidden
}

func (uc *postUseCase) ToggleAdminPick(postID string) (bool, error) {
	pick, err := uc.postRepo.GetAdminPick(postID)
	if err != nil {
		return false, err
	}
	if err := uc.postRepo.SetAdminPick(postID, !pick); err != nil {
		return false, err
	}
	return !pick, nil
}

// AttachTags adds tags to an existing post. Admin-attached tags are
// flagged so curated tags stay distinguishable from user ones.
func (uc *postUseCase) AttachTags(userID string, role entity.UserRole, postID string, tags []string) error {
	if len(tags) == 0 {
		return entity.ErrBadRequest
	}
	isAdmin := role == entity.RoleAdmin

	return uc.postRepo.InTx(func(tx *gorm.DB) error {
		if isAdmin {
			if _, err := uc.postRepo.GetByIDTx(tx, postID); err != nil {
				return err
			}
		} else {
			if _, err := uc.postRepo.GetOwnedTx(tx, postID, userID); err != nil {
				return err
			}
		}
		return uc.postRepo.AttachTagsTx(tx, postID, tags, isAdmin)
	})
}

func (uc *postUseCase) IncrementView(postID string) error {
	return uc.postRepo.IncrementViews(postID)
}

func (uc *postUseCase) ToggleLike(userID, postID string) (bool, error) {
	return uc.postRepo.ToggleLike(userID, postID)
}

func (uc *postUseCase) loadContent(post *entity.Post) (*entity.PostContent, error) {
	var content *entity.PostContent
	err := uc.postRepo.InTx(func(tx *gorm.DB) error {
		var err error
		content, err = uc.variants.ReadTx(tx, post.Type, post.ID)
		return err
	})
	return content, err
}

func (uc *postUseCase) publishPostEvent(eventType string, post *entity.Post) {
	err := uc.queueClient.PublishEvent(map[string]interface{}{
		"type":    eventType,
		"post_id": post.ID,
		"user_id": post.UserID,
	})
	if err != nil {
		uc.logger.Error("Failed to publish %s event for post %s: %v", eventType, post.ID, err)
	}
}

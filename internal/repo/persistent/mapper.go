package persistent

import (
	"time"

	"lingora/internal/entity"
	"lingora/internal/model"
)

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}

	post := &entity.Post{
		ID:         m.ID,
		UserID:     m.UserID,
		CategoryID: m.CategoryID,
		Type:       entity.PostType(m.Type),
		Status:     entity.PostStatus(m.Status),
		Views:      m.Views,
		Likes:      m.Likes,
		AdminPick:  m.AdminPick,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
		Content:    ToPostContent(m),
	}

	if m.DeletedAt.Valid {
		t := m.DeletedAt.Time
		post.DeletedAt = &t
	}

	if len(m.Media) > 0 {
		post.Media = make([]entity.Media, len(m.Media))
		for i := range m.Media {
			post.Media[i] = ToMediaEntity(&m.Media[i])
		}
	}

	return post
}

// ToPostContent integrates whichever variant row is loaded into the
// unified payload shape.
func ToPostContent(m *model.PostModel) *entity.PostContent {
	switch {
	case m.General != nil:
		return &entity.PostContent{
			Title:   m.General.Title,
			Content: m.General.Content,
		}
	case m.Column != nil:
		return &entity.PostContent{
			Title:   m.Column.Title,
			Content: m.Column.Content,
		}
	case m.Question != nil:
		return &entity.PostContent{
			Title:      m.Question.Title,
			Content:    m.Question.Content,
			Points:     m.Question.Points,
			IsAnswered: m.Question.IsAnswered,
		}
	case m.Sentence != nil:
		return &entity.PostContent{
			Title:   m.Sentence.Title,
			Content: m.Sentence.Content,
		}
	case m.Consultation != nil:
		return &entity.PostContent{
			Title:              m.Consultation.Title,
			Content:            m.Consultation.Content,
			Price:              m.Consultation.Price,
			ConsultationStatus: entity.ConsultationStatus(m.Consultation.Status),
			IsPrivate:          m.Consultation.IsPrivate,
			StudentID:          m.Consultation.StudentID,
			TeacherID:          m.Consultation.TeacherID,
			CompletedAt:        m.Consultation.CompletedAt,
		}
	}
	return nil
}

func ToMediaEntity(m *model.MediaModel) entity.Media {
	return entity.Media{
		ID:        m.ID,
		PostID:    m.PostID,
		CommentID: m.CommentID,
		MediaURL:  m.MediaURL,
		MediaType: m.MediaType,
		Position:  m.Position,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToAuthor(u *model.UserModel) entity.Author {
	if u == nil {
		return entity.Author{}
	}

	author := entity.Author{
		UserID:            u.ID,
		Username:          u.Username,
		ProfilePictureURL: u.ProfilePictureURL,
		Level:             u.Level,
	}

	if u.Country != nil {
		author.CountryID = u.Country.ID
		author.CountryCode = u.Country.CountryCode
		author.CountryName = u.Country.CountryName
		author.FlagIcon = u.Country.FlagIcon
	}

	return author
}

func ToCommentEntity(m *model.CommentModel) *entity.Comment {
	if m == nil {
		return nil
	}

	comment := &entity.Comment{
		ID:        m.ID,
		PostID:    m.PostID,
		UserID:    m.UserID,
		ParentID:  m.ParentID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}

	if m.User != nil {
		author := ToAuthor(m.User)
		comment.Author = &author
	}

	if len(m.Media) > 0 {
		comment.Media = make([]entity.Media, len(m.Media))
		for i := range m.Media {
			comment.Media[i] = ToMediaEntity(&m.Media[i])
		}
	}

	return comment
}

func ToPostView(m *model.PostModel) *entity.PostView {
	if m == nil {
		return nil
	}

	view := &entity.PostView{
		PostID:     m.ID,
		UserID:     m.UserID,
		Author:     ToAuthor(m.User),
		CategoryID: m.CategoryID,
		Type:       entity.PostType(m.Type),
		Status:     entity.PostStatus(m.Status),
		Views:      m.Views,
		Likes:      m.Likes,
		AdminPick:  m.AdminPick,
		Media:      []entity.Media{},
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}

	if content := ToPostContent(m); content != nil {
		view.Content = *content
	}

	if m.Category != nil {
		view.CategoryName = m.Category.CategoryName
	}

	for i := range m.Media {
		view.Media = append(view.Media, ToMediaEntity(&m.Media[i]))
	}

	return view
}

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:                m.ID,
		Email:             m.Email,
		Username:          m.Username,
		Password:          m.Password,
		Role:              entity.UserRole(m.Role),
		Points:            m.Points,
		Level:             m.Level,
		TodayTaskCount:    m.TodayTaskCount,
		ProfilePictureURL: m.ProfilePictureURL,
		CountryID:         m.CountryID,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func ToPointEntity(m *model.PointModel) *entity.PointEntry {
	if m == nil {
		return nil
	}

	return &entity.PointEntry{
		ID:        m.ID,
		UserID:    m.UserID,
		PostID:    m.PostID,
		Delta:     m.Delta,
		Reason:    m.Reason,
		CreatedAt: m.CreatedAt,
	}
}

func ToWordEntity(m *model.WordModel) *entity.Word {
	if m == nil {
		return nil
	}

	return &entity.Word{
		ID:           m.ID,
		Word:         m.Word,
		PartOfSpeech: m.PartOfSpeech,
		UsageCount:   m.UsageCount,
	}
}

func ToSelectedWordEntity(m *model.SelectedWordModel) *entity.SelectedWord {
	if m == nil {
		return nil
	}

	selected := &entity.SelectedWord{
		ID:     m.ID,
		WordID: m.WordID,
		Word:   ToWordEntity(m.Word),
	}

	if t, err := time.Parse("2006-01-02", m.SelectedDate); err == nil {
		selected.SelectedDate = t
	}

	return selected
}

func ToBannerEntity(m *model.AdBannerModel) *entity.AdBanner {
	if m == nil {
		return nil
	}

	return &entity.AdBanner{
		ID:             m.ID,
		Position:       m.Position,
		CompanyName:    m.CompanyName,
		Description:    m.Description,
		ImageURL:       m.ImageURL,
		LinkURL:        m.LinkURL,
		ContractPeriod: m.ContractPeriod,
		ContractDate:   m.ContractDate,
		StartDate:      m.StartDate,
		EndDate:        m.EndDate,
		Status:         entity.AdBannerStatus(m.Status),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func ToCountryEntity(m *model.CountryModel) *entity.Country {
	if m == nil {
		return nil
	}

	return &entity.Country{
		ID:          m.ID,
		CountryCode: m.CountryCode,
		CountryName: m.CountryName,
		FlagIcon:    m.FlagIcon,
	}
}

func ToTagEntity(m *model.TagModel) *entity.Tag {
	if m == nil {
		return nil
	}

	return &entity.Tag{
		ID:         m.ID,
		TagName:    m.TagName,
		IsAdminTag: m.IsAdminTag,
		UsageCount: m.UsageCount,
		CreatedAt:  m.CreatedAt,
	}
}

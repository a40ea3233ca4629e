package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostModel struct {
	ID         string         `gorm:"type:uuid;primary_key" json:"id"`
	UserID     string         `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID *string        `gorm:"type:uuid;index" json:"category_id"`
	Type       string         `gorm:"type:varchar(20);not null;index" json:"type"`
	Status     string         `gorm:"type:varchar(20);not null;default:'PUBLIC';index" json:"status"`
	Views      int            `gorm:"default:0" json:"views"`
	Likes      int            `gorm:"default:0" json:"likes"`
	AdminPick  bool           `gorm:"default:false;index" json:"admin_pick"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	User         *UserModel              `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Category     *CategoryModel          `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	General      *PostGeneralModel       `gorm:"foreignKey:PostID" json:"post_general,omitempty"`
	Column       *PostColumnModel        `gorm:"foreignKey:PostID" json:"post_column,omitempty"`
	Question     *PostQuestionModel      `gorm:"foreignKey:PostID" json:"post_question,omitempty"`
	Sentence     *PostSentenceModel      `gorm:"foreignKey:PostID" json:"post_sentence,omitempty"`
	Consultation *PostConsultationModel  `gorm:"foreignKey:PostID" json:"post_consultation,omitempty"`
	Media        []MediaModel            `gorm:"foreignKey:PostID" json:"media,omitempty"`
	Comments     []CommentModel          `gorm:"foreignKey:PostID" json:"comments,omitempty"`
}

func (PostModel) TableName() string {
	return "posts"
}

func (p *PostModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

type PostGeneralModel struct {
	ID      string `gorm:"type:uuid;primary_key" json:"id"`
	PostID  string `gorm:"type:uuid;uniqueIndex;not null" json:"post_id"`
	Title   string `gorm:"type:varchar(255);not null" json:"title"`
	Content string `gorm:"type:text" json:"content"`
}

func (PostGeneralModel) TableName() string {
	return "post_generals"
}

func (m *PostGeneralModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

type PostColumnModel struct {
	ID      string `gorm:"type:uuid;primary_key" json:"id"`
	PostID  string `gorm:"type:uuid;uniqueIndex;not null" json:"post_id"`
	Title   string `gorm:"type:varchar(255);not null" json:"title"`
	Content string `gorm:"type:text" json:"content"`
}

func (PostColumnModel) TableName() string {
	return "post_columns"
}

func (m *PostColumnModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

type PostQuestionModel struct {
	ID         string `gorm:"type:uuid;primary_key" json:"id"`
	PostID     string `gorm:"type:uuid;uniqueIndex;not null" json:"post_id"`
	Title      string `gorm:"type:varchar(255);not null" json:"title"`
	Content    string `gorm:"type:text" json:"content"`
	Points     int    `gorm:"not null" json:"points"`
	IsAnswered bool   `gorm:"default:false" json:"is_answered"`
}

func (PostQuestionModel) TableName() string {
	return "post_questions"
}

func (m *PostQuestionModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

type PostSentenceModel struct {
	ID      string `gorm:"type:uuid;primary_key" json:"id"`
	PostID  string `gorm:"type:uuid;uniqueIndex;not null" json:"post_id"`
	Title   string `gorm:"type:varchar(255);not null" json:"title"`
	Content string `gorm:"type:text" json:"content"`
}

func (PostSentenceModel) TableName() string {
	return "post_sentences"
}

func (m *PostSentenceModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

type PostConsultationModel struct {
	ID          string     `gorm:"type:uuid;primary_key" json:"id"`
	PostID      string     `gorm:"type:uuid;uniqueIndex;not null" json:"post_id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Content     string     `gorm:"type:text" json:"content"`
	Price       int        `gorm:"not null" json:"price"`
	Status      string     `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	IsPrivate   bool       `gorm:"default:false" json:"is_private"`
	StudentID   string     `gorm:"type:uuid;not null;index" json:"student_id"`
	TeacherID   *string    `gorm:"type:uuid;index" json:"teacher_id"`
	CompletedAt *time.Time `json:"completed_at"`

	Teacher *UserModel `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
}

func (PostConsultationModel) TableName() string {
	return "post_consultations"
}

func (m *PostConsultationModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

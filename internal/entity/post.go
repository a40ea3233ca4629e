package entity

import "time"

type PostType string

const (
	PostTypeGeneral      PostType = "GENERAL"
	PostTypeColumn       PostType = "COLUMN"
	PostTypeQuestion     PostType = "QUESTION"
	PostTypeSentence     PostType = "SENTENCE"
	PostTypeConsultation PostType = "CONSULTATION"
)

func (t PostType) Valid() bool {
	switch t {
	case PostTypeGeneral, PostTypeColumn, PostTypeQuestion, PostTypeSentence, PostTypeConsultation:
		return true
	}
	return false
}

type PostStatus string

const (
	StatusDraft   PostStatus = "DRAFT"
	StatusPublic  PostStatus = "PUBLIC"
	StatusDeleted PostStatus = "DELETED"
)

type ConsultationStatus string

const (
	ConsultationPending    ConsultationStatus = "PENDING"
	ConsultationInProgress ConsultationStatus = "IN_PROGRESS"
	ConsultationCompleted  ConsultationStatus = "COMPLETED"
)

// Post is the outer row shared by every post type. The type is fixed at
// creation; status only ever moves DRAFT -> PUBLIC -> DELETED or
// PUBLIC -> DELETED.
type Post struct {
	ID         string     `json:"post_id"`
	UserID     string     `json:"user_id"`
	CategoryID *string    `json:"category_id,omitempty"`
	Type       PostType   `json:"type"`
	Status     PostStatus `json:"status"`
	Views      int        `json:"views"`
	Likes      int        `json:"likes"`
	AdminPick  bool       `json:"admin_pick"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`

	Content *PostContent `json:"post_content,omitempty"`
	Media   []Media      `json:"media,omitempty"`
}

// PostContent is the variant payload. Exactly one exists per post and
// its populated fields depend on the post type.
type PostContent struct {
	Title   string `json:"title"`
	Content string `json:"content"`

	// QUESTION
	Points     int  `json:"points,omitempty"`
	IsAnswered bool `json:"is_answered,omitempty"`

	// CONSULTATION
	Price              int                `json:"price,omitempty"`
	ConsultationStatus ConsultationStatus `json:"consultation_status,omitempty"`
	IsPrivate          bool               `json:"is_private,omitempty"`
	StudentID          string             `json:"student_id,omitempty"`
	TeacherID          *string            `json:"teacher_id,omitempty"`
	CompletedAt        *time.Time         `json:"completed_at,omitempty"`
}

// CreatePostInput carries everything a create or draft call may supply.
type CreatePostInput struct {
	Type       PostType
	CategoryID *string
	Title      string
	Content    string
	Points     int  // QUESTION escrow, required when publishing
	BasePrice  int  // CONSULTATION escrow, required when publishing
	IsPrivate  bool // CONSULTATION
	Media      []MediaInput
	Tags       []string
}

// UpdatePostInput uses pointers so absent fields are left untouched.
type UpdatePostInput struct {
	CategoryID         *string
	Title              *string
	Content            *string
	Points             *int
	IsAnswered         *bool
	Price              *int
	ConsultationStatus *ConsultationStatus
	TeacherID          *string
	IsPrivate          *bool
	Status             *PostStatus
	Media              []MediaInput
}

type MediaInput struct {
	MediaID   *string `json:"media_id,omitempty"`
	MediaURL  string  `json:"media_url"`
	MediaType string  `json:"media_type"`
	Position  int     `json:"position"`
}

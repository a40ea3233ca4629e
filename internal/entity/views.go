package entity

import "time"

// PostView is the integrated read model served by the list and detail
// endpoints: outer post + variant payload + author + social counters,
// annotated per viewer.
type PostView struct {
	PostID       string      `json:"post_id"`
	UserID       string      `json:"user_id"`
	Author       Author      `json:"author"`
	CategoryID   *string     `json:"category_id,omitempty"`
	CategoryName string      `json:"category_name,omitempty"`
	Type         PostType    `json:"type"`
	Status       PostStatus  `json:"status"`
	Views        int         `json:"views"`
	Likes        int         `json:"likes"`
	AdminPick    bool        `json:"admin_pick"`
	Content      PostContent `json:"post_content"`
	Media        []Media     `json:"media"`
	Comments     []Comment   `json:"comments,omitempty"`
	CommentCount int64       `json:"comment_count"`
	UserLiked    bool        `json:"user_liked"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

type PostPage struct {
	Data  []*PostView `json:"data"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

type SortOrder string

const (
	SortLatest  SortOrder = "latest"
	SortOldest  SortOrder = "oldest"
	SortPopular SortOrder = "popular"
)

// PostFilter narrows the list projection. Zero values mean "no
// filter"; the PUBLIC-only and consultation-exclusion rules are
// applied by the query layer itself.
type PostFilter struct {
	Type       *PostType
	AdminPick  bool
	CategoryID *string
	TopicID    *string
	Sort       SortOrder
	Page       int
	Limit      int
}

type ConsultationFilter struct {
	CategoryID *string
	TopicID    *string
	TeacherID  *string
	Status     *ConsultationStatus
	Sort       SortOrder
	Page       int
	Limit      int
}

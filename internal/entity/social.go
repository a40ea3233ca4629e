package entity

import "time"

type Comment struct {
	ID        string    `json:"comment_id"`
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	ParentID  *string   `json:"parent_id,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Projection fields, filled by the query layer.
	Author     *Author `json:"user,omitempty"`
	Media      []Media `json:"media,omitempty"`
	ReplyCount int64   `json:"reply_count"`
	UserLiked  bool    `json:"user_liked"`
}

type Like struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	PostID    string    `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

type CommentLike struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CommentID string    `json:"comment_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Author is the per-post user projection returned by list and detail
// views.
type Author struct {
	UserID            string `json:"user_id"`
	Username          string `json:"username"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty"`
	Level             int    `json:"level"`
	CountryID         string `json:"country_id,omitempty"`
	CountryCode       string `json:"country_code,omitempty"`
	CountryName       string `json:"country_name,omitempty"`
	FlagIcon          string `json:"flag_icon,omitempty"`
}

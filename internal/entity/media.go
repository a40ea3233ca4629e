package entity

import "time"

type Media struct {
	ID        string    `json:"media_id"`
	PostID    *string   `json:"post_id,omitempty"`
	CommentID *string   `json:"comment_id,omitempty"`
	MediaURL  string    `json:"media_url"`
	MediaType string    `json:"media_type"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

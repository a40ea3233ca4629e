package entity

import "time"

type Tag struct {
	ID         string    `json:"tag_id"`
	TagName    string    `json:"tag_name"`
	IsAdminTag bool      `json:"is_admin_tag"`
	UsageCount int       `json:"usage_count"`
	CreatedAt  time.Time `json:"created_at"`
}

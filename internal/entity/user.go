package entity

import "time"

type UserRole string

const (
	RoleUser    UserRole = "USER"
	RoleTeacher UserRole = "TEACHER"
	RoleAdmin   UserRole = "ADMIN"
)

type User struct {
	ID                string    `json:"user_id"`
	Email             string    `json:"email"`
	Username          string    `json:"username"`
	Password          string    `json:"-"`
	Role              UserRole  `json:"role"`
	Points            int       `json:"points"`
	Level             int       `json:"level"`
	TodayTaskCount    int       `json:"today_task_count"`
	ProfilePictureURL string    `json:"profile_picture_url,omitempty"`
	CountryID         *string   `json:"country_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

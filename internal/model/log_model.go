package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const LogTypeTodayTask = "TODAY_TASK_PARTICIPATION"

// LogModel is a per-day activity counter, one row per (type, date).
type LogModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	Type      string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_logs_type_date" json:"type"`
	LogDate   string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_logs_type_date" json:"log_date"`
	Count     int       `gorm:"default:0" json:"count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (LogModel) TableName() string {
	return "logs"
}

func (l *LogModel) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WordModel struct {
	ID           string         `gorm:"type:uuid;primary_key" json:"id"`
	Word         string         `gorm:"not null;uniqueIndex" json:"word"`
	PartOfSpeech string         `gorm:"type:varchar(30)" json:"part_of_speech"`
	UsageCount   int            `gorm:"default:0;index" json:"usage_count"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (WordModel) TableName() string {
	return "wordlist"
}

func (w *WordModel) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	return nil
}

type SelectedWordModel struct {
	ID           string    `gorm:"type:uuid;primary_key" json:"id"`
	WordID       string    `gorm:"type:uuid;not null;uniqueIndex:idx_selected_words_word_date" json:"word_id"`
	SelectedDate string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_selected_words_word_date;index" json:"selected_date"`
	CreatedAt    time.Time `json:"created_at"`

	Word *WordModel `gorm:"foreignKey:WordID" json:"word,omitempty"`
}

func (SelectedWordModel) TableName() string {
	return "selected_words"
}

func (sw *SelectedWordModel) BeforeCreate(tx *gorm.DB) error {
	if sw.ID == "" {
		sw.ID = uuid.New().String()
	}
	return nil
}

package entity

import "time"

type Word struct {
	ID           string `json:"word_id"`
	Word         string `json:"word"`
	PartOfSpeech string `json:"part_of_speech"`
	UsageCount   int    `json:"usage_count"`
}

// SelectedWord records one word picked for a given day's rotation.
type SelectedWord struct {
	ID           string    `json:"id"`
	WordID       string    `json:"word_id"`
	SelectedDate time.Time `json:"selected_date"`
	Word         *Word     `json:"word,omitempty"`
}

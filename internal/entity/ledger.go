package entity

import "time"

// Audit reason tags. Every balance mutation records exactly one of
// these alongside the signed delta.
const (
	ReasonQuestionCreated      = "question post created"
	ReasonConsultationCreated  = "consultation post created"
	ReasonQuestionRevised      = "question points revised"
	ReasonConsultationRepriced = "consultation price revised"
	ReasonQuestionRefunded     = "question post deleted, points refunded"
	ReasonConsultationRefunded = "consultation post deleted, price refunded"
)

// PointEntry is one immutable row of the points audit trail. The
// user's balance is never changed without appending one of these in
// the same transaction.
type PointEntry struct {
	ID        string    `json:"point_id"`
	UserID    string    `json:"user_id"`
	PostID    *string   `json:"post_id,omitempty"`
	Delta     int       `json:"points_change"`
	Reason    string    `json:"change_reason"`
	CreatedAt time.Time `json:"created_at"`
}

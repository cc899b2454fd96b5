package models

import "time"

// AnonymousName is used when a question arrives without a user name.
const AnonymousName = "Anonymous"

// Question is an audience question raised during a presentation.
type Question struct {
	ID             int       `db:"id" json:"_id"`
	PresentationID string    `db:"presentation_id" json:"presentationId"`
	UserName       string    `db:"user_name" json:"userName"`
	Content        string    `db:"content" json:"content"`
	Vote           int       `db:"vote" json:"vote"`
	HasAnswer      bool      `db:"has_answer" json:"hasAnswer"`
	CreatedDate    time.Time `db:"created_date" json:"createdDate"`
}

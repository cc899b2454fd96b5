package models

import "time"

// Document is a slide deck attached to a presentation.
type Document struct {
	ID        int       `db:"id" json:"id"`
	PresID    string    `db:"pres_id" json:"pres_id"`
	Filename  string    `db:"filename" json:"filename"`
	UploadURL string    `db:"upload_url" json:"upload_url"`
	UserID    int       `db:"user_id" json:"user_id"`
	IsPublic  bool      `db:"is_public" json:"is_public"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// DocumentUpdate carries the mutable document fields.
type DocumentUpdate struct {
	Filename  *string `json:"filename"`
	UploadURL *string `json:"upload_url"`
}

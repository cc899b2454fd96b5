package models

import "time"

// Recording is the record kept for one meeting recording.
type Recording struct {
	ID           int       `db:"id" json:"id"`
	RecordID     string    `db:"record_id" json:"record_id"`
	MeetingID    int       `db:"meeting_id" json:"meeting_id"`
	StartTime    string    `db:"start_time" json:"start_time"`
	EndTime      string    `db:"end_time" json:"end_time"`
	PlaybackURL  string    `db:"playback_url" json:"playback_url"`
	Name         string    `db:"name" json:"name"`
	RecordName   string    `db:"record_name" json:"record_name"`
	Participants int       `db:"participants" json:"participants"`
	Published    bool      `db:"published" json:"published"`
	Deleted      bool      `db:"deleted" json:"deleted"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// RecordingUpdate carries the mutable recording fields.
type RecordingUpdate struct {
	Name       *string `json:"name"`
	RecordName *string `json:"record_name"`
	Published  *bool   `json:"published"`
}

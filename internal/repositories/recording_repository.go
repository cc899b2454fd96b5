package repositories

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"presentation-service/internal/models"
)

var (
	ErrRecordingNotFound = errors.New("recording not found")
	ErrRecordingExists   = errors.New("recording already exists")
)

// RecordingRepository abstracts recording persistence.
type RecordingRepository interface {
	CreateRecording(ctx context.Context, rec models.Recording) (models.Recording, error)
	ListRecordings(ctx context.Context, meetingID int, publishedOnly bool) ([]models.Recording, error)
	UpdateRecording(ctx context.Context, recordID string, upd models.RecordingUpdate) error
	SoftDeleteRecording(ctx context.Context, recordID string) error
}

// RecordingRepo is a sqlx implementation of RecordingRepository.
type RecordingRepo struct {
	db *sqlx.DB
}

// NewRecordingRepo constructs a RecordingRepo.
func NewRecordingRepo(db *sqlx.DB) *RecordingRepo {
	return &RecordingRepo{db: db}
}

const recordingColumns = `id, record_id, meeting_id, start_time, end_time, playback_url, name, record_name, participants, published, deleted, created_at, updated_at`

// CreateRecording inserts a recording record; record ids are unique.
func (r *RecordingRepo) CreateRecording(ctx context.Context, rec models.Recording) (models.Recording, error) {
	var created models.Recording
	err := r.db.GetContext(ctx, &created,
		`INSERT INTO recordings (record_id, meeting_id, start_time, end_time, playback_url, name, record_name, participants, published)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING `+recordingColumns,
		rec.RecordID, rec.MeetingID, rec.StartTime, rec.EndTime, rec.PlaybackURL, rec.Name, rec.RecordName, rec.Participants, rec.Published)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return models.Recording{}, ErrRecordingExists
	}
	return created, err
}

// ListRecordings returns the live recordings of a meeting, most recent first.
// Non-owners only see published ones.
func (r *RecordingRepo) ListRecordings(ctx context.Context, meetingID int, publishedOnly bool) ([]models.Recording, error) {
	var recs []models.Recording
	err := r.db.SelectContext(ctx, &recs,
		`SELECT `+recordingColumns+` FROM recordings
         WHERE meeting_id=$1 AND NOT deleted AND (NOT $2 OR published)
         ORDER BY end_time DESC`, meetingID, publishedOnly)
	return recs, err
}

// UpdateRecording applies partial updates to a recording.
func (r *RecordingRepo) UpdateRecording(ctx context.Context, recordID string, upd models.RecordingUpdate) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE recordings SET
            name=COALESCE($2, name),
            record_name=COALESCE($3, record_name),
            published=COALESCE($4, published),
            updated_at=NOW()
         WHERE record_id=$1`,
		recordID, upd.Name, upd.RecordName, upd.Published)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrRecordingNotFound
	}
	return nil
}

// SoftDeleteRecording marks a recording deleted without removing the row.
func (r *RecordingRepo) SoftDeleteRecording(ctx context.Context, recordID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE recordings SET deleted=TRUE, updated_at=NOW() WHERE record_id=$1`, recordID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrRecordingNotFound
	}
	return nil
}

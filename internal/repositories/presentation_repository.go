package repositories

import (
	"context"
	"encoding/json"

	"github.com/jmoiron/sqlx"
)

// PresentationRepository abstracts presentation persistence. Both operations
// are fallible remote calls from the relay's point of view; callers decide
// what a failure means for the broadcast.
type PresentationRepository interface {
	UpdateByID(ctx context.Context, presentationID string, data json.RawMessage) error
	UpdateHistory(ctx context.Context, presentationID string, history json.RawMessage) error
}

// PresentationRepo is a sqlx implementation of PresentationRepository.
type PresentationRepo struct {
	db *sqlx.DB
}

// NewPresentationRepo constructs a PresentationRepo.
func NewPresentationRepo(db *sqlx.DB) *PresentationRepo {
	return &PresentationRepo{db: db}
}

// UpdateByID replaces the stored presentation state, creating the row when
// the presentation has not been persisted before.
func (r *PresentationRepo) UpdateByID(ctx context.Context, presentationID string, data json.RawMessage) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO presentations (id, data) VALUES ($1, $2)
         ON CONFLICT (id) DO UPDATE SET data=EXCLUDED.data, updated_at=NOW()`,
		presentationID, data)
	return err
}

// UpdateHistory replaces the stored presentation history.
func (r *PresentationRepo) UpdateHistory(ctx context.Context, presentationID string, history json.RawMessage) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO presentations (id, history) VALUES ($1, $2)
         ON CONFLICT (id) DO UPDATE SET history=EXCLUDED.history, updated_at=NOW()`,
		presentationID, history)
	return err
}

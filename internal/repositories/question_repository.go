package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"presentation-service/internal/models"
)

var ErrQuestionNotFound = errors.New("question not found")

// QuestionRepository abstracts question persistence.
type QuestionRepository interface {
	CreateQuestion(ctx context.Context, q models.Question) (models.Question, error)
	UpdateVote(ctx context.Context, questionID, vote int) (models.Question, error)
	DeleteByPresentation(ctx context.Context, presentationID string) error
}

// QuestionRepo is a sqlx implementation of QuestionRepository.
type QuestionRepo struct {
	db *sqlx.DB
}

// NewQuestionRepo constructs a QuestionRepo.
func NewQuestionRepo(db *sqlx.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

const questionColumns = `id, presentation_id, user_name, content, vote, has_answer, created_date`

// CreateQuestion inserts an audience question.
func (r *QuestionRepo) CreateQuestion(ctx context.Context, q models.Question) (models.Question, error) {
	var created models.Question
	err := r.db.GetContext(ctx, &created,
		`INSERT INTO questions (presentation_id, user_name, content, vote, has_answer, created_date)
         VALUES ($1, $2, $3, $4, $5, $6) RETURNING `+questionColumns,
		q.PresentationID, q.UserName, q.Content, q.Vote, q.HasAnswer, q.CreatedDate)
	return created, err
}

// UpdateVote sets the vote count of a question and returns the updated row.
func (r *QuestionRepo) UpdateVote(ctx context.Context, questionID, vote int) (models.Question, error) {
	var q models.Question
	err := r.db.GetContext(ctx, &q,
		`UPDATE questions SET vote=$2 WHERE id=$1 RETURNING `+questionColumns, questionID, vote)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Question{}, ErrQuestionNotFound
	}
	return q, err
}

// DeleteByPresentation removes every question raised for a presentation.
func (r *QuestionRepo) DeleteByPresentation(ctx context.Context, presentationID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE presentation_id=$1`, presentationID)
	return err
}

package repositories

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"presentation-service/internal/models"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrDocumentExists   = errors.New("document already exists")
)

// DocumentRepository abstracts document persistence.
type DocumentRepository interface {
	CreateDocument(ctx context.Context, doc models.Document) (models.Document, error)
	ListDocuments(ctx context.Context, userID int, presIDs []string) ([]models.Document, error)
	UpdateDocument(ctx context.Context, presID string, userID int, upd models.DocumentUpdate) error
	DeleteDocument(ctx context.Context, presID string, userID int) error
}

// DocumentRepo is a sqlx implementation of DocumentRepository.
type DocumentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo constructs a DocumentRepo.
func NewDocumentRepo(db *sqlx.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

const documentColumns = `id, pres_id, filename, upload_url, user_id, is_public, created_at`

// CreateDocument inserts a document record; presentation ids are unique.
func (r *DocumentRepo) CreateDocument(ctx context.Context, doc models.Document) (models.Document, error) {
	var created models.Document
	err := r.db.GetContext(ctx, &created,
		`INSERT INTO documents (pres_id, filename, upload_url, user_id, is_public)
         VALUES ($1, $2, $3, $4, $5) RETURNING `+documentColumns,
		doc.PresID, doc.Filename, doc.UploadURL, doc.UserID, doc.IsPublic)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return models.Document{}, ErrDocumentExists
	}
	return created, err
}

// ListDocuments returns the caller's documents for the given presentation
// ids, or every document the caller may see when the filter is empty.
func (r *DocumentRepo) ListDocuments(ctx context.Context, userID int, presIDs []string) ([]models.Document, error) {
	var docs []models.Document
	var err error
	if len(presIDs) > 0 {
		err = r.db.SelectContext(ctx, &docs,
			`SELECT `+documentColumns+` FROM documents
             WHERE pres_id = ANY($1) AND user_id=$2 ORDER BY created_at DESC`,
			pq.Array(presIDs), userID)
	} else {
		err = r.db.SelectContext(ctx, &docs,
			`SELECT `+documentColumns+` FROM documents
             WHERE user_id=$1 OR is_public ORDER BY created_at DESC`, userID)
	}
	return docs, err
}

// UpdateDocument applies partial updates to the caller's document.
func (r *DocumentRepo) UpdateDocument(ctx context.Context, presID string, userID int, upd models.DocumentUpdate) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE documents SET
            filename=COALESCE($3, filename),
            upload_url=COALESCE($4, upload_url)
         WHERE pres_id=$1 AND user_id=$2`,
		presID, userID, upd.Filename, upd.UploadURL)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

// DeleteDocument removes the caller's document for a presentation.
func (r *DocumentRepo) DeleteDocument(ctx context.Context, presID string, userID int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE pres_id=$1 AND user_id=$2`, presID, userID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

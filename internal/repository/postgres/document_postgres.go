package postgres

import (
	"context"
	"database/sql"

	"digisign/internal/model"
	"digisign/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `id, title, mime_type, size, storage_key, content_sha256, created_by_id, created_at`

func scanDocument(row *sql.Row) (*model.Document, error) {
	var d model.Document
	if err := row.Scan(
		&d.ID,
		&d.Title,
		&d.MimeType,
		&d.Size,
		&d.StorageKey,
		&d.ContentSHA256,
		&d.CreatedByID,
		&d.CreatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	return &d, nil
}

// Create inserts a new document row and returns the stored record.
// The content_sha256 UNIQUE constraint makes concurrent uploads of identical
// content lose deterministically with repository.ErrDuplicate.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (id, title, mime_type, size, storage_key, content_sha256, created_by_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + documentColumns

	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.Title,
		doc.MimeType,
		doc.Size,
		doc.StorageKey,
		doc.ContentSHA256,
		doc.CreatedByID,
		doc.CreatedAt,
	)
	return scanDocument(row)
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// FindByContentSHA256 fetches a document by its content fingerprint.
func (r *DocumentPostgres) FindByContentSHA256(ctx context.Context, sha string) (*model.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents WHERE content_sha256 = $1`
	return scanDocument(r.db.QueryRowContext(ctx, q, sha))
}

// FindLatest fetches the most recently created document.
func (r *DocumentPostgres) FindLatest(ctx context.Context) (*model.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents ORDER BY created_at DESC, id DESC LIMIT 1`
	return scanDocument(r.db.QueryRowContext(ctx, q))
}

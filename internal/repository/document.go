package repository

import (
	"context"

	"digisign/internal/model"
)

// DocumentRepository defines data access for documents using SQL queries only.
// No business logic here — strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new document record. The content_sha256 UNIQUE
	// constraint is enforced by the store; a violation surfaces as
	// ErrDuplicate. Returns the stored document.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// FindByContentSHA256 returns the document holding the given content
	// fingerprint, or ErrNotFound. Used as the upload dedup fast path.
	FindByContentSHA256(ctx context.Context, sha string) (*model.Document, error)

	// FindLatest returns the most recently created document, or ErrNotFound
	// when the store is empty.
	FindLatest(ctx context.Context) (*model.Document, error)
}

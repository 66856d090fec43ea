package repository

import (
	"context"
	"time"

	"digisign/internal/model"
)

// SignatureRepository defines data access for signatures using SQL queries only.
type SignatureRepository interface {
	// Create inserts a new PENDING signature row. A (document_id, cpf)
	// uniqueness violation surfaces as ErrDuplicate.
	Create(ctx context.Context, sig *model.Signature) (*model.Signature, error)

	// FindByDocumentAndCPF returns the signature for a signer on a document,
	// or ErrNotFound. Used as the registration dedup fast path.
	FindByDocumentAndCPF(ctx context.Context, documentID, cpf string) (*model.Signature, error)

	// MarkSigned transitions a signature to SIGNED unconditionally, refreshing
	// signed_at. Returns ErrNotFound if the row does not exist.
	MarkSigned(ctx context.Context, id string, signedAt time.Time) (*model.Signature, error)

	// UpsertSigned atomically creates-or-overwrites the signature keyed by
	// (document_id, cpf) as SIGNED with the given hash and timestamp. It must
	// be a single store operation so concurrent identical calls converge on
	// the same row instead of racing a read-then-write.
	UpsertSigned(ctx context.Context, documentID, name, cpf, hash string, signedAt time.Time) (*model.Signature, error)

	// ListByDocument returns all signatures on a document, newest first.
	ListByDocument(ctx context.Context, documentID string) ([]model.Signature, error)

	// ListPage returns up to limit items after the cursor position in strict
	// (created_at DESC, id DESC) order, joined with document metadata.
	// A nil cursor starts from the head of the log.
	ListPage(ctx context.Context, limit int, cursor *SignatureCursor) ([]SignatureListItem, error)
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"digisign/internal/content"
	"digisign/internal/model"
	"digisign/internal/repository"
)

// Signature listing limits, clamped the same way for every caller.
const (
	defaultListLimit = 50
	maxListLimit     = 100
)

// SignatureListResult is a page of the signature log plus the keyset position
// to resume from. NextCursor is nil at end of sequence.
type SignatureListResult struct {
	Items      []repository.SignatureListItem `json:"items"`
	NextCursor *repository.SignatureCursor    `json:"nextCursor"`
}

// SignatureService defines the signature workflow: admin signer registration,
// the explicit sign transition, idempotent public signing and listing.
type SignatureService interface {
	// Create registers a PENDING signer on a document (admin path).
	Create(ctx context.Context, documentID, name, cpf string) (*model.Signature, error)

	// Sign transitions a signature to SIGNED unconditionally, refreshing the
	// timestamp. Re-applying to an already-signed record is tolerated.
	Sign(ctx context.Context, signatureID string) (*model.Signature, error)

	// SignPublic records a public signature and returns its verification hash.
	// The hash depends only on document content and normalized CPF, and the
	// underlying write is an atomic upsert, so the operation is idempotent and
	// safe under concurrent identical calls.
	SignPublic(ctx context.Context, documentID, cpf string) (string, error)

	// List returns a keyset-paginated page over the signature log in strict
	// (createdAt DESC, id DESC) order.
	List(ctx context.Context, limit int, cursor *repository.SignatureCursor) (*SignatureListResult, error)

	// ListByDocument returns all signatures on one document, newest first.
	ListByDocument(ctx context.Context, documentID string) ([]model.Signature, error)
}

// signatureService is a concrete implementation of SignatureService.
type signatureService struct {
	docs repository.DocumentRepository
	sigs repository.SignatureRepository
}

// NewSignatureService constructs a new SignatureService.
func NewSignatureService(docs repository.DocumentRepository, sigs repository.SignatureRepository) SignatureService {
	return &signatureService{docs: docs, sigs: sigs}
}

func (s *signatureService) Create(ctx context.Context, documentID, name, cpf string) (*model.Signature, error) {
	if _, err := s.docs.FindByID(ctx, documentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}

	normalized := content.NormalizeCPF(cpf)

	// Fast-path dedup-by-signer check; the (document_id, cpf) UNIQUE
	// constraint catches the concurrent registration this read can miss.
	if _, err := s.sigs.FindByDocumentAndCPF(ctx, documentID, normalized); err == nil {
		return nil, ErrSignerAlreadyAdded
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	sig, err := s.sigs.Create(ctx, &model.Signature{
		ID:         uuid.NewString(),
		DocumentID: documentID,
		Name:       name,
		CPF:        normalized,
		Status:     model.SignatureStatusPending,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSignerAlreadyAdded
		}
		return nil, err
	}
	return sig, nil
}

func (s *signatureService) Sign(ctx context.Context, signatureID string) (*model.Signature, error) {
	sig, err := s.sigs.MarkSigned(ctx, signatureID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSignatureNotFound
		}
		return nil, err
	}
	return sig, nil
}

func (s *signatureService) SignPublic(ctx context.Context, documentID, cpf string) (string, error) {
	doc, err := s.docs.FindByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrDocumentNotFound
		}
		return "", err
	}

	normalized := content.NormalizeCPF(cpf)
	hash := content.SigningHash(doc.ContentSHA256, normalized)

	sig, err := s.sigs.UpsertSigned(ctx, documentID, doc.Title, normalized, hash, time.Now().UTC())
	if err != nil {
		return "", err
	}
	if sig.Hash != nil {
		return *sig.Hash, nil
	}
	return hash, nil
}

func (s *signatureService) List(ctx context.Context, limit int, cursor *repository.SignatureCursor) (*SignatureListResult, error) {
	if limit == 0 {
		limit = defaultListLimit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	items, err := s.sigs.ListPage(ctx, limit, cursor)
	if err != nil {
		return nil, err
	}

	res := &SignatureListResult{Items: items}
	if len(items) > 0 {
		last := items[len(items)-1]
		res.NextCursor = &repository.SignatureCursor{ID: last.ID, CreatedAt: last.CreatedAt}
	}
	return res, nil
}

func (s *signatureService) ListByDocument(ctx context.Context, documentID string) ([]model.Signature, error) {
	return s.sigs.ListByDocument(ctx, documentID)
}

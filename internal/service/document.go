package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"digisign/internal/content"
	"digisign/internal/model"
	"digisign/internal/repository"
	"digisign/internal/storage"
)

// defaultPresignExpiry bounds certificate download URLs when no expiry is configured.
const defaultPresignExpiry = 900 * time.Second

// NextDocument is the public projection of the next document available to sign.
type NextDocument struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	DownloadURL string `json:"downloadUrl"`
}

// DocumentService defines the document use cases: the upload transaction,
// metadata access and certificate (presigned download) access.
type DocumentService interface {
	// Upload validates the PDF signature, deduplicates by content fingerprint,
	// writes the blob and then the metadata record, compensating the blob on a
	// failed metadata write. The metadata store is the source of truth: a
	// returned Document means the upload is committed even when the blob write
	// was skipped (lenient mode, empty StorageKey).
	Upload(ctx context.Context, title string, data []byte, mimeType string, size int64, createdByID string) (*model.Document, error)

	// GetMetadata returns a document by its ID.
	GetMetadata(ctx context.Context, id string) (*model.Document, error)

	// NextForUser returns the most recent document for public signing, or nil
	// when none exists.
	NextForUser(ctx context.Context) (*NextDocument, error)

	// CertificateURL returns a bounded-expiry presigned download URL for the
	// document's blob.
	CertificateURL(ctx context.Context, documentID string) (string, error)
}

// DocumentConfig carries the deployment switches for the document service.
// StrictStorage turns blob-store unavailability into ErrStorageUnavailable
// instead of a degraded upload.
type DocumentConfig struct {
	StrictStorage bool
	PresignExpiry time.Duration
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store  storage.Storage
	docs   repository.DocumentRepository
	cfg    DocumentConfig
	logger *slog.Logger
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, docs repository.DocumentRepository, cfg DocumentConfig, logger *slog.Logger) DocumentService {
	if cfg.PresignExpiry <= 0 {
		cfg.PresignExpiry = defaultPresignExpiry
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &documentService{store: store, docs: docs, cfg: cfg, logger: logger.With("service", "documents")}
}

func (s *documentService) Upload(ctx context.Context, title string, data []byte, mimeType string, size int64, createdByID string) (*model.Document, error) {
	if len(data) == 0 {
		return nil, ErrFileRequired
	}
	if !content.IsPDF(data) {
		return nil, ErrInvalidPDF
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	sha := content.Fingerprint(data)

	// Fast-path dedup check. The content_sha256 UNIQUE constraint is the
	// actual correctness mechanism; a racing upload that slips past this read
	// is rejected at Create below.
	if _, err := s.docs.FindByContentSHA256(ctx, sha); err == nil {
		return nil, ErrDuplicateContent
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	// Content-addressed key plus a random disambiguator, in case the dedup
	// check above races and both writers reach the blob store.
	key := fmt.Sprintf("documents/%s-%s.pdf", sha, uuid.NewString())

	blobWritten := false
	if s.store.Ready(ctx) {
		if _, err := s.store.Put(ctx, key, bytes.NewReader(data), storage.PutObjectOptions{
			Size:        size,
			ContentType: mimeType,
		}); err != nil {
			return nil, fmt.Errorf("upload to storage: %w", err)
		}
		blobWritten = true
	} else if s.cfg.StrictStorage {
		return nil, ErrStorageUnavailable
	}

	doc := &model.Document{
		ID:            uuid.NewString(),
		Title:         title,
		MimeType:      mimeType,
		Size:          size,
		ContentSHA256: sha,
		CreatedByID:   createdByID,
		CreatedAt:     time.Now().UTC(),
	}
	if blobWritten {
		doc.StorageKey = key
	}

	stored, err := s.docs.Create(ctx, doc)
	if err != nil {
		if blobWritten {
			// Best-effort compensating delete. Its failure is a leaked-object
			// cleanup concern, never escalated into the caller-visible error.
			if delErr := s.store.Delete(ctx, key); delErr != nil {
				s.logger.Warn("compensating blob delete failed", "key", key, "error", delErr)
			}
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateContent
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

// GetMetadata returns a document by ID.
func (s *documentService) GetMetadata(ctx context.Context, id string) (*model.Document, error) {
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return doc, nil
}

// NextForUser returns the most recent document, nil when the store is empty.
// The download URL stays empty: public signers never get direct blob access.
func (s *documentService) NextForUser(ctx context.Context) (*NextDocument, error) {
	doc, err := s.docs.FindLatest(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &NextDocument{ID: doc.ID, Title: doc.Title, DownloadURL: ""}, nil
}

// CertificateURL resolves a presigned download URL for the document's blob.
// A degraded document (no blob) reads as a business condition normally, or as
// an infrastructure fault when the deployment is strict.
func (s *documentService) CertificateURL(ctx context.Context, documentID string) (string, error) {
	doc, err := s.docs.FindByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrDocumentNotFound
		}
		return "", err
	}
	if !doc.Stored() {
		if s.cfg.StrictStorage {
			return "", ErrStorageUnavailable
		}
		return "", ErrCertificateUnavailable
	}
	return s.store.PresignGet(ctx, doc.StorageKey, s.cfg.PresignExpiry)
}

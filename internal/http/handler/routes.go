package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"digisign/internal/repository"
	"digisign/internal/service"
)

// createdByHeader carries the uploading principal's id, injected by the
// authenticating gateway in front of this service.
const createdByHeader = "X-User-ID"

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin: parse, delegate to a service, translate errors.
func RegisterRoutes(app *fiber.App, db *sql.DB, docSvc service.DocumentService, sigSvc service.SignatureService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Post("/admin/documents", UploadDocument(docSvc))
	app.Get("/documents/:id", GetDocument(docSvc))
	app.Get("/documents/:id/signatures", ListDocumentSignatures(sigSvc))
	app.Get("/documents/:id/certificate-url", CertificateURL(docSvc))

	app.Post("/admin/documents/:id/signatures", CreateSignature(sigSvc))
	app.Get("/admin/signatures", ListSignatures(sigSvc))
	app.Post("/signatures/:id/sign", SignSignature(sigSvc))

	app.Get("/user/documents/next", NextDocument(docSvc))
	app.Post("/user/sign", SignPublic(sigSvc))
}

// HealthCheck reports readiness by pinging the metadata store.
// @Summary Health check
// @Tags Health
// @Success 200 {object} map[string]string
// @Router /health [get]
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a simple liveness endpoint.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// UploadDocument handles the admin PDF upload (multipart/form-data: title, file).
// @Summary Upload a PDF document
// @Tags Documents
// @Accept mpfd
// @Success 201 {object} model.Document
// @Router /admin/documents [post]
func UploadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		title := c.FormValue("title")

		fh, err := c.FormFile("file")
		if err != nil || fh.Size <= 0 {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is missing or empty")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_READ_ERROR", "cannot read uploaded file")
		}

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		doc, err := svc.Upload(c.UserContext(), title, data, ct, fh.Size, c.Get(createdByHeader))
		if err != nil {
			return writeDomainError(c, err)
		}

		c.Set("ETag", fmt.Sprintf(`W/%q`, doc.ContentSHA256))
		c.Set("Location", "/documents/"+doc.ID)
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// GetDocument returns document metadata with weak-ETag conditional support.
// @Summary Get document metadata
// @Tags Documents
// @Success 200 {object} model.Document
// @Router /documents/{id} [get]
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		doc, err := svc.GetMetadata(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrDocumentNotFound) {
				return writeError(c, fiber.StatusNotFound, "DOCUMENT_NOT_FOUND", "document not found")
			}
			return writeDomainError(c, err)
		}

		etag := fmt.Sprintf(`W/%q`, doc.ContentSHA256)
		c.Set("ETag", etag)
		if c.Get("If-None-Match") == etag {
			return c.SendStatus(fiber.StatusNotModified)
		}
		return c.JSON(doc)
	}
}

// NextDocument returns the most recent document available for public signing.
// @Summary Next document available for the public signer
// @Tags Public
// @Router /user/documents/next [get]
func NextDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		next, err := svc.NextForUser(c.UserContext())
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(next)
	}
}

type signPublicRequest struct {
	DocumentID string `json:"documentId"`
	CPF        string `json:"cpf"`
}

// SignPublic records a public signature and returns its verification hash.
// A SIGNER_ALREADY_ADDED conflict from the admin-side uniqueness constraint is
// treated as success by re-invoking the idempotent signing path, whose result
// is reproducible.
// @Summary Sign a document publicly by CPF
// @Tags Public
// @Accept json
// @Success 200 {object} map[string]string
// @Router /user/sign [post]
func SignPublic(svc service.SignatureService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req signPublicRequest
		if err := c.BodyParser(&req); err != nil || req.DocumentID == "" || req.CPF == "" {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "documentId and cpf are required")
		}

		hash, err := svc.SignPublic(c.UserContext(), req.DocumentID, req.CPF)
		if errors.Is(err, service.ErrSignerAlreadyAdded) {
			hash, err = svc.SignPublic(c.UserContext(), req.DocumentID, req.CPF)
		}
		if err != nil {
			return writeDomainError(c, err)
		}

		if key := c.Get("Idempotency-Key"); key != "" {
			c.Set("Idempotency-Key", key)
		}
		return c.JSON(fiber.Map{"hash": hash})
	}
}

type createSignatureRequest struct {
	Name string `json:"name"`
	CPF  string `json:"cpf"`
}

// CreateSignature registers a signer on a document (admin path).
// @Summary Add a signer to a document
// @Tags Signatures
// @Accept json
// @Success 201 {object} model.Signature
// @Router /admin/documents/{id}/signatures [post]
func CreateSignature(svc service.SignatureService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		documentID := c.Params("id")
		if _, err := uuid.Parse(documentID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var req createSignatureRequest
		if err := c.BodyParser(&req); err != nil || req.Name == "" || req.CPF == "" {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "name and cpf are required")
		}

		sig, err := svc.Create(c.UserContext(), documentID, req.Name, req.CPF)
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(sig)
	}
}

// ListSignatures pages over the signature log with a keyset cursor.
// Out-of-range or non-numeric limits fall back to the clamped default rather
// than erroring; an incomplete cursor means start-of-sequence.
// @Summary List signatures (admin)
// @Tags Signatures
// @Router /admin/signatures [get]
func ListSignatures(svc service.SignatureService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit"))
		if err != nil {
			limit = 0
		}

		var cursor *repository.SignatureCursor
		if id := c.Query("cursorId"); id != "" {
			if createdAt, err := time.Parse(time.RFC3339, c.Query("cursorCreatedAt")); err == nil {
				cursor = &repository.SignatureCursor{ID: id, CreatedAt: createdAt}
			}
		}

		res, err := svc.List(c.UserContext(), limit, cursor)
		if err != nil {
			return writeDomainError(c, err)
		}

		// Compatibility: plain array unless the envelope format is requested.
		if c.Query("format") != "envelope" {
			return c.JSON(res.Items)
		}
		return c.JSON(res)
	}
}

// ListDocumentSignatures lists all signatures on one document.
// @Summary List signatures of a document
// @Tags Signatures
// @Router /documents/{id}/signatures [get]
func ListDocumentSignatures(svc service.SignatureService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		documentID := c.Params("id")
		if _, err := uuid.Parse(documentID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		items, err := svc.ListByDocument(c.UserContext(), documentID)
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(items)
	}
}

// SignSignature marks a signature as SIGNED (admin flow).
// @Summary Mark a signature as signed
// @Tags Signatures
// @Success 200 {object} model.Signature
// @Router /signatures/{id}/sign [post]
func SignSignature(svc service.SignatureService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		sig, err := svc.Sign(c.UserContext(), id)
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(sig)
	}
}

// CertificateURL returns a presigned download URL for the document's blob.
// @Summary Presigned certificate download URL
// @Tags Documents
// @Success 200 {object} map[string]string
// @Router /documents/{id}/certificate-url [get]
func CertificateURL(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		url, err := svc.CertificateURL(c.UserContext(), id)
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(fiber.Map{"url": url})
	}
}

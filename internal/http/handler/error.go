package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"digisign/internal/http/middleware"
	"digisign/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "DUPLICATE_CONTENT", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeDomainError maps service-layer sentinel errors to the wire codes and
// statuses the API contract fixes: workflow conflicts are 409, a blob-store
// outage under strict mode is 503, anything unrecognized is a masked 500.
func writeDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrFileRequired):
		return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is missing or empty")
	case errors.Is(err, service.ErrInvalidPDF):
		return writeError(c, fiber.StatusConflict, "INVALID_PDF_SIGNATURE", "invalid PDF signature")
	case errors.Is(err, service.ErrDuplicateContent):
		return writeError(c, fiber.StatusConflict, "DUPLICATE_CONTENT", "duplicate document content")
	case errors.Is(err, service.ErrStorageUnavailable):
		return writeError(c, fiber.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "storage unavailable")
	case errors.Is(err, service.ErrDocumentNotFound):
		return writeError(c, fiber.StatusConflict, "DOCUMENT_NOT_FOUND", "document not found")
	case errors.Is(err, service.ErrSignatureNotFound):
		return writeError(c, fiber.StatusNotFound, "SIGNATURE_NOT_FOUND", "signature not found")
	case errors.Is(err, service.ErrSignerAlreadyAdded):
		return writeError(c, fiber.StatusConflict, "SIGNER_ALREADY_ADDED", "signer already added")
	case errors.Is(err, service.ErrCertificateUnavailable):
		return writeError(c, fiber.StatusConflict, "CERTIFICATE_UNAVAILABLE", "certificate unavailable for this document")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}

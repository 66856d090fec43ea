package service

import "errors"

// Domain errors surfaced by the services. All are terminal for the current
// operation: nothing here retries internally. Callers match with errors.Is,
// never on message content.
var (
	// ErrFileRequired indicates an upload with no bytes.
	ErrFileRequired = errors.New("file is required")
	// ErrInvalidPDF indicates the uploaded bytes fail the PDF byte-signature check.
	ErrInvalidPDF = errors.New("invalid pdf signature")
	// ErrDuplicateContent indicates the content fingerprint already exists.
	ErrDuplicateContent = errors.New("duplicate document content")
	// ErrStorageUnavailable indicates the blob store is not ready and strict
	// storage mode is active.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrDocumentNotFound indicates the referenced document id does not exist.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrSignatureNotFound indicates the referenced signature id does not exist.
	ErrSignatureNotFound = errors.New("signature not found")
	// ErrSignerAlreadyAdded indicates a signer is already registered for the document.
	ErrSignerAlreadyAdded = errors.New("signer already added")
	// ErrCertificateUnavailable indicates the document has no durable blob
	// and strict storage mode is inactive.
	ErrCertificateUnavailable = errors.New("certificate unavailable")
)

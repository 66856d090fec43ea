package repository

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.

import (
	"errors"
	"time"
)

// Sentinel errors implementations must return so services can map persistence
// outcomes to domain errors without inspecting driver-specific details.
var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate indicates a store-level uniqueness constraint rejected the
	// write. The constraints (content_sha256, (document_id, cpf)) are the
	// correctness mechanism for concurrent dedup; any read-then-write check in
	// the services is a fast path only.
	ErrDuplicate = errors.New("duplicate record")
)

// SignatureCursor is a keyset pagination position over the signature log:
// the (CreatedAt, ID) pair of the last item of the previous page under the
// strict (created_at DESC, id DESC) total order.
type SignatureCursor struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

// SignatureListItem is the projection returned by the paginated signature
// listing: signature fields joined with the owning document's title and,
// when the signature carries no hash yet, the document's content fingerprint.
type SignatureListItem struct {
	DocumentID string    `json:"documentId"`
	Name       string    `json:"name"`
	Date       time.Time `json:"date"`
	CPF        string    `json:"cpf"`
	Hash       string    `json:"hash"`
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
}

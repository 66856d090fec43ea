package model

import "time"

// Document represents an uploaded PDF in the system.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, storage) without coupling to persistence.
type Document struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	MimeType      string    `json:"mimeType"`
	Size          int64     `json:"size"`
	StorageKey    string    `json:"storageKey"`
	ContentSHA256 string    `json:"contentSha256"`
	CreatedByID   string    `json:"createdById"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Stored reports whether the document has a durable blob behind it.
// Degraded uploads (blob store unreachable in lenient mode) keep an empty key.
func (d *Document) Stored() bool {
	return d.StorageKey != ""
}

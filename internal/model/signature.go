package model

import "time"

// Signature statuses. A signature is created PENDING by admin registration
// and moves to SIGNED either by the explicit sign transition or by the
// public signing upsert.
const (
	SignatureStatusPending = "PENDING"
	SignatureStatusSigned  = "SIGNED"
)

// Signature records a signer's commitment on a document.
// At most one signature exists per (DocumentID, CPF) pair; CPF is stored
// normalized to digits only. Hash and SignedAt are set only once the
// signature reaches SIGNED.
type Signature struct {
	ID         string     `json:"id"`
	DocumentID string     `json:"documentId"`
	Name       string     `json:"name"`
	CPF        string     `json:"cpf"`
	Status     string     `json:"status"`
	Hash       *string    `json:"hash"`
	SignedAt   *time.Time `json:"signedAt"`
	CreatedAt  time.Time  `json:"createdAt"`
}

package postgres

import (
	"context"
	"database/sql"
	"time"

	"digisign/internal/model"
	"digisign/internal/repository"
)

// SignaturePostgres is a PostgreSQL implementation of repository.SignatureRepository.
type SignaturePostgres struct {
	db *sql.DB
}

// NewSignaturePostgres creates a new SignaturePostgres repository.
func NewSignaturePostgres(db *sql.DB) *SignaturePostgres {
	return &SignaturePostgres{db: db}
}

var _ repository.SignatureRepository = (*SignaturePostgres)(nil)

const signatureColumns = `id, document_id, name, cpf, status, hash, signed_at, created_at`

func scanSignatureRow(scan func(dest ...any) error) (*model.Signature, error) {
	var (
		s        model.Signature
		hash     sql.NullString
		signedAt sql.NullTime
	)
	if err := scan(
		&s.ID,
		&s.DocumentID,
		&s.Name,
		&s.CPF,
		&s.Status,
		&hash,
		&signedAt,
		&s.CreatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	if hash.Valid {
		s.Hash = &hash.String
	}
	if signedAt.Valid {
		t := signedAt.Time
		s.SignedAt = &t
	}
	return &s, nil
}

// Create inserts a new PENDING signature row. The (document_id, cpf) UNIQUE
// constraint rejects a losing concurrent registration with repository.ErrDuplicate.
func (r *SignaturePostgres) Create(ctx context.Context, sig *model.Signature) (*model.Signature, error) {
	const q = `
		INSERT INTO signatures (id, document_id, name, cpf, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + signatureColumns

	row := r.db.QueryRowContext(ctx, q,
		sig.ID,
		sig.DocumentID,
		sig.Name,
		sig.CPF,
		sig.Status,
		sig.CreatedAt,
	)
	return scanSignatureRow(row.Scan)
}

// FindByDocumentAndCPF fetches the signature for a signer on a document.
func (r *SignaturePostgres) FindByDocumentAndCPF(ctx context.Context, documentID, cpf string) (*model.Signature, error) {
	const q = `SELECT ` + signatureColumns + ` FROM signatures WHERE document_id = $1 AND cpf = $2`
	return scanSignatureRow(r.db.QueryRowContext(ctx, q, documentID, cpf).Scan)
}

// MarkSigned transitions a signature to SIGNED, refreshing signed_at.
func (r *SignaturePostgres) MarkSigned(ctx context.Context, id string, signedAt time.Time) (*model.Signature, error) {
	const q = `
		UPDATE signatures
		SET status = 'SIGNED', signed_at = $2
		WHERE id = $1
		RETURNING ` + signatureColumns

	return scanSignatureRow(r.db.QueryRowContext(ctx, q, id, signedAt).Scan)
}

// UpsertSigned creates-or-overwrites the signature keyed by (document_id, cpf)
// in a single statement. ON CONFLICT DO UPDATE keeps concurrent identical
// calls race-safe: the constraint serializes them and both converge on the
// same derived values.
func (r *SignaturePostgres) UpsertSigned(ctx context.Context, documentID, name, cpf, hash string, signedAt time.Time) (*model.Signature, error) {
	const q = `
		INSERT INTO signatures (id, document_id, name, cpf, status, hash, signed_at, created_at)
		VALUES ($1, $2, $3, $4, 'SIGNED', $5, $6, $6)
		ON CONFLICT (document_id, cpf)
		DO UPDATE SET status = 'SIGNED', hash = EXCLUDED.hash, signed_at = EXCLUDED.signed_at
		RETURNING ` + signatureColumns

	row := r.db.QueryRowContext(ctx, q, newID(), documentID, name, cpf, hash, signedAt)
	return scanSignatureRow(row.Scan)
}

// ListByDocument returns all signatures on a document, newest first.
func (r *SignaturePostgres) ListByDocument(ctx context.Context, documentID string) ([]model.Signature, error) {
	const q = `
		SELECT ` + signatureColumns + `
		FROM signatures
		WHERE document_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Signature, 0)
	for rows.Next() {
		s, err := scanSignatureRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// ListPage returns the first limit items strictly after the cursor position in
// the (created_at DESC, id DESC) total order, joined with the owning document.
// Row comparison keeps the keyset predicate aligned with the composite order.
func (r *SignaturePostgres) ListPage(ctx context.Context, limit int, cursor *repository.SignatureCursor) ([]repository.SignatureListItem, error) {
	const base = `
		SELECT s.document_id, d.title, COALESCE(s.signed_at, s.created_at) AS date,
		       s.cpf, COALESCE(s.hash, d.content_sha256) AS hash, s.id, s.created_at
		FROM signatures s
		JOIN documents d ON d.id = s.document_id
	`

	var (
		rows *sql.Rows
		err  error
	)
	if cursor != nil {
		q := base + `
		WHERE (s.created_at, s.id) < ($1, $2)
		ORDER BY s.created_at DESC, s.id DESC
		LIMIT $3`
		rows, err = r.db.QueryContext(ctx, q, cursor.CreatedAt, cursor.ID, limit)
	} else {
		q := base + `
		ORDER BY s.created_at DESC, s.id DESC
		LIMIT $1`
		rows, err = r.db.QueryContext(ctx, q, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]repository.SignatureListItem, 0)
	for rows.Next() {
		var it repository.SignatureListItem
		if err := rows.Scan(
			&it.DocumentID,
			&it.Name,
			&it.Date,
			&it.CPF,
			&it.Hash,
			&it.ID,
			&it.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Package content provides the content-addressing primitives shared by the
// upload and signing flows: the PDF byte-signature gate, the SHA-256 content
// fingerprint used for deduplication, CPF normalization, and the derivation
// of the public signing hash.
package content

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
)

// pdfMagic is the byte signature every PDF file starts with.
var pdfMagic = []byte("%PDF-")

// IsPDF reports whether the byte sequence carries a PDF signature.
// This is a cheap format gate, not a structural validation of the file.
func IsPDF(b []byte) bool {
	return len(b) >= len(pdfMagic) && bytes.Equal(b[:len(pdfMagic)], pdfMagic)
}

// Fingerprint returns the lower-case hex SHA-256 digest of the raw bytes.
// Byte-identical files always yield the same fingerprint, which backs the
// system-wide dedup-by-content constraint.
func Fingerprint(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// NormalizeCPF strips everything but digits from a CPF, so differently
// punctuated spellings of the same identifier collapse to one key.
func NormalizeCPF(cpf string) string {
	out := make([]byte, 0, len(cpf))
	for i := 0; i < len(cpf); i++ {
		if cpf[i] >= '0' && cpf[i] <= '9' {
			out = append(out, cpf[i])
		}
	}
	return string(out)
}

// SigningHash derives the verification hash for a public signature from the
// document's content fingerprint and the normalized CPF. The result depends
// only on those two inputs, never on wall-clock or call count, which is what
// makes public signing idempotent.
func SigningHash(contentSHA256, normalizedCPF string) string {
	sum := sha256.Sum256([]byte(contentSHA256 + ":" + normalizedCPF))
	return hex.EncodeToString(sum[:])
}

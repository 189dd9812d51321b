// Package service provides technical services for the audit writer: HMAC
// tamper-evidence signing over audit records.
package service

import (
	auditDomain "github.com/allisson/vaultkeep/internal/audit/domain"
)

// Signer provides cryptographic signing and verification for audit records.
// Uses HMAC-SHA256 with a key derived (via HKDF) from the keyring entry key
// active at the time the record was written, so a record's integrity is
// tied to the same key material that protected the secret it describes.
type Signer interface {
	// Sign derives a signing key from entryKey and returns the HMAC-SHA256
	// signature over record's canonical encoding. entryKey must be the
	// 32-byte plaintext key of the keyring entry named by record.KeyringEntryID.
	Sign(entryKey []byte, record *auditDomain.Record) ([]byte, error)

	// Verify recomputes the expected signature and compares it to
	// record.Signature in constant time. Returns ErrSignatureInvalid on
	// mismatch.
	Verify(entryKey []byte, record *auditDomain.Record) error
}

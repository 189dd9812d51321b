package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	auditDomain "github.com/allisson/vaultkeep/internal/audit/domain"
)

type signer struct{}

// NewSigner creates a new HMAC-based audit record signer using HKDF-SHA256
// for key derivation and HMAC-SHA256 for signature generation.
func NewSigner() Signer {
	return &signer{}
}

// deriveSigningKey uses HKDF-SHA256 to derive a 32-byte signing key from a
// keyring entry's plaintext key, separating encryption key usage from
// signing key usage.
func (s *signer) deriveSigningKey(entryKey []byte) ([]byte, error) {
	info := []byte("audit-log-signing-v1")
	kdf := hkdf.New(sha256.New, entryKey, nil, info)

	signingKey := make([]byte, 32)
	if _, err := io.ReadFull(kdf, signingKey); err != nil {
		return nil, err
	}
	return signingKey, nil
}

// canonicalize converts a record to a canonical byte representation for
// signing: record_id || workspace_id || action || resource_type ||
// resource_id || metadata || created_at, with length-prefixed encoding for
// variable-length fields to prevent ambiguity.
func (s *signer) canonicalize(record *auditDomain.Record) ([]byte, error) {
	buf := make([]byte, 0, 1024)

	buf = append(buf, record.ID[:]...)
	buf = append(buf, record.WorkspaceID[:]...)
	buf = appendLengthPrefixed(buf, []byte(string(record.Action)))
	buf = appendLengthPrefixed(buf, []byte(string(record.ResourceType)))
	buf = appendLengthPrefixed(buf, []byte(record.ResourceID))

	if record.Metadata != nil {
		metadataBytes, err := json.Marshal(record.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal metadata: %w", err)
		}
		buf = appendLengthPrefixed(buf, metadataBytes)
	} else {
		buf = appendLengthPrefixed(buf, nil)
	}

	timeBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(timeBytes, uint64(record.CreatedAt.UnixNano()))
	buf = append(buf, timeBytes...)

	return buf, nil
}

// appendLengthPrefixed adds a 4-byte big-endian length prefix followed by data.
func appendLengthPrefixed(buf []byte, data []byte) []byte {
	length := make([]byte, 4)
	binary.BigEndian.PutUint32(length, uint32(len(data)))
	buf = append(buf, length...)
	buf = append(buf, data...)
	return buf
}

// Sign generates the HMAC-SHA256 signature for a record.
func (s *signer) Sign(entryKey []byte, record *auditDomain.Record) ([]byte, error) {
	signingKey, err := s.deriveSigningKey(entryKey)
	if err != nil {
		return nil, fmt.Errorf("failed to derive signing key: %w", err)
	}
	defer zero(signingKey)

	canonical, err := s.canonicalize(record)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize record: %w", err)
	}

	mac := hmac.New(sha256.New, signingKey)
	mac.Write(canonical)
	return mac.Sum(nil), nil
}

// Verify checks a record's signature, recomputing it and comparing in
// constant time.
func (s *signer) Verify(entryKey []byte, record *auditDomain.Record) error {
	expected, err := s.Sign(entryKey, record)
	if err != nil {
		return fmt.Errorf("failed to compute expected signature: %w", err)
	}

	if !hmac.Equal(record.Signature, expected) {
		return auditDomain.ErrSignatureInvalid
	}
	return nil
}

// zero overwrites sensitive data in memory with zeros.
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

package domain

import (
	"github.com/allisson/vaultkeep/internal/errors"
)

// Audit-specific errors.
var (
	// ErrSignatureInvalid indicates a record's HMAC signature does not match
	// its recomputed value: either the row was tampered with, or it was
	// signed under a keyring entry that no longer decrypts to the same key.
	ErrSignatureInvalid = errors.Wrap(errors.ErrDataIntegrity, "audit record signature invalid")

	// ErrRecordNotFound indicates no audit record with the given ID exists.
	ErrRecordNotFound = errors.Wrap(errors.ErrNotFound, "audit record not found")
)

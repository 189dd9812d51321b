// Package domain defines core domain models and errors for secrets.
package domain

import (
	"github.com/allisson/vaultkeep/internal/errors"
)

// Secret-specific error definitions.
var (
	// ErrSecretNotFound indicates no secret exists at the given (workspace, key).
	ErrSecretNotFound = errors.Wrap(errors.ErrNotFound, "secret not found")

	// ErrVersionNotFound indicates the secret exists but the requested version does not.
	ErrVersionNotFound = errors.Wrap(errors.ErrNotFound, "secret version not found")

	// ErrTypeChangeNotAllowed indicates a Put attempted to change a secret's
	// type across the binary/non-binary boundary.
	ErrTypeChangeNotAllowed = errors.Wrap(errors.ErrInvalidConfig, "cannot change secret type between binary and non-binary")

	// ErrInvalidKey indicates the supplied key string failed validation.
	ErrInvalidKey = errors.Wrap(errors.ErrInvalidConfig, "invalid secret key")
)

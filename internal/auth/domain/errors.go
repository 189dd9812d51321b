package domain

import (
	"github.com/allisson/vaultkeep/internal/errors"
)

// Authentication and authorization errors.
var (
	// ErrTokenNotFound indicates a token with the specified ID was not found.
	ErrTokenNotFound = errors.Wrap(errors.ErrNotFound, "token not found")

	// ErrTokenNameTaken indicates a token with this name already exists in the workspace.
	ErrTokenNameTaken = errors.Wrap(errors.ErrConflict, "token name already exists in workspace")

	// ErrInvalidToken indicates the presented token is malformed, unknown, inactive, or expired.
	// Returned uniformly across all of these cases to avoid leaking which one applied.
	ErrInvalidToken = errors.Wrap(errors.ErrInvalidToken, "invalid token")
)

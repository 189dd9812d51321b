package domain

import (
	"github.com/allisson/vaultkeep/internal/errors"
)

// Keyring operation errors.
var (
	// ErrEntryNotFound indicates no keyring entry with the given ID exists.
	ErrEntryNotFound = errors.Wrap(errors.ErrNotFound, "keyring entry not found")

	// ErrNoActiveEntry indicates a workspace has no keyring entry yet and must
	// be bootstrapped before it can store secrets.
	ErrNoActiveEntry = errors.Wrap(errors.ErrDataIntegrity, "workspace has no active keyring entry")
)

package domain

import (
	"github.com/allisson/vaultkeep/internal/errors"
)

var (
	// ErrWorkspaceNotFound indicates no workspace exists with the given slug or ID.
	ErrWorkspaceNotFound = errors.Wrap(errors.ErrNotFound, "workspace not found")

	// ErrWorkspaceSlugTaken indicates a workspace with the given slug already exists.
	ErrWorkspaceSlugTaken = errors.Wrap(errors.ErrConflict, "workspace slug already taken")
)

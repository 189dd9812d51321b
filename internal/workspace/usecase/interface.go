// Package usecase implements business logic for creating and resolving workspaces.
package usecase

import (
	"context"

	"github.com/google/uuid"

	workspaceDomain "github.com/allisson/vaultkeep/internal/workspace/domain"
)

// WorkspaceRepository defines persistence operations for workspaces.
type WorkspaceRepository interface {
	Create(ctx context.Context, workspace *workspaceDomain.Workspace) error
	GetBySlug(ctx context.Context, slug string) (*workspaceDomain.Workspace, error)
	GetByID(ctx context.Context, id uuid.UUID) (*workspaceDomain.Workspace, error)
}

// WorkspaceUseCase defines business logic operations for workspace management.
type WorkspaceUseCase interface {
	// Create validates and persists a new workspace. Fails with Conflict if
	// the slug is already taken.
	Create(ctx context.Context, slug, name string) (*workspaceDomain.Workspace, error)

	// GetBySlug resolves a workspace by its external slug.
	GetBySlug(ctx context.Context, slug string) (*workspaceDomain.Workspace, error)

	// GetByID resolves a workspace by its internal ID.
	GetByID(ctx context.Context, id uuid.UUID) (*workspaceDomain.Workspace, error)
}

package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	internalValidation "github.com/allisson/vaultkeep/internal/validation"
	workspaceDomain "github.com/allisson/vaultkeep/internal/workspace/domain"
)

type workspaceUseCase struct {
	workspaceRepo WorkspaceRepository
}

// Create validates and persists a new workspace.
func (w *workspaceUseCase) Create(ctx context.Context, slug, name string) (*workspaceDomain.Workspace, error) {
	err := validation.Errors{
		"slug": validation.Validate(slug, validation.Required, validation.Length(1, 63), internalValidation.Slug),
		"name": validation.Validate(name, validation.Required, validation.Length(1, 255)),
	}.Filter()
	if err != nil {
		return nil, internalValidation.WrapValidationError(err)
	}

	workspace := &workspaceDomain.Workspace{
		ID:        uuid.Must(uuid.NewV7()),
		Slug:      slug,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	if err := w.workspaceRepo.Create(ctx, workspace); err != nil {
		return nil, err
	}

	return workspace, nil
}

// GetBySlug resolves a workspace by its external slug.
func (w *workspaceUseCase) GetBySlug(ctx context.Context, slug string) (*workspaceDomain.Workspace, error) {
	return w.workspaceRepo.GetBySlug(ctx, slug)
}

// GetByID resolves a workspace by its internal ID.
func (w *workspaceUseCase) GetByID(ctx context.Context, id uuid.UUID) (*workspaceDomain.Workspace, error) {
	return w.workspaceRepo.GetByID(ctx, id)
}

// NewWorkspaceUseCase creates a new WorkspaceUseCase instance.
func NewWorkspaceUseCase(workspaceRepo WorkspaceRepository) WorkspaceUseCase {
	return &workspaceUseCase{workspaceRepo: workspaceRepo}
}

// Package dto provides request/response shapes for the HTTP adapter.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/vaultkeep/internal/validation"
	workspaceDomain "github.com/allisson/vaultkeep/internal/workspace/domain"
)

// CreateWorkspaceRequest contains the parameters for creating a new workspace.
type CreateWorkspaceRequest struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// Validate checks that the create workspace request is well-formed.
func (r *CreateWorkspaceRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Slug, validation.Required, customValidation.Slug, validation.Length(3, 63)),
		validation.Field(&r.Name, validation.Required, customValidation.NotBlank, validation.Length(1, 255)),
	)
}

// WorkspaceResponse is the API representation of a workspace.
type WorkspaceResponse struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// MapWorkspaceToResponse converts a domain workspace to its API representation.
func MapWorkspaceToResponse(workspace *workspaceDomain.Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		ID:        workspace.ID.String(),
		Slug:      workspace.Slug,
		Name:      workspace.Name,
		CreatedAt: workspace.CreatedAt,
	}
}

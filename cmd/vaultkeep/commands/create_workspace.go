package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	workspaceUsecase "github.com/allisson/vaultkeep/internal/workspace/usecase"
)

// RunCreateWorkspace creates a new workspace, the tenant boundary every
// token, secret, and keyring entry is scoped to.
func RunCreateWorkspace(
	ctx context.Context,
	workspaceUseCase workspaceUsecase.WorkspaceUseCase,
	logger *slog.Logger,
	writer io.Writer,
	slug, name string,
) error {
	logger.Info("creating workspace", slog.String("slug", slug))

	workspace, err := workspaceUseCase.Create(ctx, slug, name)
	if err != nil {
		return fmt.Errorf("failed to create workspace: %w", err)
	}

	_, _ = fmt.Fprintf(writer, "Workspace created: id=%s slug=%s name=%s\n", workspace.ID, workspace.Slug, workspace.Name)
	logger.Info("workspace created", slog.String("id", workspace.ID.String()), slog.String("slug", workspace.Slug))
	return nil
}

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	authDomain "github.com/allisson/vaultkeep/internal/auth/domain"
	authUsecase "github.com/allisson/vaultkeep/internal/auth/usecase"
	workspaceUsecase "github.com/allisson/vaultkeep/internal/workspace/usecase"
)

// RunIssueToken issues a new bearer token for the named workspace. The
// cleartext token is printed once to writer and never logged.
func RunIssueToken(
	ctx context.Context,
	workspaceUseCase workspaceUsecase.WorkspaceUseCase,
	tokenUseCase authUsecase.TokenUseCase,
	logger *slog.Logger,
	writer io.Writer,
	slug, name, roleStr string,
	expiresInSeconds int,
) error {
	role := authDomain.Role(roleStr)
	if !authDomain.IsValidRole(role) {
		return fmt.Errorf("invalid role: %s (valid options: admin, write, read)", roleStr)
	}

	workspace, err := workspaceUseCase.GetBySlug(ctx, slug)
	if err != nil {
		return fmt.Errorf("failed to resolve workspace: %w", err)
	}

	var expiresAt *time.Time
	if expiresInSeconds > 0 {
		t := time.Now().UTC().Add(time.Duration(expiresInSeconds) * time.Second)
		expiresAt = &t
	}

	logger.Info("issuing token", slog.String("workspace", slug), slog.String("name", name), slog.String("role", roleStr))

	output, err := tokenUseCase.Issue(ctx, &authDomain.IssueTokenInput{
		WorkspaceID: workspace.ID,
		Name:        name,
		Role:        role,
		ExpiresAt:   expiresAt,
		CreatedBy:   "cli",
	})
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	_, _ = fmt.Fprintf(writer, "Token issued: id=%s name=%s role=%s\n", output.Token.ID, output.Token.Name, output.Token.Role)
	_, _ = fmt.Fprintf(writer, "Token (shown once): %s\n", output.PlainToken)
	logger.Info("token issued", slog.String("id", output.Token.ID.String()))
	return nil
}

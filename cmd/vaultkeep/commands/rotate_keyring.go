package commands

import (
	"context"
	"fmt"
	"log/slog"

	cryptoDomain "github.com/allisson/vaultkeep/internal/crypto/domain"
	keyringUsecase "github.com/allisson/vaultkeep/internal/keyring/usecase"
	workspaceUsecase "github.com/allisson/vaultkeep/internal/workspace/usecase"
)

// RunRotateKeyring creates a new active keyring entry for the named
// workspace using the given algorithm. Secrets already encrypted under the
// previous entry remain readable: Get resolves a version's ciphertext by
// the keyring entry it was written under, not by the keyring's current one.
func RunRotateKeyring(
	ctx context.Context,
	workspaceUseCase workspaceUsecase.WorkspaceUseCase,
	keyringManager keyringUsecase.KeyringManager,
	masterKeyChain *cryptoDomain.MasterKeyChain,
	logger *slog.Logger,
	slug, algorithmStr string,
) error {
	algorithm, err := parseAlgorithm(algorithmStr)
	if err != nil {
		return err
	}

	workspace, err := workspaceUseCase.GetBySlug(ctx, slug)
	if err != nil {
		return fmt.Errorf("failed to resolve workspace: %w", err)
	}

	logger.Info("rotating keyring",
		slog.String("workspace", slug),
		slog.String("algorithm", algorithmStr),
	)

	if err := keyringManager.Rotate(ctx, masterKeyChain, workspace.ID, algorithm); err != nil {
		return fmt.Errorf("failed to rotate keyring: %w", err)
	}

	logger.Info("keyring rotated successfully", slog.String("workspace", slug))
	return nil
}

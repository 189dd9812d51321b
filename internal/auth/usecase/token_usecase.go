// Package usecase implements business logic orchestration for authentication operations.
package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/vaultkeep/internal/auth/domain"
	authService "github.com/allisson/vaultkeep/internal/auth/service"
	apperrors "github.com/allisson/vaultkeep/internal/errors"
	internalValidation "github.com/allisson/vaultkeep/internal/validation"
)

// tokenUseCase implements TokenUseCase for issuing and authenticating bearer tokens.
type tokenUseCase struct {
	tokenRepo    TokenRepository
	tokenService authService.TokenService
	logger       *slog.Logger
}

// Issue validates the request and creates a new token scoped to a workspace.
func (t *tokenUseCase) Issue(
	ctx context.Context,
	input *authDomain.IssueTokenInput,
) (*authDomain.IssueTokenOutput, error) {
	err := validation.Errors{
		"workspace_id": validation.Validate(input.WorkspaceID, validation.Required),
		"name":         validation.Validate(input.Name, validation.Required, validation.Length(1, 255)),
		"role": validation.Validate(input.Role, validation.Required, validation.By(func(value any) error {
			if !authDomain.IsValidRole(value.(authDomain.Role)) {
				return apperrors.New("must be one of admin, write, read")
			}
			return nil
		})),
	}.Filter()
	if err != nil {
		return nil, internalValidation.WrapValidationError(err)
	}

	plainToken, fingerprint, tokenHash, err := t.tokenService.GenerateToken()
	if err != nil {
		return nil, err
	}

	token := &authDomain.Token{
		ID:          uuid.Must(uuid.NewV7()),
		WorkspaceID: input.WorkspaceID,
		Name:        input.Name,
		Fingerprint: fingerprint,
		TokenHash:   tokenHash,
		Role:        input.Role,
		Scopes:      input.Scopes,
		ExpiresAt:   input.ExpiresAt,
		IsActive:    true,
		CreatedBy:   input.CreatedBy,
		CreatedAt:   time.Now().UTC(),
	}

	if err := t.tokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	return &authDomain.IssueTokenOutput{
		Token:      token,
		PlainToken: plainToken,
	}, nil
}

// Authenticate implements the seven-step authentication contract: parse the
// prefix, look up by fingerprint, verify the hash, reject inactive/expired
// tokens, observe (without rejecting) source address changes, derive the
// effective permission set, and fire an async last-used update.
func (t *tokenUseCase) Authenticate(ctx context.Context, presented, sourceAddr string) (*authDomain.AuthContext, error) {
	if !strings.HasPrefix(presented, authDomain.TokenPrefix) {
		return nil, authDomain.ErrInvalidToken
	}

	fingerprint := t.tokenService.Fingerprint(presented)

	token, err := t.tokenRepo.GetByFingerprint(ctx, fingerprint)
	if err != nil {
		if apperrors.Is(err, authDomain.ErrTokenNotFound) {
			return nil, authDomain.ErrInvalidToken
		}
		return nil, err
	}

	if !t.tokenService.VerifyToken(presented, token.TokenHash) {
		return nil, authDomain.ErrInvalidToken
	}

	if !token.IsActive {
		return nil, authDomain.ErrInvalidToken
	}

	if token.IsExpired(time.Now().UTC()) {
		return nil, authDomain.ErrInvalidToken
	}

	if sourceAddr != "" && sourceAddr != token.LastUsedSourceAddr {
		t.logger.InfoContext(ctx, "token used from new source address",
			slog.String("token_id", token.ID.String()),
			slog.String("previous_source_addr", token.LastUsedSourceAddr),
			slog.String("source_addr", sourceAddr),
		)
	}

	if sourceAddr != "" {
		t.recordLastUsedAsync(token.ID, sourceAddr)
	}

	return &authDomain.AuthContext{
		WorkspaceID:   token.WorkspaceID,
		TokenID:       token.ID,
		ActorID:       token.CreatedBy,
		Role:          token.Role,
		Permissions:   token.Permissions(),
		CorrelationID: uuid.Must(uuid.NewV7()),
	}, nil
}

// recordLastUsedAsync updates last-used metadata on a detached context so a
// slow or failing write never adds latency to the caller's request.
func (t *tokenUseCase) recordLastUsedAsync(tokenID uuid.UUID, sourceAddr string) {
	go func() {
		ctx := context.WithoutCancel(context.Background())
		if err := t.tokenRepo.UpdateLastUsed(ctx, tokenID, sourceAddr, time.Now().UTC()); err != nil {
			t.logger.Error("failed to record token last-used metadata",
				slog.String("token_id", tokenID.String()),
				slog.Any("error", err),
			)
		}
	}()
}

// Authorize checks an AuthContext's permission set against a required permission.
func (t *tokenUseCase) Authorize(authCtx *authDomain.AuthContext, required authDomain.Permission) error {
	if !authCtx.HasPermission(required) {
		return apperrors.Wrap(apperrors.ErrWorkspaceAccess, "missing required permission")
	}
	return nil
}

// AuthorizeWorkspace checks an AuthContext is bound to targetWorkspace.
func (t *tokenUseCase) AuthorizeWorkspace(authCtx *authDomain.AuthContext, targetWorkspace uuid.UUID) error {
	if authCtx.WorkspaceID != targetWorkspace {
		return apperrors.Wrap(apperrors.ErrWorkspaceAccess, "token is not bound to this workspace")
	}
	return nil
}

// Revoke deactivates a token.
func (t *tokenUseCase) Revoke(ctx context.Context, tokenID uuid.UUID) error {
	return t.tokenRepo.SetActive(ctx, tokenID, false)
}

// List retrieves every token issued within a workspace.
func (t *tokenUseCase) List(ctx context.Context, workspaceID uuid.UUID) ([]*authDomain.Token, error) {
	return t.tokenRepo.ListByWorkspace(ctx, workspaceID)
}

// NewTokenUseCase creates a new TokenUseCase with the provided dependencies.
func NewTokenUseCase(
	tokenRepo TokenRepository,
	tokenService authService.TokenService,
	logger *slog.Logger,
) TokenUseCase {
	return &tokenUseCase{
		tokenRepo:    tokenRepo,
		tokenService: tokenService,
		logger:       logger,
	}
}

// Package usecase defines business logic interfaces for authentication and authorization operations.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/vaultkeep/internal/auth/domain"
)

// TokenRepository defines persistence operations for bearer tokens.
// Implementations must support transaction-aware operations via context propagation.
type TokenRepository interface {
	// Create stores a new token. Returns ErrTokenNameTaken if the (workspace, name)
	// pair already exists.
	Create(ctx context.Context, token *authDomain.Token) error

	// GetByFingerprint retrieves a token by its SHA-256 fingerprint.
	// Returns ErrTokenNotFound if no token matches.
	GetByFingerprint(ctx context.Context, fingerprint string) (*authDomain.Token, error)

	// Get retrieves a token by ID. Returns ErrTokenNotFound if not found.
	Get(ctx context.Context, tokenID uuid.UUID) (*authDomain.Token, error)

	// ListByWorkspace retrieves every token issued within a workspace, newest first.
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*authDomain.Token, error)

	// UpdateLastUsed records the time and source address of a token's most recent
	// successful authentication. Called asynchronously and must not block callers.
	UpdateLastUsed(ctx context.Context, tokenID uuid.UUID, sourceAddr string, usedAt time.Time) error

	// SetActive flips a token's active flag, used to revoke it.
	SetActive(ctx context.Context, tokenID uuid.UUID, isActive bool) error
}

// TokenUseCase defines business logic for issuing and authenticating bearer tokens.
type TokenUseCase interface {
	// Issue creates a new token bound to a workspace and role. Fails with Conflict
	// if a token with the same name already exists in the workspace.
	Issue(ctx context.Context, input *authDomain.IssueTokenInput) (*authDomain.IssueTokenOutput, error)

	// Authenticate parses, looks up, and verifies a presented bearer token,
	// returning an AuthContext on success. Fails with InvalidToken for a
	// malformed prefix, unknown fingerprint, failed hash verification, inactive
	// token, or expired token; these are all reported identically to avoid
	// leaking which case applied. A changed source address is recorded but
	// never rejects the request. sourceAddr, when non-empty, is recorded
	// asynchronously as the token's last-used metadata.
	Authenticate(ctx context.Context, presented, sourceAddr string) (*authDomain.AuthContext, error)

	// Authorize checks that an AuthContext's permission set grants required.
	// Fails with WorkspaceAccess if not.
	Authorize(authCtx *authDomain.AuthContext, required authDomain.Permission) error

	// AuthorizeWorkspace checks that an AuthContext is bound to targetWorkspace.
	// Fails with WorkspaceAccess if not. This is an explicit second check on
	// top of the workspace binding already carried by the context, for call
	// sites that resolve the target workspace independently (e.g. from a URL
	// path parameter) and must not trust the two implicitly agree.
	AuthorizeWorkspace(authCtx *authDomain.AuthContext, targetWorkspace uuid.UUID) error

	// Revoke deactivates a token, immediately failing future authentications
	// against it.
	Revoke(ctx context.Context, tokenID uuid.UUID) error

	// List retrieves every token issued within a workspace.
	List(ctx context.Context, workspaceID uuid.UUID) ([]*authDomain.Token, error)
}

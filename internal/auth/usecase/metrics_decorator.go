package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/vaultkeep/internal/auth/domain"
	"github.com/allisson/vaultkeep/internal/metrics"
)

// tokenUseCaseWithMetrics decorates TokenUseCase with metrics instrumentation.
type tokenUseCaseWithMetrics struct {
	next    TokenUseCase
	metrics metrics.BusinessMetrics
}

// NewTokenUseCaseWithMetrics wraps a TokenUseCase with metrics recording.
func NewTokenUseCaseWithMetrics(useCase TokenUseCase, m metrics.BusinessMetrics) TokenUseCase {
	return &tokenUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Issue records metrics for token issuance operations.
func (t *tokenUseCaseWithMetrics) Issue(
	ctx context.Context,
	input *authDomain.IssueTokenInput,
) (*authDomain.IssueTokenOutput, error) {
	start := time.Now()
	output, err := t.next.Issue(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "auth", "token_issue", status)
	t.metrics.RecordDuration(ctx, "auth", "token_issue", time.Since(start), status)

	return output, err
}

// Authenticate records metrics for token authentication operations.
func (t *tokenUseCaseWithMetrics) Authenticate(
	ctx context.Context,
	presented, sourceAddr string,
) (*authDomain.AuthContext, error) {
	start := time.Now()
	authCtx, err := t.next.Authenticate(ctx, presented, sourceAddr)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "auth", "token_authenticate", status)
	t.metrics.RecordDuration(ctx, "auth", "token_authenticate", time.Since(start), status)

	return authCtx, err
}

// Authorize passes through without recording metrics: it is a cheap in-memory
// check and adding timers here would dwarf the work being measured.
func (t *tokenUseCaseWithMetrics) Authorize(authCtx *authDomain.AuthContext, required authDomain.Permission) error {
	return t.next.Authorize(authCtx, required)
}

// AuthorizeWorkspace passes through without recording metrics, for the same
// reason as Authorize.
func (t *tokenUseCaseWithMetrics) AuthorizeWorkspace(authCtx *authDomain.AuthContext, targetWorkspace uuid.UUID) error {
	return t.next.AuthorizeWorkspace(authCtx, targetWorkspace)
}

// Revoke records metrics for token revocation operations.
func (t *tokenUseCaseWithMetrics) Revoke(ctx context.Context, tokenID uuid.UUID) error {
	start := time.Now()
	err := t.next.Revoke(ctx, tokenID)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "auth", "token_revoke", status)
	t.metrics.RecordDuration(ctx, "auth", "token_revoke", time.Since(start), status)

	return err
}

// List records metrics for token listing operations.
func (t *tokenUseCaseWithMetrics) List(ctx context.Context, workspaceID uuid.UUID) ([]*authDomain.Token, error) {
	start := time.Now()
	tokens, err := t.next.List(ctx, workspaceID)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "auth", "token_list", status)
	t.metrics.RecordDuration(ctx, "auth", "token_list", time.Since(start), status)

	return tokens, err
}

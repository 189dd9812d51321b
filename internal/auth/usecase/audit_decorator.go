package usecase

import (
	"context"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/vaultkeep/internal/audit/domain"
	auditUsecase "github.com/allisson/vaultkeep/internal/audit/usecase"
	authDomain "github.com/allisson/vaultkeep/internal/auth/domain"
)

// tokenUseCaseWithAudit decorates TokenUseCase with audit recording.
// Authenticate always produces a LOGIN record per the contract that even
// authentication failures are logged; Issue and Revoke produce
// CREATE/UPDATE records against the token resource.
type tokenUseCaseWithAudit struct {
	next     TokenUseCase
	recorder auditUsecase.Recorder
}

// NewTokenUseCaseWithAudit wraps a TokenUseCase with audit recording.
func NewTokenUseCaseWithAudit(useCase TokenUseCase, recorder auditUsecase.Recorder) TokenUseCase {
	return &tokenUseCaseWithAudit{next: useCase, recorder: recorder}
}

func (t *tokenUseCaseWithAudit) Issue(
	ctx context.Context,
	input *authDomain.IssueTokenInput,
) (*authDomain.IssueTokenOutput, error) {
	output, err := t.next.Issue(ctx, input)

	rec := auditDomain.New(input.WorkspaceID, auditDomain.ActionCreate, auditDomain.ResourceToken, input.Name)
	rec.Success = err == nil
	if err != nil {
		rec.FailureReason = err.Error()
	} else {
		rec.TokenID = &output.Token.ID
	}
	t.recorder.Record(ctx, rec)

	return output, err
}

func (t *tokenUseCaseWithAudit) Authenticate(
	ctx context.Context,
	presented, sourceAddr string,
) (*authDomain.AuthContext, error) {
	authCtx, err := t.next.Authenticate(ctx, presented, sourceAddr)

	var workspaceID uuid.UUID
	resourceID := "unknown"
	if authCtx != nil {
		workspaceID = authCtx.WorkspaceID
		resourceID = authCtx.TokenID.String()
	}

	rec := auditDomain.New(workspaceID, auditDomain.ActionLogin, auditDomain.ResourceToken, resourceID)
	rec.SourceAddr = sourceAddr
	rec.Success = err == nil
	if err != nil {
		rec.FailureReason = err.Error()
	} else {
		rec.ActorID = authCtx.ActorID
		rec.TokenID = &authCtx.TokenID
		rec.CorrelationID = authCtx.CorrelationID
	}
	t.recorder.Record(ctx, rec)

	return authCtx, err
}

func (t *tokenUseCaseWithAudit) Authorize(authCtx *authDomain.AuthContext, required authDomain.Permission) error {
	return t.next.Authorize(authCtx, required)
}

func (t *tokenUseCaseWithAudit) AuthorizeWorkspace(authCtx *authDomain.AuthContext, targetWorkspace uuid.UUID) error {
	return t.next.AuthorizeWorkspace(authCtx, targetWorkspace)
}

func (t *tokenUseCaseWithAudit) Revoke(ctx context.Context, tokenID uuid.UUID) error {
	err := t.next.Revoke(ctx, tokenID)

	rec := auditDomain.New(uuid.Nil, auditDomain.ActionUpdate, auditDomain.ResourceToken, tokenID.String())
	rec.TokenID = &tokenID
	rec.Success = err == nil
	if err != nil {
		rec.FailureReason = err.Error()
	}
	t.recorder.Record(ctx, rec)

	return err
}

func (t *tokenUseCaseWithAudit) List(ctx context.Context, workspaceID uuid.UUID) ([]*authDomain.Token, error) {
	return t.next.List(ctx, workspaceID)
}

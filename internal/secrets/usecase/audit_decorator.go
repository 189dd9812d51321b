package usecase

import (
	"context"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/vaultkeep/internal/audit/domain"
	auditUsecase "github.com/allisson/vaultkeep/internal/audit/usecase"
	secretsDomain "github.com/allisson/vaultkeep/internal/secrets/domain"
)

// secretUseCaseWithAudit decorates SecretUseCase with audit recording. One
// record is emitted per operation outcome, whether success or failure,
// after the wrapped call returns, never affecting its result.
type secretUseCaseWithAudit struct {
	next     SecretUseCase
	recorder auditUsecase.Recorder
}

// NewSecretUseCaseWithAudit wraps a SecretUseCase with audit recording.
func NewSecretUseCaseWithAudit(useCase SecretUseCase, recorder auditUsecase.Recorder) SecretUseCase {
	return &secretUseCaseWithAudit{next: useCase, recorder: recorder}
}

func (s *secretUseCaseWithAudit) record(
	ctx context.Context,
	workspaceID uuid.UUID,
	action auditDomain.Action,
	resourceID string,
	err error,
) {
	rec := auditDomain.New(workspaceID, action, auditDomain.ResourceSecret, resourceID)
	rec.Success = err == nil
	if err != nil {
		rec.FailureReason = err.Error()
	}
	s.recorder.Record(ctx, rec)
}

func (s *secretUseCaseWithAudit) Put(
	ctx context.Context,
	input *secretsDomain.PutInput,
) (*secretsDomain.PutOutput, error) {
	output, err := s.next.Put(ctx, input)
	s.record(ctx, input.WorkspaceID, auditDomain.ActionCreate, input.Key, err)
	return output, err
}

func (s *secretUseCaseWithAudit) Get(
	ctx context.Context,
	workspaceID uuid.UUID,
	key string,
	version uint,
) (*secretsDomain.DecryptedSecret, error) {
	secret, err := s.next.Get(ctx, workspaceID, key, version)
	s.record(ctx, workspaceID, auditDomain.ActionRead, key, err)
	return secret, err
}

func (s *secretUseCaseWithAudit) List(
	ctx context.Context,
	workspaceID uuid.UUID,
	prefix string,
	limit, offset int,
) ([]*secretsDomain.ListItem, int, error) {
	items, total, err := s.next.List(ctx, workspaceID, prefix, limit, offset)
	s.record(ctx, workspaceID, auditDomain.ActionRead, prefix, err)
	return items, total, err
}

func (s *secretUseCaseWithAudit) Versions(
	ctx context.Context,
	workspaceID uuid.UUID,
	key string,
	limit, offset int,
) ([]*secretsDomain.VersionSummary, error) {
	versions, err := s.next.Versions(ctx, workspaceID, key, limit, offset)
	s.record(ctx, workspaceID, auditDomain.ActionRead, key, err)
	return versions, err
}

func (s *secretUseCaseWithAudit) Delete(ctx context.Context, workspaceID uuid.UUID, key string) error {
	err := s.next.Delete(ctx, workspaceID, key)
	s.record(ctx, workspaceID, auditDomain.ActionDelete, key, err)
	return err
}

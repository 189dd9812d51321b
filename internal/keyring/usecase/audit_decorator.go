package usecase

import (
	"context"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/vaultkeep/internal/audit/domain"
	auditUsecase "github.com/allisson/vaultkeep/internal/audit/usecase"
	cryptoDomain "github.com/allisson/vaultkeep/internal/crypto/domain"
	keyringDomain "github.com/allisson/vaultkeep/internal/keyring/domain"
)

// keyringManagerWithAudit decorates KeyringManager with audit recording on
// its write operations. Chain is a decrypt-only read path exercised on every
// secret operation and is passed through unaudited to avoid flooding the log.
type keyringManagerWithAudit struct {
	next     KeyringManager
	recorder auditUsecase.Recorder
}

// NewKeyringManagerWithAudit wraps a KeyringManager with audit recording.
func NewKeyringManagerWithAudit(manager KeyringManager, recorder auditUsecase.Recorder) KeyringManager {
	return &keyringManagerWithAudit{next: manager, recorder: recorder}
}

func (k *keyringManagerWithAudit) Bootstrap(
	ctx context.Context,
	masterKeyChain *cryptoDomain.MasterKeyChain,
	workspaceID uuid.UUID,
	alg cryptoDomain.Algorithm,
) error {
	err := k.next.Bootstrap(ctx, masterKeyChain, workspaceID, alg)

	rec := auditDomain.New(workspaceID, auditDomain.ActionCreate, auditDomain.ResourceKeyring, workspaceID.String())
	rec.Success = err == nil
	if err != nil {
		rec.FailureReason = err.Error()
	}
	k.recorder.Record(ctx, rec)

	return err
}

func (k *keyringManagerWithAudit) Rotate(
	ctx context.Context,
	masterKeyChain *cryptoDomain.MasterKeyChain,
	workspaceID uuid.UUID,
	alg cryptoDomain.Algorithm,
) error {
	err := k.next.Rotate(ctx, masterKeyChain, workspaceID, alg)

	rec := auditDomain.New(workspaceID, auditDomain.ActionRotate, auditDomain.ResourceKeyring, workspaceID.String())
	rec.Success = err == nil
	if err != nil {
		rec.FailureReason = err.Error()
	}
	k.recorder.Record(ctx, rec)

	return err
}

func (k *keyringManagerWithAudit) Chain(
	ctx context.Context,
	masterKeyChain *cryptoDomain.MasterKeyChain,
	workspaceID uuid.UUID,
) (*keyringDomain.Chain, error) {
	return k.next.Chain(ctx, masterKeyChain, workspaceID)
}

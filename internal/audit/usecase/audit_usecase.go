package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/vaultkeep/internal/audit/domain"
	"github.com/allisson/vaultkeep/internal/audit/repository"
	auditService "github.com/allisson/vaultkeep/internal/audit/service"
	cryptoDomain "github.com/allisson/vaultkeep/internal/crypto/domain"
	apperrors "github.com/allisson/vaultkeep/internal/errors"
	keyringUsecase "github.com/allisson/vaultkeep/internal/keyring/usecase"
)

// Config controls the background queue's size, worker pool, and retry
// behavior. Adapted from the teacher's outbox worker Config, narrowed to a
// fire-and-forget in-process queue instead of a transactional outbox table.
type Config struct {
	QueueSize     int
	WorkerCount   int
	MaxRetries    int
	RetryInterval time.Duration
	Retention     time.Duration
}

// auditUseCase implements UseCase: records are signed under the workspace's
// active keyring entry and appended by a pool of background workers reading
// from a bounded channel, so the originating operation never waits on a
// database round trip or a signing operation.
type auditUseCase struct {
	repo           repository.AuditRepository
	signer         auditService.Signer
	keyringManager keyringUsecase.KeyringManager
	masterKeyChain *cryptoDomain.MasterKeyChain
	logger         *slog.Logger
	cfg            Config

	queue   chan *auditDomain.Record
	wg      sync.WaitGroup
	started sync.Once
}

// Record enqueues a record for background signing and persistence. A full
// queue drops the record rather than blocking the caller; the drop is
// logged so it surfaces to operational monitoring, per the contract that
// audit write failures never roll back or delay the triggering operation.
func (a *auditUseCase) Record(ctx context.Context, record *auditDomain.Record) {
	select {
	case a.queue <- record:
	default:
		a.logger.ErrorContext(ctx, "audit queue full, dropping record",
			slog.String("workspace_id", record.WorkspaceID.String()),
			slog.String("action", string(record.Action)),
			slog.String("resource_type", string(record.ResourceType)),
		)
	}
}

// Start launches the worker pool. Safe to call once; later calls are no-ops.
func (a *auditUseCase) Start(ctx context.Context) {
	a.started.Do(func() {
		for i := 0; i < a.cfg.WorkerCount; i++ {
			a.wg.Add(1)
			go a.worker(ctx)
		}
	})
}

// Stop closes the queue and waits for in-flight records to drain, up to
// ctx's deadline.
func (a *auditUseCase) Stop(ctx context.Context) {
	close(a.queue)

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		a.logger.Warn("audit worker pool did not drain before shutdown deadline")
	}
}

func (a *auditUseCase) worker(ctx context.Context) {
	defer a.wg.Done()
	for record := range a.queue {
		a.process(ctx, record)
	}
}

// process signs record under its workspace's active keyring entry (best
// effort: a chain load failure leaves the record unsigned rather than
// losing it) and retries persistence up to MaxRetries, backing off
// RetryInterval between attempts.
func (a *auditUseCase) process(ctx context.Context, record *auditDomain.Record) {
	workCtx := context.WithoutCancel(ctx)

	if chain, err := a.keyringManager.Chain(workCtx, a.masterKeyChain, record.WorkspaceID); err == nil {
		entry, found := chain.Get(chain.ActiveEntryID())
		if found {
			if sig, signErr := a.signer.Sign(entry.Key, record); signErr == nil {
				record.KeyringEntryID = entry.ID
				record.Signature = sig
			} else {
				a.logger.ErrorContext(workCtx, "failed to sign audit record", slog.Any("error", signErr))
			}
		}
	}

	var err error
	for attempt := 0; attempt <= a.cfg.MaxRetries; attempt++ {
		if err = a.repo.Create(workCtx, record); err == nil {
			return
		}
		if attempt < a.cfg.MaxRetries {
			time.Sleep(a.cfg.RetryInterval)
		}
	}

	a.logger.ErrorContext(workCtx, "failed to persist audit record after retries",
		slog.String("record_id", record.ID.String()),
		slog.Any("error", err),
	)
}

// List retrieves audit records for a workspace, newest first, paginated.
func (a *auditUseCase) List(
	ctx context.Context,
	workspaceID uuid.UUID,
	limit, offset int,
) ([]*auditDomain.Record, int, error) {
	return a.repo.ListByWorkspace(ctx, workspaceID, limit, offset)
}

// Verify recomputes and checks a record's signature against its originally
// signing keyring entry's current key.
func (a *auditUseCase) Verify(ctx context.Context, id uuid.UUID) error {
	record, err := a.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if record.KeyringEntryID == uuid.Nil || len(record.Signature) == 0 {
		return apperrors.Wrap(auditDomain.ErrSignatureInvalid, "record carries no signature")
	}

	chain, err := a.keyringManager.Chain(ctx, a.masterKeyChain, record.WorkspaceID)
	if err != nil {
		return err
	}

	entry, found := chain.Get(record.KeyringEntryID)
	if !found {
		return apperrors.Wrap(auditDomain.ErrSignatureInvalid, "signing keyring entry no longer exists")
	}

	return a.signer.Verify(entry.Key, record)
}

// Purge bulk-deletes every record older than olderThan (or the configured
// retention horizon if olderThan is zero).
func (a *auditUseCase) Purge(ctx context.Context, olderThan time.Duration) (int64, error) {
	horizon := olderThan
	if horizon == 0 {
		horizon = a.cfg.Retention
	}
	return a.repo.Purge(ctx, time.Now().UTC().Add(-horizon))
}

// NewUseCase creates a new Audit UseCase and its background worker pool
// (call Start to launch the workers).
func NewUseCase(
	repo repository.AuditRepository,
	signer auditService.Signer,
	keyringManager keyringUsecase.KeyringManager,
	masterKeyChain *cryptoDomain.MasterKeyChain,
	logger *slog.Logger,
	cfg Config,
) UseCase {
	return &auditUseCase{
		repo:           repo,
		signer:         signer,
		keyringManager: keyringManager,
		masterKeyChain: masterKeyChain,
		logger:         logger,
		cfg:            cfg,
		queue:          make(chan *auditDomain.Record, cfg.QueueSize),
	}
}

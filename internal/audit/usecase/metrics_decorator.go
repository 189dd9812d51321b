package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/vaultkeep/internal/audit/domain"
	"github.com/allisson/vaultkeep/internal/metrics"
)

// useCaseWithMetrics decorates UseCase with metrics instrumentation on its
// query and maintenance operations. Record is passed through uninstrumented:
// it only enqueues and must stay on the hot path's fast side.
type useCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &useCaseWithMetrics{next: useCase, metrics: m}
}

func (u *useCaseWithMetrics) Record(ctx context.Context, record *auditDomain.Record) {
	u.next.Record(ctx, record)
}

func (u *useCaseWithMetrics) List(
	ctx context.Context,
	workspaceID uuid.UUID,
	limit, offset int,
) ([]*auditDomain.Record, int, error) {
	start := time.Now()
	records, total, err := u.next.List(ctx, workspaceID, limit, offset)

	status := "success"
	if err != nil {
		status = "error"
	}
	u.metrics.RecordOperation(ctx, "audit", "audit_list", status)
	u.metrics.RecordDuration(ctx, "audit", "audit_list", time.Since(start), status)

	return records, total, err
}

func (u *useCaseWithMetrics) Verify(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	err := u.next.Verify(ctx, id)

	status := "success"
	if err != nil {
		status = "error"
	}
	u.metrics.RecordOperation(ctx, "audit", "audit_verify", status)
	u.metrics.RecordDuration(ctx, "audit", "audit_verify", time.Since(start), status)

	return err
}

func (u *useCaseWithMetrics) Purge(ctx context.Context, olderThan time.Duration) (int64, error) {
	start := time.Now()
	count, err := u.next.Purge(ctx, olderThan)

	status := "success"
	if err != nil {
		status = "error"
	}
	u.metrics.RecordOperation(ctx, "audit", "audit_purge", status)
	u.metrics.RecordDuration(ctx, "audit", "audit_purge", time.Since(start), status)

	return count, err
}

func (u *useCaseWithMetrics) Start(ctx context.Context) { u.next.Start(ctx) }
func (u *useCaseWithMetrics) Stop(ctx context.Context)  { u.next.Stop(ctx) }

package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/vaultkeep/internal/metrics"
	secretsDomain "github.com/allisson/vaultkeep/internal/secrets/domain"
)

// secretUseCaseWithMetrics decorates SecretUseCase with metrics instrumentation.
type secretUseCaseWithMetrics struct {
	next    SecretUseCase
	metrics metrics.BusinessMetrics
}

// NewSecretUseCaseWithMetrics wraps a SecretUseCase with metrics recording.
func NewSecretUseCaseWithMetrics(useCase SecretUseCase, m metrics.BusinessMetrics) SecretUseCase {
	return &secretUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Put records metrics for secret put operations.
func (s *secretUseCaseWithMetrics) Put(
	ctx context.Context,
	input *secretsDomain.PutInput,
) (*secretsDomain.PutOutput, error) {
	start := time.Now()
	output, err := s.next.Put(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "secrets", "secret_put", status)
	s.metrics.RecordDuration(ctx, "secrets", "secret_put", time.Since(start), status)

	return output, err
}

// Get records metrics for secret retrieval operations.
func (s *secretUseCaseWithMetrics) Get(
	ctx context.Context,
	workspaceID uuid.UUID,
	key string,
	version uint,
) (*secretsDomain.DecryptedSecret, error) {
	start := time.Now()
	secret, err := s.next.Get(ctx, workspaceID, key, version)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "secrets", "secret_get", status)
	s.metrics.RecordDuration(ctx, "secrets", "secret_get", time.Since(start), status)

	return secret, err
}

// List records metrics for secret listing operations.
func (s *secretUseCaseWithMetrics) List(
	ctx context.Context,
	workspaceID uuid.UUID,
	prefix string,
	limit, offset int,
) ([]*secretsDomain.ListItem, int, error) {
	start := time.Now()
	items, total, err := s.next.List(ctx, workspaceID, prefix, limit, offset)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "secrets", "secret_list", status)
	s.metrics.RecordDuration(ctx, "secrets", "secret_list", time.Since(start), status)

	return items, total, err
}

// Versions records metrics for version-history listing operations.
func (s *secretUseCaseWithMetrics) Versions(
	ctx context.Context,
	workspaceID uuid.UUID,
	key string,
	limit, offset int,
) ([]*secretsDomain.VersionSummary, error) {
	start := time.Now()
	versions, err := s.next.Versions(ctx, workspaceID, key, limit, offset)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "secrets", "secret_versions", status)
	s.metrics.RecordDuration(ctx, "secrets", "secret_versions", time.Since(start), status)

	return versions, err
}

// Delete records metrics for secret deletion operations.
func (s *secretUseCaseWithMetrics) Delete(ctx context.Context, workspaceID uuid.UUID, key string) error {
	start := time.Now()
	err := s.next.Delete(ctx, workspaceID, key)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "secrets", "secret_delete", status)
	s.metrics.RecordDuration(ctx, "secrets", "secret_delete", time.Since(start), status)

	return err
}

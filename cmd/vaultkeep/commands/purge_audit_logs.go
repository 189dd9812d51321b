package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	auditUsecase "github.com/allisson/vaultkeep/internal/audit/usecase"
)

// RunPurgeAuditLogs bulk-deletes audit records older than olderThan. This is
// deliberately CLI-only: the HTTP adapter never exposes bulk deletion of the
// audit trail.
func RunPurgeAuditLogs(
	ctx context.Context,
	auditUseCase auditUsecase.UseCase,
	logger *slog.Logger,
	writer io.Writer,
	olderThan time.Duration,
) error {
	logger.Info("purging audit logs", slog.Duration("older_than", olderThan))

	count, err := auditUseCase.Purge(ctx, olderThan)
	if err != nil {
		return fmt.Errorf("failed to purge audit logs: %w", err)
	}

	_, _ = fmt.Fprintf(writer, "Purged %d audit log(s) older than %s\n", count, olderThan)
	logger.Info("audit logs purged", slog.Int64("count", count))
	return nil
}

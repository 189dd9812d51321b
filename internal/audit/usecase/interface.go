// Package usecase implements the audit writer: a fire-and-forget, signed,
// append-only event log decoupled from the operation that triggered it.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/vaultkeep/internal/audit/domain"
)

// Recorder is the narrow interface every domain usecase depends on to emit
// audit records. It never blocks the caller on a database round trip: the
// record is handed to a background queue and Record returns immediately.
type Recorder interface {
	// Record enqueues an audit record for background signing and
	// persistence. Never returns an error the caller must handle: when the
	// queue is full the record is dropped and the drop is logged; a
	// persistence failure is retried up to MaxRetries times and then logged.
	// Neither is surfaced to the originating operation.
	Record(ctx context.Context, record *auditDomain.Record)
}

// UseCase is the full Audit Writer surface: Recorder plus the maintenance
// and query operations the CLI and HTTP adapter expose.
type UseCase interface {
	Recorder

	// List retrieves audit records for a workspace, newest first, paginated.
	List(
		ctx context.Context,
		workspaceID uuid.UUID,
		limit, offset int,
	) ([]*auditDomain.Record, int, error)

	// Verify recomputes and checks a record's HMAC signature against the
	// keyring entry it claims to have been signed under. Returns
	// ErrSignatureInvalid if the record was tampered with or the entry no
	// longer resolves to the same key.
	Verify(ctx context.Context, id uuid.UUID) error

	// Purge bulk-deletes every record older than the configured retention
	// horizon, or olderThan if non-zero. Returns the number of rows removed.
	Purge(ctx context.Context, olderThan time.Duration) (int64, error)

	// Start launches the background worker pool that drains the record
	// queue. Safe to call once per process lifetime.
	Start(ctx context.Context)

	// Stop drains and closes the record queue and waits for every worker to
	// finish its in-flight record, up to ctx's deadline.
	Stop(ctx context.Context)
}

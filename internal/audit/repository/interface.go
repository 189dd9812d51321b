// Package repository implements data persistence for audit records.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/vaultkeep/internal/audit/domain"
)

// AuditRepository defines persistence operations for audit records.
// Records are append-only: no update path exists, only Create, List, and
// bulk-delete-by-age Purge.
type AuditRepository interface {
	// Create inserts a new audit record.
	Create(ctx context.Context, record *auditDomain.Record) error

	// ListByWorkspace retrieves audit records for a workspace, newest first,
	// paginated. Returns the page and the total matching count.
	ListByWorkspace(
		ctx context.Context,
		workspaceID uuid.UUID,
		limit, offset int,
	) ([]*auditDomain.Record, int, error)

	// Get retrieves a single record by ID, for signature verification.
	Get(ctx context.Context, id uuid.UUID) (*auditDomain.Record, error)

	// Purge bulk-deletes every record with created_at older than before.
	// Returns the number of rows removed.
	Purge(ctx context.Context, before time.Time) (int64, error)
}

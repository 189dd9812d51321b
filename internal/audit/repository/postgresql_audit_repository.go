package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/vaultkeep/internal/audit/domain"
	"github.com/allisson/vaultkeep/internal/database"
	apperrors "github.com/allisson/vaultkeep/internal/errors"
)

// PostgreSQLAuditRepository implements AuditRepository for PostgreSQL.
type PostgreSQLAuditRepository struct {
	db *sql.DB
}

// Create inserts a new audit record. Metadata is stored as JSON.
func (p *PostgreSQLAuditRepository) Create(ctx context.Context, record *auditDomain.Record) error {
	querier := database.GetTx(ctx, p.db)

	metadataJSON, err := json.Marshal(record.Metadata)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal audit record metadata")
	}

	var workspaceID any
	if record.WorkspaceID != uuid.Nil {
		workspaceID = record.WorkspaceID
	}
	var keyringEntryID any
	if record.KeyringEntryID != uuid.Nil {
		keyringEntryID = record.KeyringEntryID
	}
	var tokenID any
	if record.TokenID != nil {
		tokenID = *record.TokenID
	}

	query := `INSERT INTO audit_logs
		(id, workspace_id, action, resource_type, resource_id, actor_id, token_id,
		 source_addr, user_agent, correlation_id, success, failure_reason, metadata,
		 keyring_entry_id, signature, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err = querier.ExecContext(ctx, query,
		record.ID, workspaceID, record.Action, record.ResourceType, record.ResourceID,
		record.ActorID, tokenID, record.SourceAddr, record.UserAgent, record.CorrelationID,
		record.Success, record.FailureReason, metadataJSON, keyringEntryID, record.Signature,
		record.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create audit record")
	}
	return nil
}

func scanRecord(row interface {
	Scan(dest ...any) error
}) (*auditDomain.Record, error) {
	var record auditDomain.Record
	var metadataJSON []byte
	var workspaceID uuid.NullUUID
	var keyringEntryID uuid.NullUUID
	var tokenID uuid.NullUUID

	if err := row.Scan(
		&record.ID, &workspaceID, &record.Action, &record.ResourceType, &record.ResourceID,
		&record.ActorID, &tokenID, &record.SourceAddr, &record.UserAgent, &record.CorrelationID,
		&record.Success, &record.FailureReason, &metadataJSON, &keyringEntryID, &record.Signature,
		&record.CreatedAt,
	); err != nil {
		return nil, err
	}

	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &record.Metadata); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal audit record metadata")
		}
	}
	if workspaceID.Valid {
		record.WorkspaceID = workspaceID.UUID
	}
	if keyringEntryID.Valid {
		record.KeyringEntryID = keyringEntryID.UUID
	}
	if tokenID.Valid {
		id := tokenID.UUID
		record.TokenID = &id
	}

	return &record, nil
}

// Get retrieves a single record by ID.
func (p *PostgreSQLAuditRepository) Get(ctx context.Context, id uuid.UUID) (*auditDomain.Record, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, workspace_id, action, resource_type, resource_id, actor_id, token_id,
		source_addr, user_agent, correlation_id, success, failure_reason, metadata,
		keyring_entry_id, signature, created_at
		FROM audit_logs WHERE id = $1`

	record, err := scanRecord(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auditDomain.ErrRecordNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get audit record")
	}
	return record, nil
}

// ListByWorkspace retrieves audit records for a workspace, newest first, paginated.
func (p *PostgreSQLAuditRepository) ListByWorkspace(
	ctx context.Context,
	workspaceID uuid.UUID,
	limit, offset int,
) ([]*auditDomain.Record, int, error) {
	querier := database.GetTx(ctx, p.db)

	var total int
	if err := querier.QueryRowContext(
		ctx, `SELECT count(*) FROM audit_logs WHERE workspace_id = $1`, workspaceID,
	).Scan(&total); err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to count audit records")
	}

	query := `SELECT id, workspace_id, action, resource_type, resource_id, actor_id, token_id,
		source_addr, user_agent, correlation_id, success, failure_reason, metadata,
		keyring_entry_id, signature, created_at
		FROM audit_logs WHERE workspace_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, workspaceID, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to list audit records")
	}
	defer rows.Close()

	var records []*auditDomain.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, 0, apperrors.Wrap(err, "failed to scan audit record row")
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to iterate audit record rows")
	}

	return records, total, nil
}

// Purge bulk-deletes every record older than before.
func (p *PostgreSQLAuditRepository) Purge(ctx context.Context, before time.Time) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM audit_logs WHERE created_at < $1`, before)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to purge audit records")
	}
	return result.RowsAffected()
}

// NewPostgreSQLAuditRepository creates a new PostgreSQL audit repository instance.
func NewPostgreSQLAuditRepository(db *sql.DB) *PostgreSQLAuditRepository {
	return &PostgreSQLAuditRepository{db: db}
}

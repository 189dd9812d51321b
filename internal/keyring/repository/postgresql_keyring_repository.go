// Package repository implements data persistence for keyring entries.
//
// Provides a PostgreSQL implementation with transaction support via database.GetTx().
package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	keyringDomain "github.com/allisson/vaultkeep/internal/keyring/domain"

	"github.com/allisson/vaultkeep/internal/database"
	apperrors "github.com/allisson/vaultkeep/internal/errors"
)

// PostgreSQLKeyringRepository implements keyring entry persistence for PostgreSQL.
type PostgreSQLKeyringRepository struct {
	db *sql.DB
}

// Create inserts a new keyring entry into the database.
func (p *PostgreSQLKeyringRepository) Create(ctx context.Context, entry *keyringDomain.Entry) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO keyring_entries
		(id, workspace_id, master_key_id, algorithm, encrypted_key, nonce, version, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := querier.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.WorkspaceID,
		entry.MasterKeyID,
		entry.Algorithm,
		entry.EncryptedKey,
		entry.Nonce,
		entry.Version,
		entry.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create keyring entry")
	}
	return nil
}

// ListByWorkspace retrieves every keyring entry for a workspace, ordered by
// version descending (newest first).
func (p *PostgreSQLKeyringRepository) ListByWorkspace(
	ctx context.Context,
	workspaceID uuid.UUID,
) ([]*keyringDomain.Entry, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, workspace_id, master_key_id, algorithm, encrypted_key, nonce, version, created_at
		FROM keyring_entries WHERE workspace_id = $1 ORDER BY version DESC`

	rows, err := querier.QueryContext(ctx, query, workspaceID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list keyring entries")
	}
	defer func() {
		_ = rows.Close()
	}()

	var entries []*keyringDomain.Entry
	for rows.Next() {
		var entry keyringDomain.Entry
		if err := rows.Scan(
			&entry.ID,
			&entry.WorkspaceID,
			&entry.MasterKeyID,
			&entry.Algorithm,
			&entry.EncryptedKey,
			&entry.Nonce,
			&entry.Version,
			&entry.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan keyring entry")
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate keyring entries")
	}

	return entries, nil
}

// NewPostgreSQLKeyringRepository creates a new PostgreSQL keyring repository.
func NewPostgreSQLKeyringRepository(db *sql.DB) *PostgreSQLKeyringRepository {
	return &PostgreSQLKeyringRepository{db: db}
}

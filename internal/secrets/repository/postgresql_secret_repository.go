// Package repository implements data persistence for the versioned secret store.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/allisson/vaultkeep/internal/database"
	apperrors "github.com/allisson/vaultkeep/internal/errors"
	secretsDomain "github.com/allisson/vaultkeep/internal/secrets/domain"
)

// PostgreSQLSecretRepository implements SecretRepository for PostgreSQL.
type PostgreSQLSecretRepository struct {
	db *sql.DB
}

// GetByKey retrieves a secret's metadata by (workspace, key).
func (p *PostgreSQLSecretRepository) GetByKey(
	ctx context.Context,
	workspaceID uuid.UUID,
	key string,
) (*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, workspace_id, key, type, description, tags, current_version, created_at, updated_at
			  FROM secrets WHERE workspace_id = $1 AND key = $2`

	var secret secretsDomain.Secret
	err := querier.QueryRowContext(ctx, query, workspaceID, key).Scan(
		&secret.ID, &secret.WorkspaceID, &secret.Key, &secret.Type, &secret.Description,
		pq.Array(&secret.Tags), &secret.CurrentVersion, &secret.CreatedAt, &secret.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, secretsDomain.ErrSecretNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get secret by key")
	}
	return &secret, nil
}

// Upsert inserts a new secret row, or updates an existing one's type,
// description, tags, and updated_at in place.
func (p *PostgreSQLSecretRepository) Upsert(
	ctx context.Context,
	input *secretsDomain.PutInput,
) (uuid.UUID, bool, error) {
	querier := database.GetTx(ctx, p.db)

	now := time.Now().UTC()
	id := uuid.Must(uuid.NewV7())

	query := `INSERT INTO secrets (id, workspace_id, key, type, description, tags, current_version, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, 0, $7, $7)
			  ON CONFLICT (workspace_id, key) DO UPDATE
			  SET type = EXCLUDED.type, description = EXCLUDED.description, tags = EXCLUDED.tags, updated_at = EXCLUDED.updated_at
			  RETURNING id, (xmax != 0) AS existed`

	var returnedID uuid.UUID
	var existed bool
	err := querier.QueryRowContext(
		ctx, query, id, input.WorkspaceID, input.Key, input.Type, input.Description, pq.Array(input.Tags), now,
	).Scan(&returnedID, &existed)
	if err != nil {
		return uuid.Nil, false, apperrors.Wrap(err, "failed to upsert secret")
	}
	return returnedID, existed, nil
}

// SetCurrentVersion updates a secret's current_version pointer.
func (p *PostgreSQLSecretRepository) SetCurrentVersion(ctx context.Context, secretID uuid.UUID, version uint) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE secrets SET current_version = $1 WHERE id = $2`

	_, err := querier.ExecContext(ctx, query, version, secretID)
	if err != nil {
		return apperrors.Wrap(err, "failed to set secret current version")
	}
	return nil
}

// List retrieves secret metadata for a workspace, optionally filtered by key
// prefix, sorted by key ascending, paginated.
func (p *PostgreSQLSecretRepository) List(
	ctx context.Context,
	workspaceID uuid.UUID,
	prefix string,
	limit, offset int,
) ([]*secretsDomain.ListItem, int, error) {
	querier := database.GetTx(ctx, p.db)

	var total int
	err := querier.QueryRowContext(
		ctx,
		`SELECT count(*) FROM secrets WHERE workspace_id = $1 AND key LIKE $2`,
		workspaceID, prefix+"%",
	).Scan(&total)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to count secrets")
	}

	query := `SELECT key, type, description, tags, current_version, created_at, updated_at
			  FROM secrets WHERE workspace_id = $1 AND key LIKE $2
			  ORDER BY key ASC LIMIT $3 OFFSET $4`

	rows, err := querier.QueryContext(ctx, query, workspaceID, prefix+"%", limit, offset)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to list secrets")
	}
	defer rows.Close()

	var items []*secretsDomain.ListItem
	for rows.Next() {
		var item secretsDomain.ListItem
		if err := rows.Scan(
			&item.Key, &item.Type, &item.Description, pq.Array(&item.Tags),
			&item.CurrentVersion, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, 0, apperrors.Wrap(err, "failed to scan secret list row")
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to iterate secret list rows")
	}

	return items, total, nil
}

// Delete removes a secret row; an ON DELETE CASCADE foreign key on
// secret_versions removes its versions. Idempotent.
func (p *PostgreSQLSecretRepository) Delete(ctx context.Context, workspaceID uuid.UUID, key string) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM secrets WHERE workspace_id = $1 AND key = $2`

	_, err := querier.ExecContext(ctx, query, workspaceID, key)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete secret")
	}
	return nil
}

// isUniqueViolation reports whether err looks like a unique constraint
// violation from the postgres driver this module registers.
func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "duplicate key value violates unique constraint") ||
		strings.Contains(err.Error(), "23505")
}

// NewPostgreSQLSecretRepository creates a new PostgreSQL secret repository instance.
func NewPostgreSQLSecretRepository(db *sql.DB) *PostgreSQLSecretRepository {
	return &PostgreSQLSecretRepository{db: db}
}

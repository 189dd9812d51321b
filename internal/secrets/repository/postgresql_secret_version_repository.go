package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/vaultkeep/internal/database"
	apperrors "github.com/allisson/vaultkeep/internal/errors"
	secretsDomain "github.com/allisson/vaultkeep/internal/secrets/domain"
)

// PostgreSQLSecretVersionRepository implements SecretVersionRepository for PostgreSQL.
type PostgreSQLSecretVersionRepository struct {
	db *sql.DB
}

// Create inserts a new immutable secret version row. A unique constraint
// violation on (secret_id, version) surfaces as ErrConflict so the usecase
// layer can recompute the version and retry.
func (p *PostgreSQLSecretVersionRepository) Create(ctx context.Context, version *secretsDomain.SecretVersion) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO secret_versions
			  (id, secret_id, version, ciphertext, nonce, keyring_entry_id, created_by, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := querier.ExecContext(
		ctx, query,
		version.ID, version.SecretID, version.Version, version.Ciphertext,
		version.Nonce, version.KeyringEntryID, version.CreatedBy, version.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Wrap(apperrors.ErrConflict, "secret version already exists")
		}
		return apperrors.Wrap(err, "failed to create secret version")
	}
	return nil
}

// Get retrieves a specific version of a secret.
func (p *PostgreSQLSecretVersionRepository) Get(
	ctx context.Context,
	secretID uuid.UUID,
	version uint,
) (*secretsDomain.SecretVersion, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, secret_id, version, ciphertext, nonce, keyring_entry_id, created_by, created_at
			  FROM secret_versions WHERE secret_id = $1 AND version = $2`

	var sv secretsDomain.SecretVersion
	err := querier.QueryRowContext(ctx, query, secretID, version).Scan(
		&sv.ID, &sv.SecretID, &sv.Version, &sv.Ciphertext, &sv.Nonce,
		&sv.KeyringEntryID, &sv.CreatedBy, &sv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, secretsDomain.ErrVersionNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get secret version")
	}
	return &sv, nil
}

// MaxVersion returns the highest version number stored for a secret, or 0
// if none exist.
func (p *PostgreSQLSecretVersionRepository) MaxVersion(ctx context.Context, secretID uuid.UUID) (uint, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT COALESCE(MAX(version), 0) FROM secret_versions WHERE secret_id = $1`

	var max uint
	if err := querier.QueryRowContext(ctx, query, secretID).Scan(&max); err != nil {
		return 0, apperrors.Wrap(err, "failed to get max secret version")
	}
	return max, nil
}

// List retrieves version summaries for a secret, newest first, paginated.
func (p *PostgreSQLSecretVersionRepository) List(
	ctx context.Context,
	secretID uuid.UUID,
	limit, offset int,
) ([]*secretsDomain.VersionSummary, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT version, created_by, created_at FROM secret_versions
			  WHERE secret_id = $1 ORDER BY version DESC LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, secretID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list secret versions")
	}
	defer rows.Close()

	var summaries []*secretsDomain.VersionSummary
	for rows.Next() {
		var vs secretsDomain.VersionSummary
		if err := rows.Scan(&vs.Version, &vs.CreatedBy, &vs.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan secret version row")
		}
		summaries = append(summaries, &vs)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate secret version rows")
	}

	return summaries, nil
}

// NewPostgreSQLSecretVersionRepository creates a new PostgreSQL secret version repository instance.
func NewPostgreSQLSecretVersionRepository(db *sql.DB) *PostgreSQLSecretVersionRepository {
	return &PostgreSQLSecretVersionRepository{db: db}
}

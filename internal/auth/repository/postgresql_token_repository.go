package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/vaultkeep/internal/auth/domain"
	"github.com/allisson/vaultkeep/internal/database"
	apperrors "github.com/allisson/vaultkeep/internal/errors"
)

// PostgreSQLTokenRepository implements Token persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLTokenRepository struct {
	db *sql.DB
}

// Create inserts a new Token. Returns ErrTokenNameTaken if the (workspace_id,
// name) pair already exists.
func (p *PostgreSQLTokenRepository) Create(ctx context.Context, token *authDomain.Token) error {
	querier := database.GetTx(ctx, p.db)

	scopesJSON, err := marshalScopes(token.Scopes)
	if err != nil {
		return err
	}

	query := `INSERT INTO tokens (
				  id, workspace_id, name, fingerprint, token_hash, role, scopes,
				  expires_at, last_used_at, last_used_source_addr, is_active, created_by, created_at
			  ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err = querier.ExecContext(
		ctx,
		query,
		token.ID,
		token.WorkspaceID,
		token.Name,
		token.Fingerprint,
		token.TokenHash,
		string(token.Role),
		scopesJSON,
		token.ExpiresAt,
		token.LastUsedAt,
		token.LastUsedSourceAddr,
		token.IsActive,
		token.CreatedBy,
		token.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return authDomain.ErrTokenNameTaken
		}
		return apperrors.Wrap(err, "failed to create token")
	}
	return nil
}

// GetByFingerprint retrieves a Token by its fingerprint. Returns ErrTokenNotFound
// if no row matches.
func (p *PostgreSQLTokenRepository) GetByFingerprint(ctx context.Context, fingerprint string) (*authDomain.Token, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT
				  id, workspace_id, name, fingerprint, token_hash, role, scopes,
				  expires_at, last_used_at, last_used_source_addr, is_active, created_by, created_at
			  FROM tokens WHERE fingerprint = $1`

	return scanToken(querier.QueryRowContext(ctx, query, fingerprint))
}

// Get retrieves a Token by ID.
func (p *PostgreSQLTokenRepository) Get(ctx context.Context, tokenID uuid.UUID) (*authDomain.Token, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT
				  id, workspace_id, name, fingerprint, token_hash, role, scopes,
				  expires_at, last_used_at, last_used_source_addr, is_active, created_by, created_at
			  FROM tokens WHERE id = $1`

	return scanToken(querier.QueryRowContext(ctx, query, tokenID))
}

// ListByWorkspace retrieves every token issued within a workspace, newest first.
func (p *PostgreSQLTokenRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*authDomain.Token, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT
				  id, workspace_id, name, fingerprint, token_hash, role, scopes,
				  expires_at, last_used_at, last_used_source_addr, is_active, created_by, created_at
			  FROM tokens WHERE workspace_id = $1 ORDER BY created_at DESC`

	rows, err := querier.QueryContext(ctx, query, workspaceID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list tokens")
	}
	defer func() {
		_ = rows.Close()
	}()

	tokens := make([]*authDomain.Token, 0)
	for rows.Next() {
		token, err := scanTokenRow(rows)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate tokens")
	}

	return tokens, nil
}

// UpdateLastUsed updates the last-used metadata for a token. Called
// asynchronously after successful authentication and is not expected to
// block the caller's request.
func (p *PostgreSQLTokenRepository) UpdateLastUsed(ctx context.Context, tokenID uuid.UUID, sourceAddr string, usedAt time.Time) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE tokens SET last_used_at = $1, last_used_source_addr = $2 WHERE id = $3`

	_, err := querier.ExecContext(ctx, query, usedAt, sourceAddr, tokenID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update token last-used metadata")
	}
	return nil
}

// SetActive flips a token's active flag, used to revoke it.
func (p *PostgreSQLTokenRepository) SetActive(ctx context.Context, tokenID uuid.UUID, isActive bool) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE tokens SET is_active = $1 WHERE id = $2`

	result, err := querier.ExecContext(ctx, query, isActive, tokenID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update token active state")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if rows == 0 {
		return authDomain.ErrTokenNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanToken(row rowScanner) (*authDomain.Token, error) {
	return scanTokenRow(row)
}

func scanTokenRow(row rowScanner) (*authDomain.Token, error) {
	var token authDomain.Token
	var role string
	var scopesJSON []byte

	err := row.Scan(
		&token.ID,
		&token.WorkspaceID,
		&token.Name,
		&token.Fingerprint,
		&token.TokenHash,
		&role,
		&scopesJSON,
		&token.ExpiresAt,
		&token.LastUsedAt,
		&token.LastUsedSourceAddr,
		&token.IsActive,
		&token.CreatedBy,
		&token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrTokenNotFound
		}
		return nil, apperrors.Wrap(err, "failed to scan token")
	}

	token.Role = authDomain.Role(role)
	if scopesJSON != nil {
		if err := json.Unmarshal(scopesJSON, &token.Scopes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal token scopes")
		}
	}

	return &token, nil
}

// isUniqueViolation reports whether err looks like a unique constraint
// violation from either the postgres or mysql driver this module registers.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "Error 1062") ||
		strings.Contains(msg, "23505")
}

func marshalScopes(scopes []authDomain.Permission) ([]byte, error) {
	if scopes == nil {
		return nil, nil
	}
	data, err := json.Marshal(scopes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal token scopes")
	}
	return data, nil
}

// NewPostgreSQLTokenRepository creates a new PostgreSQL Token repository.
func NewPostgreSQLTokenRepository(db *sql.DB) *PostgreSQLTokenRepository {
	return &PostgreSQLTokenRepository{db: db}
}

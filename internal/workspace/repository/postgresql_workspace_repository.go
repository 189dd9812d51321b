// Package repository implements data persistence for workspaces.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/vaultkeep/internal/database"
	apperrors "github.com/allisson/vaultkeep/internal/errors"
	workspaceDomain "github.com/allisson/vaultkeep/internal/workspace/domain"
)

// PostgreSQLWorkspaceRepository implements Workspace persistence for PostgreSQL.
type PostgreSQLWorkspaceRepository struct {
	db *sql.DB
}

// Create inserts a new workspace. Returns ErrWorkspaceSlugTaken on a unique
// constraint violation of the slug column.
func (p *PostgreSQLWorkspaceRepository) Create(ctx context.Context, workspace *workspaceDomain.Workspace) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO workspaces (id, slug, name, created_at) VALUES ($1, $2, $3, $4)`

	_, err := querier.ExecContext(ctx, query, workspace.ID, workspace.Slug, workspace.Name, workspace.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return workspaceDomain.ErrWorkspaceSlugTaken
		}
		return apperrors.Wrap(err, "failed to create workspace")
	}
	return nil
}

// GetBySlug retrieves a workspace by its slug.
func (p *PostgreSQLWorkspaceRepository) GetBySlug(ctx context.Context, slug string) (*workspaceDomain.Workspace, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, slug, name, created_at FROM workspaces WHERE slug = $1`

	var workspace workspaceDomain.Workspace
	err := querier.QueryRowContext(ctx, query, slug).Scan(
		&workspace.ID, &workspace.Slug, &workspace.Name, &workspace.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, workspaceDomain.ErrWorkspaceNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get workspace by slug")
	}
	return &workspace, nil
}

// GetByID retrieves a workspace by its ID.
func (p *PostgreSQLWorkspaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*workspaceDomain.Workspace, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, slug, name, created_at FROM workspaces WHERE id = $1`

	var workspace workspaceDomain.Workspace
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&workspace.ID, &workspace.Slug, &workspace.Name, &workspace.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, workspaceDomain.ErrWorkspaceNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get workspace by id")
	}
	return &workspace, nil
}

// isUniqueViolation reports whether err looks like a unique constraint
// violation from either the postgres or mysql driver this module registers.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "Error 1062") ||
		strings.Contains(msg, "23505")
}

// NewPostgreSQLWorkspaceRepository creates a new PostgreSQL workspace repository.
func NewPostgreSQLWorkspaceRepository(db *sql.DB) *PostgreSQLWorkspaceRepository {
	return &PostgreSQLWorkspaceRepository{db: db}
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/vaultkeep/internal/auth/domain"
	"github.com/allisson/vaultkeep/internal/testutil"
	workspaceDomain "github.com/allisson/vaultkeep/internal/workspace/domain"
	workspaceRepository "github.com/allisson/vaultkeep/internal/workspace/repository"
)

func seedWorkspace(t *testing.T, ctx context.Context, repo *workspaceRepository.PostgreSQLWorkspaceRepository, slug string) *workspaceDomain.Workspace {
	t.Helper()
	workspace := &workspaceDomain.Workspace{
		ID:        uuid.Must(uuid.NewV7()),
		Slug:      slug,
		Name:      slug,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Create(ctx, workspace))
	return workspace
}

func TestNewPostgreSQLTokenRepository(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewPostgreSQLTokenRepository(db)
	assert.NotNil(t, repo)
	assert.IsType(t, &PostgreSQLTokenRepository{}, repo)
}

func TestPostgreSQLTokenRepository_Create(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	ctx := context.Background()
	workspace := seedWorkspace(t, ctx, workspaceRepository.NewPostgreSQLWorkspaceRepository(db), "token-create")

	tokenRepo := NewPostgreSQLTokenRepository(db)
	expiresAt := time.Now().UTC().Add(24 * time.Hour)

	token := &authDomain.Token{
		ID:          uuid.Must(uuid.NewV7()),
		WorkspaceID: workspace.ID,
		Name:        "ci-deploy",
		Fingerprint: "fingerprint-1",
		TokenHash:   "hash-1",
		Role:        authDomain.RoleWrite,
		ExpiresAt:   &expiresAt,
		IsActive:    true,
		CreatedBy:   "operator@example.com",
		CreatedAt:   time.Now().UTC(),
	}

	err := tokenRepo.Create(ctx, token)
	require.NoError(t, err)

	retrieved, err := tokenRepo.Get(ctx, token.ID)
	require.NoError(t, err)

	assert.Equal(t, token.ID, retrieved.ID)
	assert.Equal(t, token.WorkspaceID, retrieved.WorkspaceID)
	assert.Equal(t, token.Fingerprint, retrieved.Fingerprint)
	assert.Equal(t, token.TokenHash, retrieved.TokenHash)
	assert.Equal(t, token.Role, retrieved.Role)
	require.NotNil(t, retrieved.ExpiresAt)
	assert.WithinDuration(t, *token.ExpiresAt, *retrieved.ExpiresAt, time.Second)
	assert.True(t, retrieved.IsActive)
}

func TestPostgreSQLTokenRepository_Create_DuplicateNameInWorkspace(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	ctx := context.Background()
	workspace := seedWorkspace(t, ctx, workspaceRepository.NewPostgreSQLWorkspaceRepository(db), "token-dup")
	tokenRepo := NewPostgreSQLTokenRepository(db)

	first := &authDomain.Token{
		ID:          uuid.Must(uuid.NewV7()),
		WorkspaceID: workspace.ID,
		Name:        "dup-name",
		Fingerprint: "fp-a",
		TokenHash:   "hash-a",
		Role:        authDomain.RoleRead,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, tokenRepo.Create(ctx, first))

	second := &authDomain.Token{
		ID:          uuid.Must(uuid.NewV7()),
		WorkspaceID: workspace.ID,
		Name:        "dup-name",
		Fingerprint: "fp-b",
		TokenHash:   "hash-b",
		Role:        authDomain.RoleRead,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
	err := tokenRepo.Create(ctx, second)
	assert.ErrorIs(t, err, authDomain.ErrTokenNameTaken)
}

func TestPostgreSQLTokenRepository_GetByFingerprint(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	ctx := context.Background()
	workspace := seedWorkspace(t, ctx, workspaceRepository.NewPostgreSQLWorkspaceRepository(db), "token-fp")
	tokenRepo := NewPostgreSQLTokenRepository(db)

	token := &authDomain.Token{
		ID:          uuid.Must(uuid.NewV7()),
		WorkspaceID: workspace.ID,
		Name:        "lookup-me",
		Fingerprint: "unique-fingerprint",
		TokenHash:   "hash",
		Role:        authDomain.RoleAdmin,
		Scopes:      []authDomain.Permission{authDomain.PermissionRead, authDomain.PermissionList},
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, tokenRepo.Create(ctx, token))

	retrieved, err := tokenRepo.GetByFingerprint(ctx, "unique-fingerprint")
	require.NoError(t, err)
	assert.Equal(t, token.ID, retrieved.ID)
	assert.Equal(t, token.Scopes, retrieved.Scopes)

	_, err = tokenRepo.GetByFingerprint(ctx, "does-not-exist")
	assert.ErrorIs(t, err, authDomain.ErrTokenNotFound)
}

func TestPostgreSQLTokenRepository_ListByWorkspace(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	ctx := context.Background()
	workspaceRepo := workspaceRepository.NewPostgreSQLWorkspaceRepository(db)
	workspaceA := seedWorkspace(t, ctx, workspaceRepo, "list-a")
	workspaceB := seedWorkspace(t, ctx, workspaceRepo, "list-b")
	tokenRepo := NewPostgreSQLTokenRepository(db)

	require.NoError(t, tokenRepo.Create(ctx, &authDomain.Token{
		ID:          uuid.Must(uuid.NewV7()),
		WorkspaceID: workspaceA.ID,
		Name:        "a-1",
		Fingerprint: "fp-list-a1",
		TokenHash:   "hash",
		Role:        authDomain.RoleRead,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}))
	time.Sleep(time.Millisecond)
	require.NoError(t, tokenRepo.Create(ctx, &authDomain.Token{
		ID:          uuid.Must(uuid.NewV7()),
		WorkspaceID: workspaceA.ID,
		Name:        "a-2",
		Fingerprint: "fp-list-a2",
		TokenHash:   "hash",
		Role:        authDomain.RoleRead,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}))
	require.NoError(t, tokenRepo.Create(ctx, &authDomain.Token{
		ID:          uuid.Must(uuid.NewV7()),
		WorkspaceID: workspaceB.ID,
		Name:        "b-1",
		Fingerprint: "fp-list-b1",
		TokenHash:   "hash",
		Role:        authDomain.RoleRead,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}))

	tokens, err := tokenRepo.ListByWorkspace(ctx, workspaceA.ID)
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, "a-2", tokens[0].Name, "newest first")
}

func TestPostgreSQLTokenRepository_UpdateLastUsed(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	ctx := context.Background()
	workspace := seedWorkspace(t, ctx, workspaceRepository.NewPostgreSQLWorkspaceRepository(db), "last-used")
	tokenRepo := NewPostgreSQLTokenRepository(db)

	token := &authDomain.Token{
		ID:          uuid.Must(uuid.NewV7()),
		WorkspaceID: workspace.ID,
		Name:        "used-token",
		Fingerprint: "fp-used",
		TokenHash:   "hash",
		Role:        authDomain.RoleRead,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, tokenRepo.Create(ctx, token))

	usedAt := time.Now().UTC()
	require.NoError(t, tokenRepo.UpdateLastUsed(ctx, token.ID, "203.0.113.7", usedAt))

	retrieved, err := tokenRepo.Get(ctx, token.ID)
	require.NoError(t, err)
	require.NotNil(t, retrieved.LastUsedAt)
	assert.WithinDuration(t, usedAt, *retrieved.LastUsedAt, time.Second)
	assert.Equal(t, "203.0.113.7", retrieved.LastUsedSourceAddr)
}

func TestPostgreSQLTokenRepository_SetActive(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	ctx := context.Background()
	workspace := seedWorkspace(t, ctx, workspaceRepository.NewPostgreSQLWorkspaceRepository(db), "revoke")
	tokenRepo := NewPostgreSQLTokenRepository(db)

	token := &authDomain.Token{
		ID:          uuid.Must(uuid.NewV7()),
		WorkspaceID: workspace.ID,
		Name:        "revoke-me",
		Fingerprint: "fp-revoke",
		TokenHash:   "hash",
		Role:        authDomain.RoleRead,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, tokenRepo.Create(ctx, token))

	require.NoError(t, tokenRepo.SetActive(ctx, token.ID, false))

	retrieved, err := tokenRepo.Get(ctx, token.ID)
	require.NoError(t, err)
	assert.False(t, retrieved.IsActive)

	err = tokenRepo.SetActive(ctx, uuid.Must(uuid.NewV7()), true)
	assert.ErrorIs(t, err, authDomain.ErrTokenNotFound)
}

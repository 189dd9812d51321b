package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/vaultkeep/internal/errors"
	secretsDomain "github.com/allisson/vaultkeep/internal/secrets/domain"
	"github.com/allisson/vaultkeep/internal/testutil"
	workspaceDomain "github.com/allisson/vaultkeep/internal/workspace/domain"
	workspaceRepository "github.com/allisson/vaultkeep/internal/workspace/repository"
)

func seedSecretWorkspace(t *testing.T, ctx context.Context, db *sql.DB, slug string) uuid.UUID {
	t.Helper()
	workspace := &workspaceDomain.Workspace{
		ID:        uuid.Must(uuid.NewV7()),
		Slug:      slug,
		Name:      slug,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, workspaceRepository.NewPostgreSQLWorkspaceRepository(db).Create(ctx, workspace))
	return workspace.ID
}

func TestNewPostgreSQLSecretRepository(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewPostgreSQLSecretRepository(db)
	assert.NotNil(t, repo)
}

func TestPostgreSQLSecretRepository_Upsert(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	ctx := context.Background()
	workspaceID := seedSecretWorkspace(t, ctx, db, "sr-upsert")
	repo := NewPostgreSQLSecretRepository(db)

	input := &secretsDomain.PutInput{
		WorkspaceID: workspaceID,
		Key:         "app/api-key",
		Type:        secretsDomain.TypeString,
		Description: "API key for the billing service",
		Tags:        []string{"billing", "prod"},
	}

	id, existed, err := repo.Upsert(ctx, input)
	require.NoError(t, err)
	assert.False(t, existed)
	assert.NotEqual(t, uuid.Nil, id)

	secondID, existed, err := repo.Upsert(ctx, input)
	require.NoError(t, err)
	assert.True(t, existed)
	assert.Equal(t, id, secondID)
}

func TestPostgreSQLSecretRepository_GetByKey(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	ctx := context.Background()
	workspaceID := seedSecretWorkspace(t, ctx, db, "sr-getbykey")
	repo := NewPostgreSQLSecretRepository(db)

	input := &secretsDomain.PutInput{
		WorkspaceID: workspaceID,
		Key:         "app/database/password",
		Type:        secretsDomain.TypeString,
		Description: "prod database password",
		Tags:        []string{"db"},
	}
	_, _, err := repo.Upsert(ctx, input)
	require.NoError(t, err)

	secret, err := repo.GetByKey(ctx, workspaceID, "app/database/password")
	require.NoError(t, err)
	assert.Equal(t, input.Key, secret.Key)
	assert.Equal(t, input.Type, secret.Type)
	assert.Equal(t, input.Tags, secret.Tags)
	assert.Equal(t, uint(0), secret.CurrentVersion)
}

func TestPostgreSQLSecretRepository_GetByKey_NotFound(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	ctx := context.Background()
	workspaceID := seedSecretWorkspace(t, ctx, db, "sr-getbykey_notfound")
	repo := NewPostgreSQLSecretRepository(db)

	_, err := repo.GetByKey(ctx, workspaceID, "does/not/exist")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPostgreSQLSecretRepository_SetCurrentVersion(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	ctx := context.Background()
	workspaceID := seedSecretWorkspace(t, ctx, db, "sr-setcurrentversion")
	repo := NewPostgreSQLSecretRepository(db)

	id, _, err := repo.Upsert(ctx, &secretsDomain.PutInput{
		WorkspaceID: workspaceID, Key: "app/key", Type: secretsDomain.TypeString,
	})
	require.NoError(t, err)

	require.NoError(t, repo.SetCurrentVersion(ctx, id, 3))

	secret, err := repo.GetByKey(ctx, workspaceID, "app/key")
	require.NoError(t, err)
	assert.Equal(t, uint(3), secret.CurrentVersion)
}

func TestPostgreSQLSecretRepository_List(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	ctx := context.Background()
	workspaceID := seedSecretWorkspace(t, ctx, db, "sr-list")
	repo := NewPostgreSQLSecretRepository(db)

	for _, key := range []string{"app/a", "app/b", "other/c"} {
		_, _, err := repo.Upsert(ctx, &secretsDomain.PutInput{
			WorkspaceID: workspaceID, Key: key, Type: secretsDomain.TypeString,
		})
		require.NoError(t, err)
	}

	items, total, err := repo.List(ctx, workspaceID, "app/", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, items, 2)
	assert.Equal(t, "app/a", items[0].Key)
	assert.Equal(t, "app/b", items[1].Key)
}

func TestPostgreSQLSecretRepository_Delete(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	ctx := context.Background()
	workspaceID := seedSecretWorkspace(t, ctx, db, "sr-delete")
	repo := NewPostgreSQLSecretRepository(db)

	_, _, err := repo.Upsert(ctx, &secretsDomain.PutInput{
		WorkspaceID: workspaceID, Key: "app/to-delete", Type: secretsDomain.TypeString,
	})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, workspaceID, "app/to-delete"))

	_, err = repo.GetByKey(ctx, workspaceID, "app/to-delete")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// Idempotent: deleting an already-absent key succeeds.
	require.NoError(t, repo.Delete(ctx, workspaceID, "app/to-delete"))
}

func TestPostgreSQLSecretVersionRepository_CreateAndGet(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	ctx := context.Background()
	workspaceID := seedSecretWorkspace(t, ctx, db, "svr-createandget")
	secretRepo := NewPostgreSQLSecretRepository(db)
	versionRepo := NewPostgreSQLSecretVersionRepository(db)

	secretID, _, err := secretRepo.Upsert(ctx, &secretsDomain.PutInput{
		WorkspaceID: workspaceID, Key: "app/versioned", Type: secretsDomain.TypeString,
	})
	require.NoError(t, err)

	entryID := uuid.Must(uuid.NewV7())
	version := &secretsDomain.SecretVersion{
		ID:             uuid.Must(uuid.NewV7()),
		SecretID:       secretID,
		Version:        1,
		Ciphertext:     []byte("ciphertext-1"),
		Nonce:          []byte("nonce-1"),
		KeyringEntryID: entryID,
		CreatedBy:      "operator@example.com",
		CreatedAt:      time.Now().UTC(),
	}
	require.NoError(t, versionRepo.Create(ctx, version))

	got, err := versionRepo.Get(ctx, secretID, 1)
	require.NoError(t, err)
	assert.Equal(t, version.Ciphertext, got.Ciphertext)
	assert.Equal(t, version.Nonce, got.Nonce)
	assert.Equal(t, entryID, got.KeyringEntryID)
}

func TestPostgreSQLSecretVersionRepository_Create_DuplicateVersion(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	ctx := context.Background()
	workspaceID := seedSecretWorkspace(t, ctx, db, "svr-create_duplicateversion")
	secretRepo := NewPostgreSQLSecretRepository(db)
	versionRepo := NewPostgreSQLSecretVersionRepository(db)

	secretID, _, err := secretRepo.Upsert(ctx, &secretsDomain.PutInput{
		WorkspaceID: workspaceID, Key: "app/race", Type: secretsDomain.TypeString,
	})
	require.NoError(t, err)

	makeVersion := func() *secretsDomain.SecretVersion {
		return &secretsDomain.SecretVersion{
			ID: uuid.Must(uuid.NewV7()), SecretID: secretID, Version: 1,
			Ciphertext: []byte("c"), Nonce: []byte("n"),
			KeyringEntryID: uuid.Must(uuid.NewV7()), CreatedAt: time.Now().UTC(),
		}
	}

	require.NoError(t, versionRepo.Create(ctx, makeVersion()))
	err = versionRepo.Create(ctx, makeVersion())
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestPostgreSQLSecretVersionRepository_MaxVersion(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	ctx := context.Background()
	workspaceID := seedSecretWorkspace(t, ctx, db, "svr-maxversion")
	secretRepo := NewPostgreSQLSecretRepository(db)
	versionRepo := NewPostgreSQLSecretVersionRepository(db)

	secretID, _, err := secretRepo.Upsert(ctx, &secretsDomain.PutInput{
		WorkspaceID: workspaceID, Key: "app/max", Type: secretsDomain.TypeString,
	})
	require.NoError(t, err)

	max, err := versionRepo.MaxVersion(ctx, secretID)
	require.NoError(t, err)
	assert.Equal(t, uint(0), max)

	for v := uint(1); v <= 3; v++ {
		require.NoError(t, versionRepo.Create(ctx, &secretsDomain.SecretVersion{
			ID: uuid.Must(uuid.NewV7()), SecretID: secretID, Version: v,
			Ciphertext: []byte("c"), Nonce: []byte("n"),
			KeyringEntryID: uuid.Must(uuid.NewV7()), CreatedAt: time.Now().UTC(),
		}))
	}

	max, err = versionRepo.MaxVersion(ctx, secretID)
	require.NoError(t, err)
	assert.Equal(t, uint(3), max)
}

func TestPostgreSQLSecretVersionRepository_List(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	ctx := context.Background()
	workspaceID := seedSecretWorkspace(t, ctx, db, "svr-list")
	secretRepo := NewPostgreSQLSecretRepository(db)
	versionRepo := NewPostgreSQLSecretVersionRepository(db)

	secretID, _, err := secretRepo.Upsert(ctx, &secretsDomain.PutInput{
		WorkspaceID: workspaceID, Key: "app/history", Type: secretsDomain.TypeString,
	})
	require.NoError(t, err)

	for v := uint(1); v <= 3; v++ {
		require.NoError(t, versionRepo.Create(ctx, &secretsDomain.SecretVersion{
			ID: uuid.Must(uuid.NewV7()), SecretID: secretID, Version: v,
			Ciphertext: []byte("c"), Nonce: []byte("n"),
			KeyringEntryID: uuid.Must(uuid.NewV7()), CreatedBy: "actor", CreatedAt: time.Now().UTC(),
		}))
	}

	summaries, err := versionRepo.List(ctx, secretID, 10, 0)
	require.NoError(t, err)
	require.Len(t, summaries, 3)
	assert.Equal(t, uint(3), summaries[0].Version)
	assert.Equal(t, uint(1), summaries[2].Version)
}

// Package usecase implements business logic orchestration for the versioned
// secret store: atomic upsert, decrypt-on-read, metadata listing, version
// history, and cascading delete.
package usecase

import (
	"context"

	"github.com/google/uuid"

	secretsDomain "github.com/allisson/vaultkeep/internal/secrets/domain"
)

// SecretRepository defines persistence operations for secret metadata rows.
// Implementations must support transaction-aware operations via context
// propagation (see database.TxManager/GetTx).
type SecretRepository interface {
	// GetByKey retrieves a secret's metadata by (workspace, key).
	// Returns ErrSecretNotFound if absent.
	GetByKey(ctx context.Context, workspaceID uuid.UUID, key string) (*secretsDomain.Secret, error)

	// Upsert inserts a new secret row, or updates an existing one's type,
	// description, tags, and updated_at in place. Returns the row's ID and
	// whether it already existed, so the caller can check for a disallowed
	// type change.
	Upsert(ctx context.Context, input *secretsDomain.PutInput) (id uuid.UUID, existed bool, err error)

	// SetCurrentVersion updates a secret's current_version pointer.
	SetCurrentVersion(ctx context.Context, secretID uuid.UUID, version uint) error

	// List retrieves secret metadata for a workspace, optionally filtered by
	// key prefix, sorted by key ascending, and paginated. Returns the page
	// and the total matching count (ignoring limit/offset).
	List(
		ctx context.Context,
		workspaceID uuid.UUID,
		prefix string,
		limit, offset int,
	) ([]*secretsDomain.ListItem, int, error)

	// Delete removes a secret row; callers rely on an ON DELETE CASCADE to
	// remove its versions. Idempotent: deleting an absent key is not an error.
	Delete(ctx context.Context, workspaceID uuid.UUID, key string) error
}

// SecretVersionRepository defines persistence operations for immutable
// secret version rows.
type SecretVersionRepository interface {
	// Create inserts a new version row. Implementations do not retry: a
	// unique-constraint violation on (secret_id, version) is returned as
	// ErrConflict so the caller can recompute the next version and call
	// Create again.
	Create(ctx context.Context, version *secretsDomain.SecretVersion) error

	// Get retrieves a specific version of a secret. Returns ErrVersionNotFound
	// if absent.
	Get(ctx context.Context, secretID uuid.UUID, version uint) (*secretsDomain.SecretVersion, error)

	// MaxVersion returns the highest version number stored for a secret, or
	// 0 if none exist.
	MaxVersion(ctx context.Context, secretID uuid.UUID) (uint, error)

	// List retrieves version summaries for a secret, newest first, paginated.
	List(ctx context.Context, secretID uuid.UUID, limit, offset int) ([]*secretsDomain.VersionSummary, error)
}

// SecretUseCase defines business logic for the versioned secret store.
type SecretUseCase interface {
	// Put creates or updates a secret: a single atomic transaction that
	// upserts the metadata row, appends a new encrypted version, and
	// advances current_version, retrying the version number on a
	// unique-constraint race with a concurrent writer.
	Put(ctx context.Context, input *secretsDomain.PutInput) (*secretsDomain.PutOutput, error)

	// Get resolves a secret by (workspace, key), decrypts the requested
	// version (or the current one if version is 0), and returns its
	// plaintext. Fails with DataIntegrity if the current_version pointer
	// names a row that no longer exists.
	Get(ctx context.Context, workspaceID uuid.UUID, key string, version uint) (*secretsDomain.DecryptedSecret, error)

	// List retrieves secret metadata (never values) for a workspace,
	// optionally filtered by key prefix, paginated.
	List(
		ctx context.Context,
		workspaceID uuid.UUID,
		prefix string,
		limit, offset int,
	) ([]*secretsDomain.ListItem, int, error)

	// Versions lists a secret's version history (numbers, creators,
	// timestamps; never ciphertext or plaintext).
	Versions(
		ctx context.Context,
		workspaceID uuid.UUID,
		key string,
		limit, offset int,
	) ([]*secretsDomain.VersionSummary, error)

	// Delete removes a secret and cascades to all its versions. Idempotent.
	Delete(ctx context.Context, workspaceID uuid.UUID, key string) error
}

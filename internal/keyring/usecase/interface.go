// Package usecase implements business logic orchestration for the per-workspace
// keyring: bootstrapping, rotation, and in-memory chain assembly.
package usecase

import (
	"context"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/vaultkeep/internal/crypto/domain"
	keyringDomain "github.com/allisson/vaultkeep/internal/keyring/domain"
)

// KeyringRepository defines persistence operations for keyring entries.
// Implementations must support transaction-aware operations via context propagation.
type KeyringRepository interface {
	// Create stores a new keyring entry.
	Create(ctx context.Context, entry *keyringDomain.Entry) error

	// ListByWorkspace retrieves every entry for a workspace ordered by version
	// descending (newest first).
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*keyringDomain.Entry, error)
}

// KeyringManager orchestrates the keyring entry lifecycle for a workspace:
// bootstrapping its first entry, rotating to a new one, and loading the
// decrypted chain used to encrypt and decrypt secret values.
type KeyringManager interface {
	// Bootstrap creates the first keyring entry for a workspace that has none.
	Bootstrap(
		ctx context.Context,
		masterKeyChain *cryptoDomain.MasterKeyChain,
		workspaceID uuid.UUID,
		alg cryptoDomain.Algorithm,
	) error

	// Rotate creates a new keyring entry for a workspace with an incremented
	// version, bootstrapping it first if it has no entries yet.
	Rotate(
		ctx context.Context,
		masterKeyChain *cryptoDomain.MasterKeyChain,
		workspaceID uuid.UUID,
		alg cryptoDomain.Algorithm,
	) error

	// Chain decrypts and returns every keyring entry for a workspace as a
	// Chain. Concurrent calls for the same workspace are collapsed into a
	// single load.
	Chain(
		ctx context.Context,
		masterKeyChain *cryptoDomain.MasterKeyChain,
		workspaceID uuid.UUID,
	) (*keyringDomain.Chain, error)
}

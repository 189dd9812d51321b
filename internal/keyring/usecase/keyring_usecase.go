package usecase

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	cryptoDomain "github.com/allisson/vaultkeep/internal/crypto/domain"
	cryptoService "github.com/allisson/vaultkeep/internal/crypto/service"
	"github.com/allisson/vaultkeep/internal/database"
	keyringDomain "github.com/allisson/vaultkeep/internal/keyring/domain"
)

// keyringManager implements the KeyringManager interface.
//
// Chain collapses concurrent cold-start loads for the same workspace via a
// singleflight.Group, so a burst of requests against a workspace that has
// never been touched only triggers one database round trip and one set of
// master-key unwraps.
type keyringManager struct {
	txManager     database.TxManager
	keyringRepo   KeyringRepository
	keyManager    cryptoService.KeyManager
	chainLoadFlag singleflight.Group
}

func (k *keyringManager) getMasterKey(
	masterKeyChain *cryptoDomain.MasterKeyChain, id string,
) (*cryptoDomain.MasterKey, error) {
	masterKey, ok := masterKeyChain.Get(id)
	if !ok {
		return nil, cryptoDomain.ErrMasterKeyNotFound
	}
	return masterKey, nil
}

func (k *keyringManager) createEntry(
	ctx context.Context,
	masterKey *cryptoDomain.MasterKey,
	workspaceID uuid.UUID,
	alg cryptoDomain.Algorithm,
	version uint,
) error {
	plainKey, err := k.keyManager.GenerateKey()
	if err != nil {
		return err
	}
	defer cryptoDomain.Zero(plainKey)

	encryptedKey, nonce, err := k.keyManager.WrapKey(plainKey, masterKey, alg)
	if err != nil {
		return err
	}

	entry := &keyringDomain.Entry{
		ID:           uuid.Must(uuid.NewV7()),
		WorkspaceID:  workspaceID,
		MasterKeyID:  masterKey.ID,
		Algorithm:    alg,
		EncryptedKey: encryptedKey,
		Nonce:        nonce,
		Version:      version,
	}

	return k.keyringRepo.Create(ctx, entry)
}

// Bootstrap creates the first keyring entry for a workspace.
func (k *keyringManager) Bootstrap(
	ctx context.Context,
	masterKeyChain *cryptoDomain.MasterKeyChain,
	workspaceID uuid.UUID,
	alg cryptoDomain.Algorithm,
) error {
	masterKey, err := k.getMasterKey(masterKeyChain, masterKeyChain.ActiveMasterKeyID())
	if err != nil {
		return err
	}
	return k.createEntry(ctx, masterKey, workspaceID, alg, 1)
}

// Rotate creates a new keyring entry with an incremented version. If the
// workspace has no entries yet, it bootstraps the first one instead; this
// makes Rotate safe to call unconditionally.
func (k *keyringManager) Rotate(
	ctx context.Context,
	masterKeyChain *cryptoDomain.MasterKeyChain,
	workspaceID uuid.UUID,
	alg cryptoDomain.Algorithm,
) error {
	masterKey, err := k.getMasterKey(masterKeyChain, masterKeyChain.ActiveMasterKeyID())
	if err != nil {
		return err
	}

	return k.txManager.WithTx(ctx, func(ctx context.Context) error {
		entries, err := k.keyringRepo.ListByWorkspace(ctx, workspaceID)
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			return k.createEntry(ctx, masterKey, workspaceID, alg, 1)
		}

		return k.createEntry(ctx, masterKey, workspaceID, alg, entries[0].Version+1)
	})
}

// Chain decrypts and returns every keyring entry for a workspace.
func (k *keyringManager) Chain(
	ctx context.Context,
	masterKeyChain *cryptoDomain.MasterKeyChain,
	workspaceID uuid.UUID,
) (*keyringDomain.Chain, error) {
	result, err, _ := k.chainLoadFlag.Do(workspaceID.String(), func() (interface{}, error) {
		entries, err := k.keyringRepo.ListByWorkspace(ctx, workspaceID)
		if err != nil {
			return nil, err
		}
		if len(entries) == 0 {
			return nil, keyringDomain.ErrNoActiveEntry
		}

		for _, entry := range entries {
			masterKey, err := k.getMasterKey(masterKeyChain, entry.MasterKeyID)
			if err != nil {
				return nil, err
			}
			key, err := k.keyManager.UnwrapKey(entry.EncryptedKey, entry.Nonce, masterKey, entry.Algorithm)
			if err != nil {
				return nil, err
			}
			entry.Key = key
		}

		return keyringDomain.NewChain(entries), nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*keyringDomain.Chain), nil
}

// NewKeyringManager creates a new KeyringManager instance.
func NewKeyringManager(
	txManager database.TxManager,
	keyringRepo KeyringRepository,
	keyManager cryptoService.KeyManager,
) KeyringManager {
	return &keyringManager{
		txManager:   txManager,
		keyringRepo: keyringRepo,
		keyManager:  keyManager,
	}
}

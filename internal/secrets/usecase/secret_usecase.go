package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/vaultkeep/internal/crypto/domain"
	cryptoService "github.com/allisson/vaultkeep/internal/crypto/service"
	"github.com/allisson/vaultkeep/internal/database"
	apperrors "github.com/allisson/vaultkeep/internal/errors"
	keyringUsecase "github.com/allisson/vaultkeep/internal/keyring/usecase"
	secretsDomain "github.com/allisson/vaultkeep/internal/secrets/domain"
)

// maxPutAttempts bounds the version-number retry loop in Put. A collision
// past this many attempts means something other than ordinary concurrent
// writers is wrong (e.g. a stuck transaction), so it is surfaced rather
// than retried forever.
const maxPutAttempts = 5

// secretUseCase implements SecretUseCase: atomic upsert with retrying
// version allocation, decrypt-on-read, metadata listing, version history,
// and cascading delete.
type secretUseCase struct {
	txManager      database.TxManager
	secretRepo     SecretRepository
	versionRepo    SecretVersionRepository
	keyringManager keyringUsecase.KeyringManager
	aeadManager    cryptoService.AEADManager
	masterKeyChain *cryptoDomain.MasterKeyChain
}

// Put creates or updates a secret. The entire operation runs inside one
// transaction: upsert the metadata row, compute the next version, insert
// the new encrypted version, and advance current_version. A unique
// constraint race on (secret_id, version) from a concurrent writer is
// retried with a freshly computed version rather than surfaced to the
// caller.
func (s *secretUseCase) Put(ctx context.Context, input *secretsDomain.PutInput) (*secretsDomain.PutOutput, error) {
	chain, err := s.keyringManager.Chain(ctx, s.masterKeyChain, input.WorkspaceID)
	if err != nil {
		return nil, err
	}

	activeEntry, found := chain.Get(chain.ActiveEntryID())
	if !found {
		return nil, apperrors.Wrap(apperrors.ErrDataIntegrity, "workspace keyring chain has no active entry")
	}

	cipher, err := s.aeadManager.CreateCipher(activeEntry.Key, activeEntry.Algorithm)
	if err != nil {
		return nil, err
	}

	ciphertext, nonce, err := cipher.Encrypt(input.Plaintext, nil)
	if err != nil {
		return nil, err
	}

	var output *secretsDomain.PutOutput
	for attempt := 0; attempt < maxPutAttempts; attempt++ {
		output, err = s.putOnce(ctx, input, activeEntry.ID, ciphertext, nonce)
		if err == nil {
			return output, nil
		}
		if !apperrors.Is(err, apperrors.ErrConflict) {
			return nil, err
		}
	}
	return nil, err
}

// putOnce performs one attempt at the upsert-then-append transaction. A
// version collision surfaces as ErrConflict so Put can retry with a fresh
// version number.
func (s *secretUseCase) putOnce(
	ctx context.Context,
	input *secretsDomain.PutInput,
	keyringEntryID uuid.UUID,
	ciphertext, nonce []byte,
) (*secretsDomain.PutOutput, error) {
	var output *secretsDomain.PutOutput

	err := s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		secretID, existed, err := s.secretRepo.Upsert(txCtx, input)
		if err != nil {
			return err
		}

		if existed {
			existing, err := s.secretRepo.GetByKey(txCtx, input.WorkspaceID, input.Key)
			if err != nil {
				return err
			}
			if isBinary(existing.Type) != isBinary(input.Type) {
				return secretsDomain.ErrTypeChangeNotAllowed
			}
		}

		maxVersion, err := s.versionRepo.MaxVersion(txCtx, secretID)
		if err != nil {
			return err
		}
		newVersion := maxVersion + 1

		version := &secretsDomain.SecretVersion{
			ID:             uuid.Must(uuid.NewV7()),
			SecretID:       secretID,
			Version:        newVersion,
			Ciphertext:     ciphertext,
			Nonce:          nonce,
			KeyringEntryID: keyringEntryID,
			CreatedBy:      input.Actor,
			CreatedAt:      time.Now().UTC(),
		}
		if err := s.versionRepo.Create(txCtx, version); err != nil {
			return err
		}

		if err := s.secretRepo.SetCurrentVersion(txCtx, secretID, newVersion); err != nil {
			return err
		}

		output = &secretsDomain.PutOutput{SecretID: secretID, NewVersion: newVersion}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}

// Get resolves a secret by (workspace, key), decrypts the requested version
// (or the current one when version is 0), and returns its plaintext.
func (s *secretUseCase) Get(
	ctx context.Context,
	workspaceID uuid.UUID,
	key string,
	version uint,
) (*secretsDomain.DecryptedSecret, error) {
	secret, err := s.secretRepo.GetByKey(ctx, workspaceID, key)
	if err != nil {
		return nil, err
	}

	targetVersion := version
	if targetVersion == 0 {
		targetVersion = secret.CurrentVersion
	}

	secretVersion, err := s.versionRepo.Get(ctx, secret.ID, targetVersion)
	if err != nil {
		if apperrors.Is(err, secretsDomain.ErrVersionNotFound) && targetVersion == secret.CurrentVersion {
			return nil, apperrors.Wrap(apperrors.ErrDataIntegrity, "secret current_version points at a missing row")
		}
		return nil, err
	}

	chain, err := s.keyringManager.Chain(ctx, s.masterKeyChain, workspaceID)
	if err != nil {
		return nil, err
	}

	entry, found := chain.Get(secretVersion.KeyringEntryID)
	if !found {
		return nil, apperrors.Wrap(apperrors.ErrDataIntegrity, "keyring entry for secret version not found in chain")
	}

	cipher, err := s.aeadManager.CreateCipher(entry.Key, entry.Algorithm)
	if err != nil {
		return nil, err
	}

	plaintext, err := cipher.Decrypt(secretVersion.Ciphertext, secretVersion.Nonce, nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDataIntegrity, "secret version failed authenticity check")
	}

	return &secretsDomain.DecryptedSecret{
		SecretID:    secret.ID,
		Key:         secret.Key,
		Type:        secret.Type,
		Description: secret.Description,
		Tags:        secret.Tags,
		Version:     secretVersion.Version,
		Plaintext:   plaintext,
		CreatedAt:   secret.CreatedAt,
		UpdatedAt:   secret.UpdatedAt,
	}, nil
}

// List retrieves secret metadata for a workspace, optionally filtered by
// key prefix, paginated.
func (s *secretUseCase) List(
	ctx context.Context,
	workspaceID uuid.UUID,
	prefix string,
	limit, offset int,
) ([]*secretsDomain.ListItem, int, error) {
	return s.secretRepo.List(ctx, workspaceID, prefix, limit, offset)
}

// Versions lists a secret's version history.
func (s *secretUseCase) Versions(
	ctx context.Context,
	workspaceID uuid.UUID,
	key string,
	limit, offset int,
) ([]*secretsDomain.VersionSummary, error) {
	secret, err := s.secretRepo.GetByKey(ctx, workspaceID, key)
	if err != nil {
		return nil, err
	}
	return s.versionRepo.List(ctx, secret.ID, limit, offset)
}

// Delete removes a secret and cascades to all its versions. Deleting an
// absent key succeeds without error.
func (s *secretUseCase) Delete(ctx context.Context, workspaceID uuid.UUID, key string) error {
	err := s.secretRepo.Delete(ctx, workspaceID, key)
	if err != nil && !errors.Is(err, secretsDomain.ErrSecretNotFound) {
		return err
	}
	return nil
}

func isBinary(t secretsDomain.Type) bool {
	return t == secretsDomain.TypeBinary
}

// NewSecretUseCase creates a new SecretUseCase with the provided dependencies.
func NewSecretUseCase(
	txManager database.TxManager,
	secretRepo SecretRepository,
	versionRepo SecretVersionRepository,
	keyringManager keyringUsecase.KeyringManager,
	aeadManager cryptoService.AEADManager,
	masterKeyChain *cryptoDomain.MasterKeyChain,
) SecretUseCase {
	return &secretUseCase{
		txManager:      txManager,
		secretRepo:     secretRepo,
		versionRepo:    versionRepo,
		keyringManager: keyringManager,
		aeadManager:    aeadManager,
		masterKeyChain: masterKeyChain,
	}
}

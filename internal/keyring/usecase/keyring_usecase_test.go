package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/vaultkeep/internal/crypto/domain"
	cryptoService "github.com/allisson/vaultkeep/internal/crypto/service"
	keyringDomain "github.com/allisson/vaultkeep/internal/keyring/domain"
	"github.com/allisson/vaultkeep/internal/keyring/usecase"
)

type fakeTxManager struct{}

func (fakeTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeKeyringRepository struct {
	mu      sync.Mutex
	entries map[uuid.UUID][]*keyringDomain.Entry
}

func newFakeKeyringRepository() *fakeKeyringRepository {
	return &fakeKeyringRepository{entries: make(map[uuid.UUID][]*keyringDomain.Entry)}
}

func (f *fakeKeyringRepository) Create(_ context.Context, entry *keyringDomain.Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[entry.WorkspaceID] = append([]*keyringDomain.Entry{entry}, f.entries[entry.WorkspaceID]...)
	return nil
}

func (f *fakeKeyringRepository) ListByWorkspace(
	_ context.Context, workspaceID uuid.UUID,
) ([]*keyringDomain.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entries[workspaceID], nil
}

func newMasterKeyChain(t *testing.T) *cryptoDomain.MasterKeyChain {
	t.Helper()
	t.Setenv("MASTER_KEYS", "mk-1:MDEyMzQ1Njc4OTAxMjM0NTY3ODkwMTIzNDU2Nzg5MDE=")
	t.Setenv("ACTIVE_MASTER_KEY_ID", "mk-1")
	chain, err := cryptoDomain.LoadMasterKeyChainFromEnv()
	require.NoError(t, err)
	return chain
}

func TestKeyringManager_Bootstrap(t *testing.T) {
	masterKeyChain := newMasterKeyChain(t)
	defer masterKeyChain.Close()

	repo := newFakeKeyringRepository()
	km := usecase.NewKeyringManager(fakeTxManager{}, repo, cryptoService.NewKeyManager(cryptoService.NewAEADManager()))
	workspaceID := uuid.Must(uuid.NewV7())

	err := km.Bootstrap(context.Background(), masterKeyChain, workspaceID, cryptoDomain.AESGCM)
	require.NoError(t, err)

	entries, err := repo.ListByWorkspace(context.Background(), workspaceID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, uint(1), entries[0].Version)
}

func TestKeyringManager_Rotate(t *testing.T) {
	masterKeyChain := newMasterKeyChain(t)
	defer masterKeyChain.Close()

	repo := newFakeKeyringRepository()
	km := usecase.NewKeyringManager(fakeTxManager{}, repo, cryptoService.NewKeyManager(cryptoService.NewAEADManager()))
	workspaceID := uuid.Must(uuid.NewV7())

	t.Run("FirstRotateBootstraps", func(t *testing.T) {
		err := km.Rotate(context.Background(), masterKeyChain, workspaceID, cryptoDomain.AESGCM)
		require.NoError(t, err)

		entries, err := repo.ListByWorkspace(context.Background(), workspaceID)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, uint(1), entries[0].Version)
	})

	t.Run("SecondRotateIncrementsVersion", func(t *testing.T) {
		err := km.Rotate(context.Background(), masterKeyChain, workspaceID, cryptoDomain.ChaCha20)
		require.NoError(t, err)

		entries, err := repo.ListByWorkspace(context.Background(), workspaceID)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, uint(2), entries[0].Version)
		assert.Equal(t, cryptoDomain.ChaCha20, entries[0].Algorithm)
	})
}

func TestKeyringManager_Chain(t *testing.T) {
	masterKeyChain := newMasterKeyChain(t)
	defer masterKeyChain.Close()

	repo := newFakeKeyringRepository()
	km := usecase.NewKeyringManager(fakeTxManager{}, repo, cryptoService.NewKeyManager(cryptoService.NewAEADManager()))
	workspaceID := uuid.Must(uuid.NewV7())

	t.Run("Error_NoEntries", func(t *testing.T) {
		_, err := km.Chain(context.Background(), masterKeyChain, workspaceID)
		assert.ErrorIs(t, err, keyringDomain.ErrNoActiveEntry)
	})

	require.NoError(t, km.Bootstrap(context.Background(), masterKeyChain, workspaceID, cryptoDomain.AESGCM))
	require.NoError(t, km.Rotate(context.Background(), masterKeyChain, workspaceID, cryptoDomain.AESGCM))

	chain, err := km.Chain(context.Background(), masterKeyChain, workspaceID)
	require.NoError(t, err)
	defer chain.Close()

	active, ok := chain.Get(chain.ActiveEntryID())
	require.True(t, ok)
	assert.Len(t, active.Key, 32)
}

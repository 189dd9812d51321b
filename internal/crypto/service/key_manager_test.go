package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/vaultkeep/internal/crypto/domain"
	"github.com/allisson/vaultkeep/internal/crypto/service"
)

func TestKeyManagerService_GenerateKey(t *testing.T) {
	km := service.NewKeyManager(service.NewAEADManager())

	key, err := km.GenerateKey()
	require.NoError(t, err)
	assert.Len(t, key, 32)

	key2, err := km.GenerateKey()
	require.NoError(t, err)
	assert.NotEqual(t, key, key2)
}

func TestKeyManagerService_WrapUnwrapKey(t *testing.T) {
	km := service.NewKeyManager(service.NewAEADManager())
	masterKey := &cryptoDomain.MasterKey{ID: "mk-1", Key: make([]byte, 32)}

	t.Run("Success_AESGCM", func(t *testing.T) {
		plainKey, err := km.GenerateKey()
		require.NoError(t, err)

		encryptedKey, nonce, err := km.WrapKey(plainKey, masterKey, cryptoDomain.AESGCM)
		require.NoError(t, err)
		assert.NotEmpty(t, encryptedKey)
		assert.NotEmpty(t, nonce)

		unwrapped, err := km.UnwrapKey(encryptedKey, nonce, masterKey, cryptoDomain.AESGCM)
		require.NoError(t, err)
		assert.Equal(t, plainKey, unwrapped)
	})

	t.Run("Success_ChaCha20", func(t *testing.T) {
		plainKey, err := km.GenerateKey()
		require.NoError(t, err)

		encryptedKey, nonce, err := km.WrapKey(plainKey, masterKey, cryptoDomain.ChaCha20)
		require.NoError(t, err)

		unwrapped, err := km.UnwrapKey(encryptedKey, nonce, masterKey, cryptoDomain.ChaCha20)
		require.NoError(t, err)
		assert.Equal(t, plainKey, unwrapped)
	})

	t.Run("Error_WrongMasterKey", func(t *testing.T) {
		plainKey, err := km.GenerateKey()
		require.NoError(t, err)

		encryptedKey, nonce, err := km.WrapKey(plainKey, masterKey, cryptoDomain.AESGCM)
		require.NoError(t, err)

		otherMasterKey := &cryptoDomain.MasterKey{ID: "mk-2", Key: make([]byte, 32)}
		otherMasterKey.Key[0] = 1

		_, err = km.UnwrapKey(encryptedKey, nonce, otherMasterKey, cryptoDomain.AESGCM)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})
}

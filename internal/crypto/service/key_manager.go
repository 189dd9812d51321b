package service

import (
	"crypto/rand"
	"fmt"

	cryptoDomain "github.com/allisson/vaultkeep/internal/crypto/domain"
)

// KeyManagerService implements the KeyManager interface.
//
// It generates random key material and wraps/unwraps it under a master key
// using an AEADManager-provided cipher. It holds no state of its own.
type KeyManagerService struct {
	aeadManager AEADManager
}

// NewKeyManager creates a new KeyManagerService instance with the provided AEADManager.
func NewKeyManager(aeadManager AEADManager) *KeyManagerService {
	return &KeyManagerService{
		aeadManager: aeadManager,
	}
}

// GenerateKey returns 32 random bytes suitable for use as an AES-256 or
// ChaCha20 key.
func (km *KeyManagerService) GenerateKey() ([]byte, error) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	return key, nil
}

// WrapKey encrypts plainKey under masterKey with the given algorithm.
func (km *KeyManagerService) WrapKey(
	plainKey []byte,
	masterKey *cryptoDomain.MasterKey,
	alg cryptoDomain.Algorithm,
) ([]byte, []byte, error) {
	aead, err := km.aeadManager.CreateCipher(masterKey.Key, alg)
	if err != nil {
		return nil, nil, err
	}

	encryptedKey, nonce, err := aead.Encrypt(plainKey, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to wrap key: %w", err)
	}

	return encryptedKey, nonce, nil
}

// UnwrapKey decrypts an encrypted key under masterKey.
func (km *KeyManagerService) UnwrapKey(
	encryptedKey, nonce []byte,
	masterKey *cryptoDomain.MasterKey,
	alg cryptoDomain.Algorithm,
) ([]byte, error) {
	aead, err := km.aeadManager.CreateCipher(masterKey.Key, alg)
	if err != nil {
		return nil, err
	}

	plainKey, err := aead.Decrypt(encryptedKey, nonce, nil)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	return plainKey, nil
}

// Package service provides cryptographic service interfaces and implementations.
//
// This package implements the service layer for envelope encryption, providing
// concrete implementations of authenticated encryption algorithms and key wrapping.
//
// # Services Overview
//
// AEADManagerService: Factory for creating AEAD cipher instances.
// Supports AES-256-GCM and ChaCha20-Poly1305 algorithms.
//
// KeyManagerService: Generates and wraps/unwraps 32-byte key material under a
// master key. Used by the keyring package to build its entry chain.
//
// AESGCMCipher: Implements AEAD using AES-256-GCM with hardware acceleration support.
//
// ChaCha20Poly1305Cipher: Implements AEAD using ChaCha20-Poly1305 for platforms
// without AES hardware acceleration.
//
// # Usage Example
//
//	aeadManager := NewAEADManager()
//	keyManager := NewKeyManager(aeadManager)
//
//	masterKeyChain, err := domain.LoadMasterKeyChainFromEnv()
//	if err != nil {
//	    return err
//	}
//	defer masterKeyChain.Close()
//
//	activeMasterKey, _ := masterKeyChain.Get(masterKeyChain.ActiveMasterKeyID())
//
//	plainKey, _ := keyManager.GenerateKey()
//	encryptedKey, nonce, err := keyManager.WrapKey(plainKey, activeMasterKey, domain.AESGCM)
//	if err != nil {
//	    return err
//	}
//
//	cipher, err := aeadManager.CreateCipher(plainKey, domain.AESGCM)
//	if err != nil {
//	    return err
//	}
//	ciphertext, dataNonce, err := cipher.Encrypt(plaintext, nil)
//
// # Thread Safety
//
// All service implementations are stateless and thread-safe. Multiple goroutines
// can safely use the same service instances for concurrent operations.
//
// # Algorithm Selection
//
//   - Use AESGCM on servers and modern CPUs with AES-NI hardware acceleration
//   - Use ChaCha20 on mobile devices, embedded systems, or platforms without AES-NI
//   - Both provide equivalent 256-bit security when properly implemented
package service

import (
	cryptoDomain "github.com/allisson/vaultkeep/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
//
// Implementations: AESGCMCipher, ChaCha20Poly1305Cipher
type AEAD interface {
	// Encrypt encrypts plaintext with optional additional authenticated data (AAD).
	// A unique nonce is generated for each call; it must be stored alongside the
	// ciphertext for later decryption.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD. The same AAD
	// used during encryption must be supplied here or authentication fails.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)

	// NonceSize returns the nonce length this cipher expects.
	NonceSize() int
}

// AEADManager creates AEAD cipher instances for a given key and algorithm.
//
// Implementation: AEADManagerService
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	// The key must be exactly 32 bytes.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// KeyManager generates and wraps/unwraps raw key material under a master key.
//
// This is the master-key tier of the envelope hierarchy:
//
//	Master Key (KMS or environment)
//	    ↓ wraps
//	Keyring entry key
//	    ↓ encrypts
//	Secret value
//
// The keyring package is responsible for persisting wrapped entries and
// building the in-memory chain; KeyManager only performs the wrap/unwrap
// primitive.
//
// Implementation: KeyManagerService
type KeyManager interface {
	// GenerateKey returns fresh random 32-byte key material.
	GenerateKey() ([]byte, error)

	// WrapKey encrypts plainKey under masterKey with the given algorithm.
	WrapKey(
		plainKey []byte,
		masterKey *cryptoDomain.MasterKey,
		alg cryptoDomain.Algorithm,
	) (encryptedKey, nonce []byte, err error)

	// UnwrapKey decrypts an encrypted key under masterKey.
	// Returns ErrDecryptionFailed if authentication fails.
	UnwrapKey(
		encryptedKey, nonce []byte,
		masterKey *cryptoDomain.MasterKey,
		alg cryptoDomain.Algorithm,
	) ([]byte, error)
}

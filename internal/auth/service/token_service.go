package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	"github.com/allisson/go-pwdhash"

	authDomain "github.com/allisson/vaultkeep/internal/auth/domain"
	apperrors "github.com/allisson/vaultkeep/internal/errors"
)

// tokenService implements TokenService using a SHA-256 fingerprint for row
// lookup and Argon2id for authentication.
type tokenService struct {
	hasher *pwdhash.PasswordHasher
}

// GenerateToken creates a new cryptographically secure 32-byte random token,
// encoded as authDomain.TokenPrefix followed by URL-safe base64.
func (t *tokenService) GenerateToken() (plainToken, fingerprint, tokenHash string, err error) {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", "", apperrors.Wrap(err, "failed to generate random token")
	}

	plainToken = authDomain.TokenPrefix + base64.RawURLEncoding.EncodeToString(randomBytes)
	fingerprint = t.Fingerprint(plainToken)

	tokenHash, err = t.hasher.Hash([]byte(plainToken))
	if err != nil {
		return "", "", "", apperrors.Wrap(err, "failed to hash token")
	}

	return plainToken, fingerprint, tokenHash, nil
}

// Fingerprint computes the SHA-256 hex digest of a plain token.
func (t *tokenService) Fingerprint(plainToken string) string {
	sum := sha256.Sum256([]byte(plainToken))
	return hex.EncodeToString(sum[:])
}

// VerifyToken performs a constant-time Argon2id comparison.
func (t *tokenService) VerifyToken(plainToken, tokenHash string) bool {
	ok, err := t.hasher.Verify([]byte(plainToken), tokenHash)
	if err != nil {
		return false
	}
	return ok
}

// NewTokenService creates a new TokenService using Argon2id at the Moderate
// policy, the floor for this module's minimum cost requirements (memory,
// iteration count, and single-threaded parallelism).
func NewTokenService() TokenService {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyModerate),
	)
	if err != nil {
		// This should never happen with a valid built-in policy.
		panic(err)
	}

	return &tokenService{hasher: hasher}
}

package service

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/vaultkeep/internal/auth/domain"
)

func TestNewTokenService(t *testing.T) {
	service := NewTokenService()
	assert.NotNil(t, service)
	assert.IsType(t, &tokenService{}, service)
}

func TestTokenService_GenerateToken(t *testing.T) {
	service := NewTokenService()

	t.Run("Success_GenerateToken", func(t *testing.T) {
		plainToken, fingerprint, tokenHash, err := service.GenerateToken()
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(plainToken, authDomain.TokenPrefix))
		assert.NotEmpty(t, tokenHash)

		payload := strings.TrimPrefix(plainToken, authDomain.TokenPrefix)
		decodedBytes, err := base64.RawURLEncoding.DecodeString(payload)
		require.NoError(t, err)
		assert.Len(t, decodedBytes, 32, "decoded token payload should be 32 bytes")

		expectedFingerprint := sha256.Sum256([]byte(plainToken))
		assert.Equal(t, hex.EncodeToString(expectedFingerprint[:]), fingerprint)

		assert.True(t, service.VerifyToken(plainToken, tokenHash))
	})

	t.Run("Success_GenerateUniqueTokens", func(t *testing.T) {
		plainToken1, fingerprint1, tokenHash1, err1 := service.GenerateToken()
		require.NoError(t, err1)

		plainToken2, fingerprint2, tokenHash2, err2 := service.GenerateToken()
		require.NoError(t, err2)

		assert.NotEqual(t, plainToken1, plainToken2)
		assert.NotEqual(t, fingerprint1, fingerprint2)
		assert.NotEqual(t, tokenHash1, tokenHash2)
	})
}

func TestTokenService_Fingerprint(t *testing.T) {
	service := NewTokenService()

	fingerprint := service.Fingerprint("vt_sometoken")
	expected := sha256.Sum256([]byte("vt_sometoken"))
	assert.Equal(t, hex.EncodeToString(expected[:]), fingerprint)
}

func TestTokenService_VerifyToken(t *testing.T) {
	service := NewTokenService()
	plainToken, _, tokenHash, err := service.GenerateToken()
	require.NoError(t, err)

	t.Run("Success_CorrectToken", func(t *testing.T) {
		assert.True(t, service.VerifyToken(plainToken, tokenHash))
	})

	t.Run("Error_WrongToken", func(t *testing.T) {
		assert.False(t, service.VerifyToken("vt_wrong", tokenHash))
	})

	t.Run("Error_MalformedHash", func(t *testing.T) {
		assert.False(t, service.VerifyToken(plainToken, "not-a-valid-hash"))
	})
}

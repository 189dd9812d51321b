// Package service provides technical services for authentication operations:
// bearer token generation, fingerprinting, and Argon2id verification.
package service

// TokenService defines operations for bearer token generation, fingerprinting,
// and verification. A token's cleartext is never stored: the Fingerprint is a
// fast, non-secret SHA-256 digest used to find the candidate row, and the
// TokenHash is an Argon2id hash used to authenticate it.
type TokenService interface {
	// GenerateToken creates a new cryptographically secure random token,
	// prefixed with authDomain.TokenPrefix. Returns the plain text token (to
	// be shown to the caller once), its fingerprint, and its Argon2id hash
	// (both to be stored).
	GenerateToken() (plainToken, fingerprint, tokenHash string, err error)

	// Fingerprint computes the SHA-256 hex digest used to index token rows.
	// Not secret on its own: it only narrows the search to candidate rows,
	// authentication still requires a passing VerifyToken.
	Fingerprint(plainToken string) string

	// VerifyToken performs a constant-time Argon2id comparison between a
	// presented plain token and a stored hash.
	VerifyToken(plainToken, tokenHash string) bool
}

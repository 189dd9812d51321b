// Package errors provides standardized domain errors for business logic.
package errors

import (
	"errors"
	"fmt"
)

// Standard domain errors that can be used across all domain modules.
var (
	// ErrInvalidToken indicates a missing, malformed, expired, or revoked bearer token.
	ErrInvalidToken = errors.New("invalid token")

	// ErrWorkspaceAccess indicates the caller is acting outside its bound workspace
	// or lacks the permission the operation requires.
	ErrWorkspaceAccess = errors.New("workspace access denied")

	// ErrNotFound indicates the requested resource does not exist in the bound workspace.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a conflict with existing data: a duplicate key, a
	// version race, or a duplicate issuance.
	ErrConflict = errors.New("conflict")

	// ErrInvalidConfig indicates the input data is invalid or fails validation.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrCryptoFailure indicates an AEAD authentication failure or a key
	// wrap/unwrap failure.
	ErrCryptoFailure = errors.New("crypto failure")

	// ErrDataIntegrity indicates a storage-level invariant was violated, such as
	// a secret with no resolvable current version.
	ErrDataIntegrity = errors.New("data integrity violation")

	// ErrRateLimited indicates the caller exceeded a configured rate limit.
	ErrRateLimited = errors.New("rate limited")
)

// New creates a new error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

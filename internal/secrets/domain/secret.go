// Package domain defines the core domain models for the versioned secret store.
//
// A Secret is workspace-scoped metadata keyed by (workspace, key); each write
// appends an immutable SecretVersion row rather than mutating existing
// ciphertext, giving every secret a complete, point-in-time-recoverable
// history. Encryption is handled one layer up, by the keyring's active
// entry; this package only models the ciphertext shape, never plaintext
// persistence.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Type distinguishes a secret's value representation. The distinction
// exists so callers of Get know how to interpret Plaintext, and so Put can
// reject a type change that would silently reinterpret existing history.
type Type string

const (
	// TypeString is a UTF-8 text value (the common case: API keys, passwords,
	// connection strings).
	TypeString Type = "string"

	// TypeBinary is an arbitrary byte payload (certificates, keyfiles).
	TypeBinary Type = "binary"
)

// Secret is the metadata row for one (workspace, key) pair. It never holds
// ciphertext or plaintext directly; CurrentVersion points at the
// SecretVersion callers should read by default.
type Secret struct {
	ID             uuid.UUID
	WorkspaceID    uuid.UUID
	Key            string
	Type           Type
	Description    string
	Tags           []string
	CurrentVersion uint
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SecretVersion is one immutable encrypted write to a secret. Versions are
// never updated or reordered once created; Delete removes a Secret and all
// of its versions together rather than individually retiring one.
type SecretVersion struct {
	ID             uuid.UUID
	SecretID       uuid.UUID
	Version        uint
	Ciphertext     []byte
	Nonce          []byte
	KeyringEntryID uuid.UUID
	CreatedBy      string
	CreatedAt      time.Time
}

// DecryptedSecret is the value object returned by Get: a secret's metadata
// joined with one decrypted version's plaintext.
type DecryptedSecret struct {
	SecretID    uuid.UUID
	Key         string
	Type        Type
	Description string
	Tags        []string
	Version     uint
	Plaintext   []byte
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PutInput carries the fields required to create or update a secret.
type PutInput struct {
	WorkspaceID uuid.UUID
	Key         string
	Type        Type
	Plaintext   []byte
	Tags        []string
	Description string
	Actor       string
}

// PutOutput reports the identity and version number a Put call produced.
type PutOutput struct {
	SecretID   uuid.UUID
	NewVersion uint
}

// VersionSummary is the non-sensitive view of a SecretVersion returned by
// the versions listing: never ciphertext, never plaintext.
type VersionSummary struct {
	Version   uint
	CreatedBy string
	CreatedAt time.Time
}

// ListItem is the non-sensitive view of a Secret returned by the listing
// operation: metadata only, never a value.
type ListItem struct {
	Key            string
	Type           Type
	Description    string
	Tags           []string
	CurrentVersion uint
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

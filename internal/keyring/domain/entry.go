// Package domain defines the per-workspace keyring entry model.
//
// A keyring entry wraps a 32-byte key under the active master key. Every
// workspace maintains its own version-ordered chain of entries; the entry
// with the highest version is active and used to encrypt new secret
// versions. Older entries remain in the chain so existing ciphertext can
// still be decrypted after rotation.
package domain

import (
	"sync"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/vaultkeep/internal/crypto/domain"
)

// Entry represents a single keyring entry: a key wrapped under a master key,
// scoped to one workspace and one version. The Key field holds the
// plaintext key once unwrapped and must never be persisted.
type Entry struct {
	ID           uuid.UUID
	WorkspaceID  uuid.UUID
	MasterKeyID  string
	Algorithm    cryptoDomain.Algorithm
	EncryptedKey []byte
	Key          []byte
	Nonce        []byte
	Version      uint
	CreatedAt    time.Time
}

// Chain manages the decrypted entries for a single workspace, keyed by
// entry ID, with the highest-version entry marked active. Safe for
// concurrent use.
type Chain struct {
	activeID uuid.UUID
	keys     sync.Map
}

// ActiveEntryID returns the ID of the entry new secret versions should be
// encrypted with.
func (c *Chain) ActiveEntryID() uuid.UUID {
	return c.activeID
}

// Get retrieves an entry from the chain by its ID.
func (c *Chain) Get(id uuid.UUID) (*Entry, bool) {
	if entry, ok := c.keys.Load(id); ok {
		return entry.(*Entry), ok
	}
	return nil, false
}

// Close zeros every entry's plaintext key and clears the chain.
func (c *Chain) Close() {
	c.keys.Range(func(_, value interface{}) bool {
		if entry, ok := value.(*Entry); ok {
			cryptoDomain.Zero(entry.Key)
		}
		return true
	})
	c.activeID = uuid.Nil
	c.keys.Clear()
}

// NewChain builds a Chain from a set of decrypted entries. entries must be
// ordered by version descending (newest first) and must not be empty; the
// first entry becomes active.
func NewChain(entries []*Entry) *Chain {
	c := &Chain{activeID: entries[0].ID}
	for _, entry := range entries {
		c.keys.Store(entry.ID, entry)
	}
	return c
}

// Package domain defines the Workspace tenant boundary. Every keyring entry,
// secret, token, and audit record belongs to exactly one workspace; no
// cross-workspace references exist anywhere in the system.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Workspace is the tenant boundary entity. Slug is the external, stable
// identifier used by tokens and operators; ID is the internal surrogate
// used by every owned row.
type Workspace struct {
	ID        uuid.UUID
	Slug      string
	Name      string
	CreatedAt time.Time
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// TokenPrefix is prepended to every cleartext bearer token this module issues.
const TokenPrefix = "vt_"

// Token represents an issued bearer token scoped to exactly one workspace.
// Only Fingerprint and TokenHash are persisted alongside it; the cleartext
// value is returned once, at issuance, and never stored.
type Token struct {
	ID                 uuid.UUID // Unique identifier (UUIDv7)
	WorkspaceID        uuid.UUID
	Name               string // Unique within the workspace
	Fingerprint        string // SHA-256 hex digest of the cleartext, used to index candidate rows
	TokenHash          string // Argon2id hash of the cleartext, used to authenticate
	Role               Role
	Scopes             []Permission // Explicit permission override; nil means use Role's default
	ExpiresAt          *time.Time   // nil means the token never expires
	LastUsedAt         *time.Time
	LastUsedSourceAddr string
	IsActive           bool
	CreatedBy          string
	CreatedAt          time.Time
}

// Permissions returns the token's effective permission set: its explicit
// Scopes if set, otherwise its Role's default set.
func (t *Token) Permissions() []Permission {
	if len(t.Scopes) > 0 {
		return t.Scopes
	}
	return DefaultPermissions(t.Role)
}

// HasPermission reports whether the token's effective permission set grants perm.
func (t *Token) HasPermission(perm Permission) bool {
	for _, p := range t.Permissions() {
		if p == perm {
			return true
		}
	}
	return false
}

// IsExpired reports whether the token has passed its expiration time, if any.
func (t *Token) IsExpired(now time.Time) bool {
	return t.ExpiresAt != nil && now.After(*t.ExpiresAt)
}

// IssueTokenInput contains the parameters for issuing a new bearer token.
type IssueTokenInput struct {
	WorkspaceID uuid.UUID
	Name        string
	Role        Role
	Scopes      []Permission // optional explicit override of the role's default permissions
	ExpiresAt   *time.Time
	CreatedBy   string
}

// IssueTokenOutput contains the newly issued token's metadata and cleartext value.
// The PlainToken is only returned once and must be transmitted securely to the caller.
type IssueTokenOutput struct {
	Token      *Token
	PlainToken string
}

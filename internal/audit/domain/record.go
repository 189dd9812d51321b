// Package domain defines the append-only audit record model: one entry per
// core operation, capturing its outcome with enough context to attribute
// and correlate it, but never the secret material it touched.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Action is the operation kind an audit record reports on.
type Action string

const (
	ActionCreate Action = "CREATE"
	ActionRead   Action = "READ"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
	ActionRotate Action = "ROTATE"
	ActionLogin  Action = "LOGIN"
)

// ResourceType names the kind of entity an audit record's ResourceID refers to.
type ResourceType string

const (
	ResourceSecret    ResourceType = "secret"
	ResourceWorkspace ResourceType = "workspace"
	ResourceToken     ResourceType = "token"
	ResourceKeyring   ResourceType = "keyring"
)

// Record is one append-only audit event. For secret operations ResourceID is
// a natural key (the secret's key name, or the prefix of a listing), and for
// token issuance it is the token's name. It is not a natural key everywhere:
// keyring bootstrap and rotation records carry the workspace's UUID, and
// token login and revocation records carry the token's UUID ("unknown" for
// a login whose token did not resolve). Record content must never include secret plaintexts, DEKs, token
// cleartext, or wrapped DEKs.
type Record struct {
	ID              uuid.UUID
	WorkspaceID     uuid.UUID
	Action          Action
	ResourceType    ResourceType
	ResourceID      string
	ActorID         string
	TokenID         *uuid.UUID
	SourceAddr      string
	UserAgent       string
	CorrelationID   uuid.UUID
	Success         bool
	FailureReason   string
	Metadata        map[string]string
	KeyringEntryID  uuid.UUID // entry whose key signed this record; zero if signing is disabled
	Signature       []byte
	CreatedAt       time.Time
}

// New builds a Record with a fresh ID and CreatedAt, ready to be signed and
// persisted. Signature is left nil; the audit use case's background worker
// fills it in after Recorder.Record has queued the record.
func New(
	workspaceID uuid.UUID,
	action Action,
	resourceType ResourceType,
	resourceID string,
) *Record {
	return &Record{
		ID:           uuid.Must(uuid.NewV7()),
		WorkspaceID:  workspaceID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		CreatedAt:    time.Now().UTC(),
	}
}

package domain

import "github.com/google/uuid"

// AuthContext is the result of successfully authenticating a bearer token.
// It carries everything downstream authorization and audit logging need and
// is threaded through a request's context.Context.
type AuthContext struct {
	WorkspaceID   uuid.UUID
	TokenID       uuid.UUID
	ActorID       string // CreatedBy of the token, identifying who it was issued to
	Role          Role
	Permissions   []Permission
	CorrelationID uuid.UUID
}

// HasPermission reports whether the context's permission set grants perm.
func (a *AuthContext) HasPermission(perm Permission) bool {
	for _, p := range a.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

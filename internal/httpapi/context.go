// Package httpapi provides the Gin-based HTTP transport over the core
// use cases: routing, authentication, and request/response translation.
package httpapi

import (
	"context"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/vaultkeep/internal/auth/domain"
	workspaceDomain "github.com/allisson/vaultkeep/internal/workspace/domain"
)

// authContextKey is a context key type for storing an authenticated
// request's AuthContext.
type authContextKey struct{}

// WithAuthContext stores an AuthContext in ctx, set by AuthMiddleware after
// successful authentication.
func WithAuthContext(ctx context.Context, authCtx *authDomain.AuthContext) context.Context {
	return context.WithValue(ctx, authContextKey{}, authCtx)
}

// AuthContextFrom retrieves the AuthContext stored by AuthMiddleware.
// Returns (nil, false) if none is present.
func AuthContextFrom(ctx context.Context) (*authDomain.AuthContext, bool) {
	authCtx, ok := ctx.Value(authContextKey{}).(*authDomain.AuthContext)
	return authCtx, ok
}

// workspaceFrom retrieves the workspace resolved by WorkspaceMiddleware.
func workspaceFrom(c *gin.Context) *workspaceDomain.Workspace {
	value, ok := c.Get(workspaceContextKey)
	if !ok {
		return nil
	}
	workspace, ok := value.(*workspaceDomain.Workspace)
	if !ok {
		return nil
	}
	return workspace
}

package httpapi

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/vaultkeep/internal/auth/domain"
	authUsecase "github.com/allisson/vaultkeep/internal/auth/usecase"
	apperrors "github.com/allisson/vaultkeep/internal/errors"
	"github.com/allisson/vaultkeep/internal/httputil"
	workspaceUsecase "github.com/allisson/vaultkeep/internal/workspace/usecase"
)

// workspaceContextKey is the Gin context key under which WorkspaceMiddleware
// stores the resolved workspace for handlers in this request's group.
const workspaceContextKey = "vaultkeep.workspace"

// CustomLoggerMiddleware logs completed requests via slog instead of Gin's
// default logger, matching the structured logging used everywhere else.
func CustomLoggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.Info("http request",
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
		)
	}
}

// AuthMiddleware validates the Authorization header's bearer token and
// stores the resulting AuthContext in the request context for downstream
// handlers and AuthorizeWorkspace/Authorize checks.
func AuthMiddleware(tokenUseCase authUsecase.TokenUseCase, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httputil.HandleErrorGin(c, apperrors.ErrInvalidToken, logger)
			c.Abort()
			return
		}

		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) || !strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			httputil.HandleErrorGin(c, apperrors.ErrInvalidToken, logger)
			c.Abort()
			return
		}

		presented := authHeader[len(bearerPrefix):]
		if presented == "" {
			httputil.HandleErrorGin(c, apperrors.ErrInvalidToken, logger)
			c.Abort()
			return
		}

		authCtx, err := tokenUseCase.Authenticate(c.Request.Context(), presented, c.ClientIP())
		if err != nil {
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithAuthContext(c.Request.Context(), authCtx)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// requirePermission returns a handler that aborts with WorkspaceAccess if
// the request's AuthContext lacks perm. Must run after AuthMiddleware.
func requirePermission(tokenUseCase authUsecase.TokenUseCase, perm authDomain.Permission, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authCtx, ok := AuthContextFrom(c.Request.Context())
		if !ok {
			httputil.HandleErrorGin(c, apperrors.ErrInvalidToken, logger)
			c.Abort()
			return
		}

		if err := tokenUseCase.Authorize(authCtx, perm); err != nil {
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}

// WorkspaceMiddleware resolves the :workspace path parameter to a workspace
// row and checks the authenticated token is bound to it, via
// AuthorizeWorkspace. Must run after AuthMiddleware. Stores the resolved
// workspace for handlers via workspaceFrom.
func WorkspaceMiddleware(
	workspaceUseCase workspaceUsecase.WorkspaceUseCase,
	tokenUseCase authUsecase.TokenUseCase,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		authCtx, ok := AuthContextFrom(c.Request.Context())
		if !ok {
			httputil.HandleErrorGin(c, apperrors.ErrInvalidToken, logger)
			c.Abort()
			return
		}

		slug := c.Param("workspace")
		workspace, err := workspaceUseCase.GetBySlug(c.Request.Context(), slug)
		if err != nil {
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		if err := tokenUseCase.AuthorizeWorkspace(authCtx, workspace.ID); err != nil {
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Set(workspaceContextKey, workspace)
		c.Next()
	}
}

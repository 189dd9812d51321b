// Package httpapi provides the Gin-based HTTP transport over the core
// use cases: routing, authentication, and request/response translation.
package httpapi

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	authDomain "github.com/allisson/vaultkeep/internal/auth/domain"
	authUsecase "github.com/allisson/vaultkeep/internal/auth/usecase"
	"github.com/allisson/vaultkeep/internal/config"
	"github.com/allisson/vaultkeep/internal/metrics"
	workspaceUsecase "github.com/allisson/vaultkeep/internal/workspace/usecase"
)

// Server is the Gin-based HTTP server exposing vaultkeep's core operations.
type Server struct {
	db       *sql.DB
	server   *http.Server
	logger   *slog.Logger
	reqGroup singleflight.Group
}

// NewServer creates a new HTTP server bound to host:port.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter configures the Gin router with every route and middleware.
func (s *Server) SetupRouter(
	cfg *config.Config,
	workspaceHandler *WorkspaceHandler,
	tokenHandler *TokenHandler,
	secretHandler *SecretHandler,
	keyringHandler *KeyringHandler,
	auditHandler *AuditHandler,
	tokenUseCase authUsecase.TokenUseCase,
	workspaceUseCase workspaceUsecase.WorkspaceUseCase,
	metricsProvider *metrics.Provider,
	metricsNamespace string,
) {
	router := gin.New()
	router.Use(gin.Recovery())

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), metricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	auth := AuthMiddleware(tokenUseCase, s.logger)
	workspaceMW := WorkspaceMiddleware(workspaceUseCase, tokenUseCase, s.logger)

	v1 := router.Group("/v1")
	{
		v1.POST("/workspaces", workspaceHandler.CreateHandler)

		scoped := v1.Group("/workspaces/:workspace")
		scoped.Use(auth, workspaceMW)
		{
			scoped.POST("/tokens",
				requirePermission(tokenUseCase, authDomain.PermissionCreate, s.logger),
				tokenHandler.IssueHandler,
			)
			scoped.GET("/tokens",
				requirePermission(tokenUseCase, authDomain.PermissionList, s.logger),
				tokenHandler.ListHandler,
			)
			scoped.DELETE("/tokens/:id",
				requirePermission(tokenUseCase, authDomain.PermissionDelete, s.logger),
				tokenHandler.RevokeHandler,
			)

			scoped.PUT("/secrets/*key",
				requirePermission(tokenUseCase, authDomain.PermissionCreate, s.logger),
				secretHandler.PutHandler,
			)
			scoped.GET("/secrets/*key",
				requirePermission(tokenUseCase, authDomain.PermissionRead, s.logger),
				secretHandler.GetHandler,
			)
			scoped.DELETE("/secrets/*key",
				requirePermission(tokenUseCase, authDomain.PermissionDelete, s.logger),
				secretHandler.DeleteHandler,
			)
			scoped.GET("/secrets",
				requirePermission(tokenUseCase, authDomain.PermissionList, s.logger),
				secretHandler.ListHandler,
			)
			scoped.GET("/secret-versions/*key",
				requirePermission(tokenUseCase, authDomain.PermissionRead, s.logger),
				secretHandler.VersionsHandler,
			)

			scoped.POST("/keyring/rotate",
				requirePermission(tokenUseCase, authDomain.PermissionRotate, s.logger),
				keyringHandler.RotateHandler,
			)

			scoped.GET("/audit-logs",
				requirePermission(tokenUseCase, authDomain.PermissionList, s.logger),
				auditHandler.ListHandler,
			)
			scoped.GET("/audit-logs/:id/verify",
				requirePermission(tokenUseCase, authDomain.PermissionRead, s.logger),
				auditHandler.VerifyHandler,
			)
		}
	}

	s.server.Handler = router
}

// healthHandler reports liveness without checking any dependency.
func (s *Server) healthHandler(c *gin.Context) {
	v, _, _ := s.reqGroup.Do("health", func() (interface{}, error) {
		return gin.H{"status": "healthy"}, nil
	})
	c.JSON(http.StatusOK, v)
}

type readinessResponse struct {
	StatusCode int
	Body       gin.H
}

// readinessHandler reports whether the database is reachable.
func (s *Server) readinessHandler(c *gin.Context) {
	v, _, _ := s.reqGroup.Do("readiness", func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		dbStatus := "ok"
		httpStatus := http.StatusOK

		if s.db == nil {
			s.logger.Error("readiness check failed: database not initialized")
			dbStatus = "error"
			httpStatus = http.StatusServiceUnavailable
		} else if err := s.db.PingContext(ctx); err != nil {
			s.logger.Error("readiness check failed: database ping error", slog.Any("err", err))
			dbStatus = "error"
			httpStatus = http.StatusServiceUnavailable
		}

		return readinessResponse{
			StatusCode: httpStatus,
			Body: gin.H{
				"status":   "ready",
				"database": dbStatus,
			},
		}, nil
	})

	resp := v.(readinessResponse)
	c.JSON(resp.StatusCode, resp.Body)
}

// Start runs the HTTP server until it is shut down or fails.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start http server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

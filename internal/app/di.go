// Package app provides the dependency injection container for assembling
// application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	auditRepository "github.com/allisson/vaultkeep/internal/audit/repository"
	auditService "github.com/allisson/vaultkeep/internal/audit/service"
	auditUsecase "github.com/allisson/vaultkeep/internal/audit/usecase"
	authService "github.com/allisson/vaultkeep/internal/auth/service"
	authUsecase "github.com/allisson/vaultkeep/internal/auth/usecase"
	"github.com/allisson/vaultkeep/internal/config"
	cryptoDomain "github.com/allisson/vaultkeep/internal/crypto/domain"
	cryptoService "github.com/allisson/vaultkeep/internal/crypto/service"
	"github.com/allisson/vaultkeep/internal/database"
	keyringUsecase "github.com/allisson/vaultkeep/internal/keyring/usecase"
	"github.com/allisson/vaultkeep/internal/metrics"
	secretsUsecase "github.com/allisson/vaultkeep/internal/secrets/usecase"
	workspaceUsecase "github.com/allisson/vaultkeep/internal/workspace/usecase"
)

// Container holds all application dependencies and provides methods to
// access them. It follows a lazy initialization pattern: components are
// built on first access and cached for the lifetime of the process.
type Container struct {
	config *config.Config

	logger *slog.Logger
	db     *sql.DB

	txManager database.TxManager

	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	masterKeyChain *cryptoDomain.MasterKeyChain
	aeadManager    cryptoService.AEADManager
	keyManager     cryptoService.KeyManager
	kmsService     cryptoService.KMSService

	workspaceRepo     workspaceUsecase.WorkspaceRepository
	workspaceUseCase  workspaceUsecase.WorkspaceUseCase
	keyringRepo       keyringUsecase.KeyringRepository
	keyringManager    keyringUsecase.KeyringManager
	tokenService      authService.TokenService
	tokenRepo         authUsecase.TokenRepository
	tokenUseCase      authUsecase.TokenUseCase
	secretRepo        secretsUsecase.SecretRepository
	secretVersionRepo secretsUsecase.SecretVersionRepository
	secretUseCase     secretsUsecase.SecretUseCase

	auditSigner   auditService.Signer
	auditRepo     auditRepository.AuditRepository
	auditUseCase  auditUsecase.UseCase

	mu         sync.Mutex
	initErrors map[string]error

	loggerInit          sync.Once
	dbInit              sync.Once
	txManagerInit       sync.Once
	metricsProviderInit sync.Once
	businessMetricsInit sync.Once
	masterKeyChainInit  sync.Once
	aeadManagerInit     sync.Once
	keyManagerInit      sync.Once
	kmsServiceInit      sync.Once
	workspaceRepoInit   sync.Once
	workspaceUCInit     sync.Once
	keyringRepoInit     sync.Once
	keyringManagerInit  sync.Once
	tokenServiceInit    sync.Once
	tokenRepoInit       sync.Once
	tokenUseCaseInit    sync.Once
	secretRepoInit      sync.Once
	secretVerRepoInit   sync.Once
	secretUseCaseInit   sync.Once
	auditSignerInit     sync.Once
	auditRepoInit       sync.Once
	auditUseCaseInit    sync.Once
}

// NewContainer creates a new dependency injection container with the
// provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured structured logger, built on first access
// from the configuration's log level.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

func (c *Container) initLogger() *slog.Logger {
	var level slog.Level
	switch c.config.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// DB returns the shared database connection, connecting on first access.
func (c *Container) DB() (*sql.DB, error) {
	var err error
	c.dbInit.Do(func() {
		c.db, err = c.initDB()
		if err != nil {
			c.initErrors["db"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// TxManager returns the transaction manager.
func (c *Container) TxManager() (database.TxManager, error) {
	var err error
	c.txManagerInit.Do(func() {
		c.txManager, err = c.initTxManager()
		if err != nil {
			c.initErrors["txManager"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

func (c *Container) initTxManager() (database.TxManager, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}

// MetricsProvider returns the OpenTelemetry/Prometheus metrics provider.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		c.metricsProvider, err = metrics.NewProvider("vaultkeep")
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. When metrics are
// disabled in configuration, returns a no-op implementation so call sites
// never need to branch on whether metrics are enabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	if !c.config.MetricsEnabled {
		return metrics.NewNoOpBusinessMetrics(), nil
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
	}

	return metrics.NewBusinessMetrics(provider.MeterProvider(), "vaultkeep")
}

// Shutdown performs cleanup of every initialized resource, including
// draining the audit worker pool and closing the database connection.
// Should be called once when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.auditUseCase != nil {
		c.auditUseCase.Stop(ctx)
	}

	if c.masterKeyChain != nil {
		c.masterKeyChain.Close()
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}
	return nil
}

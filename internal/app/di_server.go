package app

import (
	"fmt"

	"github.com/allisson/vaultkeep/internal/httpapi"
	"github.com/allisson/vaultkeep/internal/metrics"
)

// HTTPServer assembles and returns the API server, wiring every handler to
// its use case via the container's lazily-built components.
func (c *Container) HTTPServer() (*httpapi.Server, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	masterKeyChain, err := c.MasterKeyChain()
	if err != nil {
		return nil, fmt.Errorf("failed to get master key chain for http server: %w", err)
	}

	var metricsProvider *metrics.Provider
	if c.config.MetricsEnabled {
		metricsProvider, err = c.MetricsProvider()
		if err != nil {
			return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
		}
	}

	workspaceUseCase, err := c.WorkspaceUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace use case for http server: %w", err)
	}
	tokenUseCase, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case for http server: %w", err)
	}
	secretUseCase, err := c.SecretUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret use case for http server: %w", err)
	}
	keyringManager, err := c.KeyringManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get keyring manager for http server: %w", err)
	}
	auditUseCase, err := c.AuditUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit use case for http server: %w", err)
	}

	server := httpapi.NewServer(db, c.config.ServerHost, c.config.ServerPort, c.Logger())

	workspaceHandler := httpapi.NewWorkspaceHandler(workspaceUseCase, c.Logger())
	tokenHandler := httpapi.NewTokenHandler(tokenUseCase, c.Logger())
	secretHandler := httpapi.NewSecretHandler(secretUseCase, c.Logger())
	keyringHandler := httpapi.NewKeyringHandler(keyringManager, masterKeyChain, c.Logger())
	auditHandler := httpapi.NewAuditHandler(auditUseCase, c.Logger())

	server.SetupRouter(
		c.config,
		workspaceHandler,
		tokenHandler,
		secretHandler,
		keyringHandler,
		auditHandler,
		tokenUseCase,
		workspaceUseCase,
		metricsProvider,
		c.config.MetricsNamespace,
	)

	return server, nil
}

// MetricsServer assembles and returns the standalone Prometheus scrape
// server. Returns a server that always answers 404 on /metrics when metrics
// are disabled in configuration, so callers never need to branch.
func (c *Container) MetricsServer() (*httpapi.MetricsServer, error) {
	var metricsProvider *metrics.Provider
	if c.config.MetricsEnabled {
		var err error
		metricsProvider, err = c.MetricsProvider()
		if err != nil {
			return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
		}
	}

	return httpapi.NewMetricsServer(c.config.MetricsHost, c.config.MetricsPort, c.Logger(), metricsProvider), nil
}

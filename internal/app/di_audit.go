package app

import (
	"context"
	"fmt"

	auditRepository "github.com/allisson/vaultkeep/internal/audit/repository"
	auditService "github.com/allisson/vaultkeep/internal/audit/service"
	auditUsecase "github.com/allisson/vaultkeep/internal/audit/usecase"
)

// AuditSigner returns the HMAC signer used to sign and verify audit records.
func (c *Container) AuditSigner() auditService.Signer {
	c.auditSignerInit.Do(func() {
		c.auditSigner = auditService.NewSigner()
	})
	return c.auditSigner
}

// AuditRepository returns the audit log repository.
func (c *Container) AuditRepository() (auditRepository.AuditRepository, error) {
	var err error
	c.auditRepoInit.Do(func() {
		c.auditRepo, err = c.initAuditRepository()
		if err != nil {
			c.initErrors["auditRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditRepo"]; exists {
		return nil, storedErr
	}
	return c.auditRepo, nil
}

func (c *Container) initAuditRepository() (auditRepository.AuditRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for audit repository: %w", err)
	}
	return auditRepository.NewPostgreSQLAuditRepository(db), nil
}

// AuditUseCase returns the audit use case, decorated with metrics. Its
// background worker pool is started by StartBackgroundWorkers, not here:
// building the use case must stay side-effect free so it can be safely
// requested by other components during their own construction.
func (c *Container) AuditUseCase() (auditUsecase.UseCase, error) {
	var err error
	c.auditUseCaseInit.Do(func() {
		c.auditUseCase, err = c.initAuditUseCase()
		if err != nil {
			c.initErrors["auditUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditUseCase"]; exists {
		return nil, storedErr
	}
	return c.auditUseCase, nil
}

func (c *Container) initAuditUseCase() (auditUsecase.UseCase, error) {
	repo, err := c.AuditRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit repository for audit use case: %w", err)
	}

	keyringManager, err := c.baseKeyringManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get keyring manager for audit use case: %w", err)
	}

	masterKeyChain, err := c.MasterKeyChain()
	if err != nil {
		return nil, fmt.Errorf("failed to get master key chain for audit use case: %w", err)
	}

	cfg := auditUsecase.Config{
		QueueSize:     c.config.AuditQueueSize,
		WorkerCount:   c.config.AuditWorkerCount,
		MaxRetries:    c.config.AuditMaxRetries,
		RetryInterval: c.config.AuditRetryInterval,
		Retention:     c.config.AuditRetentionPeriod,
	}

	baseUseCase := auditUsecase.NewUseCase(
		repo,
		c.AuditSigner(),
		keyringManager,
		masterKeyChain,
		c.Logger(),
		cfg,
	)

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for audit use case: %w", err)
	}

	return auditUsecase.NewUseCaseWithMetrics(baseUseCase, businessMetrics), nil
}

// StartBackgroundWorkers launches every long-running worker pool the
// container owns. Called once by cmd/vaultkeep's server command after the
// container is fully assembled.
func (c *Container) StartBackgroundWorkers(ctx context.Context) error {
	auditUseCase, err := c.AuditUseCase()
	if err != nil {
		return fmt.Errorf("failed to get audit use case to start workers: %w", err)
	}
	auditUseCase.Start(ctx)
	return nil
}

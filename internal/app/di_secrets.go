package app

import (
	"fmt"

	secretsRepository "github.com/allisson/vaultkeep/internal/secrets/repository"
	secretsUsecase "github.com/allisson/vaultkeep/internal/secrets/usecase"
)

// SecretRepository returns the secret metadata repository.
func (c *Container) SecretRepository() (secretsUsecase.SecretRepository, error) {
	var err error
	c.secretRepoInit.Do(func() {
		c.secretRepo, err = c.initSecretRepository()
		if err != nil {
			c.initErrors["secretRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secretRepo"]; exists {
		return nil, storedErr
	}
	return c.secretRepo, nil
}

func (c *Container) initSecretRepository() (secretsUsecase.SecretRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for secret repository: %w", err)
	}
	return secretsRepository.NewPostgreSQLSecretRepository(db), nil
}

// SecretVersionRepository returns the immutable secret version repository.
func (c *Container) SecretVersionRepository() (secretsUsecase.SecretVersionRepository, error) {
	var err error
	c.secretVerRepoInit.Do(func() {
		c.secretVersionRepo, err = c.initSecretVersionRepository()
		if err != nil {
			c.initErrors["secretVersionRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secretVersionRepo"]; exists {
		return nil, storedErr
	}
	return c.secretVersionRepo, nil
}

func (c *Container) initSecretVersionRepository() (secretsUsecase.SecretVersionRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for secret version repository: %w", err)
	}
	return secretsRepository.NewPostgreSQLSecretVersionRepository(db), nil
}

// SecretUseCase returns the secret use case, decorated with audit recording
// and metrics.
func (c *Container) SecretUseCase() (secretsUsecase.SecretUseCase, error) {
	var err error
	c.secretUseCaseInit.Do(func() {
		c.secretUseCase, err = c.initSecretUseCase()
		if err != nil {
			c.initErrors["secretUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secretUseCase"]; exists {
		return nil, storedErr
	}
	return c.secretUseCase, nil
}

func (c *Container) initSecretUseCase() (secretsUsecase.SecretUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for secret use case: %w", err)
	}

	secretRepo, err := c.SecretRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret repository for secret use case: %w", err)
	}

	versionRepo, err := c.SecretVersionRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret version repository for secret use case: %w", err)
	}

	keyringManager, err := c.KeyringManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get keyring manager for secret use case: %w", err)
	}

	masterKeyChain, err := c.MasterKeyChain()
	if err != nil {
		return nil, fmt.Errorf("failed to get master key chain for secret use case: %w", err)
	}

	baseUseCase := secretsUsecase.NewSecretUseCase(
		txManager,
		secretRepo,
		versionRepo,
		keyringManager,
		c.AEADManager(),
		masterKeyChain,
	)

	recorder, err := c.AuditUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit use case for secret use case: %w", err)
	}
	withAudit := secretsUsecase.NewSecretUseCaseWithAudit(baseUseCase, recorder)

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for secret use case: %w", err)
	}

	return secretsUsecase.NewSecretUseCaseWithMetrics(withAudit, businessMetrics), nil
}

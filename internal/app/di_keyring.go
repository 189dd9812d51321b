package app

import (
	"fmt"

	keyringRepository "github.com/allisson/vaultkeep/internal/keyring/repository"
	keyringUsecase "github.com/allisson/vaultkeep/internal/keyring/usecase"
)

// KeyringRepository returns the keyring entry repository.
func (c *Container) KeyringRepository() (keyringUsecase.KeyringRepository, error) {
	var err error
	c.keyringRepoInit.Do(func() {
		c.keyringRepo, err = c.initKeyringRepository()
		if err != nil {
			c.initErrors["keyringRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyringRepo"]; exists {
		return nil, storedErr
	}
	return c.keyringRepo, nil
}

func (c *Container) initKeyringRepository() (keyringUsecase.KeyringRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for keyring repository: %w", err)
	}
	return keyringRepository.NewPostgreSQLKeyringRepository(db), nil
}

// KeyringManager returns the keyring lifecycle manager, decorated with
// audit recording on Bootstrap and Rotate.
func (c *Container) KeyringManager() (keyringUsecase.KeyringManager, error) {
	var err error
	c.keyringManagerInit.Do(func() {
		c.keyringManager, err = c.initKeyringManager()
		if err != nil {
			c.initErrors["keyringManager"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyringManager"]; exists {
		return nil, storedErr
	}
	return c.keyringManager, nil
}

func (c *Container) initKeyringManager() (keyringUsecase.KeyringManager, error) {
	baseManager, err := c.baseKeyringManager()
	if err != nil {
		return nil, err
	}

	recorder, err := c.AuditUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit use case for keyring manager: %w", err)
	}

	return keyringUsecase.NewKeyringManagerWithAudit(baseManager, recorder), nil
}

// baseKeyringManager builds an undecorated KeyringManager. The audit use
// case needs a KeyringManager to resolve signing keys, and the public
// KeyringManager accessor wraps this same construction with audit
// recording; going through each other's public accessor would deadlock on
// their respective sync.Once guards.
func (c *Container) baseKeyringManager() (keyringUsecase.KeyringManager, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for keyring manager: %w", err)
	}

	repo, err := c.KeyringRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get keyring repository for keyring manager: %w", err)
	}

	return keyringUsecase.NewKeyringManager(txManager, repo, c.KeyManager()), nil
}

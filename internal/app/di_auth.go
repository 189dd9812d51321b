package app

import (
	"fmt"

	authRepository "github.com/allisson/vaultkeep/internal/auth/repository"
	authService "github.com/allisson/vaultkeep/internal/auth/service"
	authUsecase "github.com/allisson/vaultkeep/internal/auth/usecase"
)

// TokenService returns the bearer token generation/verification service.
func (c *Container) TokenService() authService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = authService.NewTokenService()
	})
	return c.tokenService
}

// TokenRepository returns the bearer token repository.
func (c *Container) TokenRepository() (authUsecase.TokenRepository, error) {
	var err error
	c.tokenRepoInit.Do(func() {
		c.tokenRepo, err = c.initTokenRepository()
		if err != nil {
			c.initErrors["tokenRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenRepo"]; exists {
		return nil, storedErr
	}
	return c.tokenRepo, nil
}

func (c *Container) initTokenRepository() (authUsecase.TokenRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for token repository: %w", err)
	}
	return authRepository.NewPostgreSQLTokenRepository(db), nil
}

// TokenUseCase returns the token use case, decorated with audit recording
// and metrics.
func (c *Container) TokenUseCase() (authUsecase.TokenUseCase, error) {
	var err error
	c.tokenUseCaseInit.Do(func() {
		c.tokenUseCase, err = c.initTokenUseCase()
		if err != nil {
			c.initErrors["tokenUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenUseCase"]; exists {
		return nil, storedErr
	}
	return c.tokenUseCase, nil
}

func (c *Container) initTokenUseCase() (authUsecase.TokenUseCase, error) {
	repo, err := c.TokenRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get token repository for token use case: %w", err)
	}

	baseUseCase := authUsecase.NewTokenUseCase(repo, c.TokenService(), c.Logger())

	recorder, err := c.AuditUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit use case for token use case: %w", err)
	}
	withAudit := authUsecase.NewTokenUseCaseWithAudit(baseUseCase, recorder)

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for token use case: %w", err)
	}

	return authUsecase.NewTokenUseCaseWithMetrics(withAudit, businessMetrics), nil
}

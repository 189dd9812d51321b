package app

import (
	"fmt"

	workspaceRepository "github.com/allisson/vaultkeep/internal/workspace/repository"
	workspaceUsecase "github.com/allisson/vaultkeep/internal/workspace/usecase"
)

// WorkspaceRepository returns the workspace repository.
func (c *Container) WorkspaceRepository() (workspaceUsecase.WorkspaceRepository, error) {
	var err error
	c.workspaceRepoInit.Do(func() {
		c.workspaceRepo, err = c.initWorkspaceRepository()
		if err != nil {
			c.initErrors["workspaceRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["workspaceRepo"]; exists {
		return nil, storedErr
	}
	return c.workspaceRepo, nil
}

func (c *Container) initWorkspaceRepository() (workspaceUsecase.WorkspaceRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for workspace repository: %w", err)
	}
	return workspaceRepository.NewPostgreSQLWorkspaceRepository(db), nil
}

// WorkspaceUseCase returns the workspace use case.
func (c *Container) WorkspaceUseCase() (workspaceUsecase.WorkspaceUseCase, error) {
	var err error
	c.workspaceUCInit.Do(func() {
		c.workspaceUseCase, err = c.initWorkspaceUseCase()
		if err != nil {
			c.initErrors["workspaceUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["workspaceUseCase"]; exists {
		return nil, storedErr
	}
	return c.workspaceUseCase, nil
}

func (c *Container) initWorkspaceUseCase() (workspaceUsecase.WorkspaceUseCase, error) {
	repo, err := c.WorkspaceRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace repository for workspace use case: %w", err)
	}
	return workspaceUsecase.NewWorkspaceUseCase(repo), nil
}

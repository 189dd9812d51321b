package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/vaultkeep/cmd/vaultkeep/commands"
	"github.com/allisson/vaultkeep/internal/app"
	"github.com/allisson/vaultkeep/internal/config"
)

func getWorkspaceCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-workspace",
			Usage: "Create a new workspace",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "slug",
					Usage:    "Workspace slug (unique, used in API paths)",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "name",
					Usage:    "Workspace display name",
					Required: true,
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				workspaceUseCase, err := container.WorkspaceUseCase()
				if err != nil {
					return fmt.Errorf("failed to get workspace use case: %w", err)
				}

				return commands.RunCreateWorkspace(
					ctx,
					workspaceUseCase,
					container.Logger(),
					os.Stdout,
					cmd.String("slug"),
					cmd.String("name"),
				)
			},
		},
		{
			Name:  "rotate-keyring",
			Usage: "Create a new active keyring entry for a workspace",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "workspace",
					Usage:    "Workspace slug",
					Required: true,
				},
				&cli.StringFlag{
					Name:  "algorithm",
					Usage: "Encryption algorithm (aes-gcm, chacha20-poly1305)",
					Value: "aes-gcm",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				workspaceUseCase, err := container.WorkspaceUseCase()
				if err != nil {
					return fmt.Errorf("failed to get workspace use case: %w", err)
				}
				keyringManager, err := container.KeyringManager()
				if err != nil {
					return fmt.Errorf("failed to get keyring manager: %w", err)
				}
				masterKeyChain, err := container.MasterKeyChain()
				if err != nil {
					return fmt.Errorf("failed to get master key chain: %w", err)
				}

				return commands.RunRotateKeyring(
					ctx,
					workspaceUseCase,
					keyringManager,
					masterKeyChain,
					container.Logger(),
					cmd.String("workspace"),
					cmd.String("algorithm"),
				)
			},
		},
	}
}

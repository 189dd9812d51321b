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

func getAuthCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "issue-token",
			Usage: "Issue a new bearer token for a workspace",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "workspace",
					Usage:    "Workspace slug",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "name",
					Usage:    "Token name (unique within the workspace)",
					Required: true,
				},
				&cli.StringFlag{
					Name:  "role",
					Usage: "Token role (admin, write, read)",
					Value: "read",
				},
				&cli.IntFlag{
					Name:  "expires-in-seconds",
					Usage: "Token lifetime in seconds (0 means it never expires)",
					Value: 0,
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
				tokenUseCase, err := container.TokenUseCase()
				if err != nil {
					return fmt.Errorf("failed to get token use case: %w", err)
				}

				return commands.RunIssueToken(
					ctx,
					workspaceUseCase,
					tokenUseCase,
					container.Logger(),
					os.Stdout,
					cmd.String("workspace"),
					cmd.String("name"),
					cmd.String("role"),
					int(cmd.Int("expires-in-seconds")),
				)
			},
		},
	}
}

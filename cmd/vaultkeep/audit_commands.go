package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/allisson/vaultkeep/cmd/vaultkeep/commands"
	"github.com/allisson/vaultkeep/internal/app"
	"github.com/allisson/vaultkeep/internal/config"
)

func getAuditCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "purge-audit-logs",
			Usage: "Delete audit log entries older than a given age",
			Flags: []cli.Flag{
				&cli.DurationFlag{
					Name:     "older-than",
					Usage:    "Age threshold, e.g. 8760h (1 year)",
					Required: true,
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				auditUseCase, err := container.AuditUseCase()
				if err != nil {
					return fmt.Errorf("failed to get audit use case: %w", err)
				}

				olderThan := cmd.Duration("older-than")
				if olderThan <= 0 {
					return fmt.Errorf("--older-than must be a positive duration")
				}

				return commands.RunPurgeAuditLogs(
					ctx,
					auditUseCase,
					container.Logger(),
					os.Stdout,
					time.Duration(olderThan),
				)
			},
		},
	}
}

/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/recipes-api/pkg/api"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the recipes HTTP API server",
		Description: `Runs the API server until interrupted. The port is read from PORT
(default 8080); see the api package for the full environment.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return api.ServeWithConfig(ctx, cfg)
		},
	}
}

func migrateCmd() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Create or update the database schema and seed default settings",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withApp(cmd, func(app *api.App) error {
				if err := app.Store.Migrate(ctx); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.Root().Writer, "database %s is up to date\n", app.Store.Path())
				return err
			})
		},
	}
}

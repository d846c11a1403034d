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
	"github.com/NVIDIA/recipes-api/pkg/settings"
)

func configCmd() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Read and change runtime settings",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List every setting",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withApp(cmd, func(app *api.App) error {
						list, err := app.Settings.All(ctx)
						if err != nil {
							return err
						}
						return write(ctx, cmd, list)
					})
				},
			},
			{
				Name:      "get",
				Usage:     "Print the value of a setting",
				ArgsUsage: "<key>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.NArg() != 1 {
						return fmt.Errorf("get takes exactly one key, got %d arguments", cmd.NArg())
					}
					key := cmd.Args().First()
					return withApp(cmd, func(app *api.App) error {
						value, ok, err := app.Settings.Get(ctx, key)
						if err != nil {
							return err
						}
						if !ok {
							return fmt.Errorf("unknown config key %q", key)
						}
						return write(ctx, cmd, settings.KeyValue{Key: key, Value: value})
					})
				},
			},
			{
				Name:      "set",
				Usage:     "Create or change a setting",
				ArgsUsage: "<key> <value>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "type",
						Value: settings.TypeApp,
						Usage: "Setting type used when the key is created",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.NArg() != 2 {
						return fmt.Errorf("set takes a key and a value, got %d arguments", cmd.NArg())
					}
					s := settings.Setting{
						Key:   cmd.Args().Get(0),
						Value: cmd.Args().Get(1),
						Type:  cmd.String("type"),
					}
					return withApp(cmd, func(app *api.App) error {
						if err := app.Settings.Save(ctx, []settings.Setting{s}); err != nil {
							return err
						}
						return write(ctx, cmd, settings.KeyValue{Key: s.Key, Value: s.Value})
					})
				},
			},
		},
	}
}

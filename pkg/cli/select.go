/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/recipes-api/pkg/api"
	"github.com/NVIDIA/recipes-api/pkg/selector"
)

func selectCmd() *cli.Command {
	return &cli.Command{
		Name:  "select",
		Usage: "Pick random recipes without repeating within a cycle",
		Description: `Runs the recipe selector. Unless --frontend is set the picks are mailed
when the send-recipe-selector-email setting is enabled.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "frontend",
				Usage: "Only display the picks, never send email",
			},
			&cli.IntFlag{
				Name:  "count",
				Usage: "Number of picks (default: the send-recipe-selector-counter setting)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withApp(cmd, func(app *api.App) error {
				res, err := app.Selector.Run(ctx, selector.Request{
					Frontend: cmd.Bool("frontend"),
					Count:    cmd.Int("count"),
				})
				if err != nil {
					return err
				}
				return write(ctx, cmd, res)
			})
		},
	}
}

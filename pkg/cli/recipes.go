/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/recipes-api/pkg/api"
	"github.com/NVIDIA/recipes-api/pkg/header"
	"github.com/NVIDIA/recipes-api/pkg/recipe"
	"github.com/NVIDIA/recipes-api/pkg/serializer"
)

// RecipeExport is the document written by export and read by import.
type RecipeExport struct {
	header.Header `json:",inline" yaml:",inline"`

	Recipes []recipe.Document `json:"recipes" yaml:"recipes"`
}

func filterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "filter",
			Usage: fmt.Sprintf("Field to filter on (supported values: %v)", recipe.QueryableFields()),
		},
		&cli.StringFlag{
			Name:  "value",
			Usage: "Value the filter field must equal",
		},
		&cli.IntFlag{
			Name:  "page",
			Value: 1,
			Usage: "Page number, starting at 1",
		},
	}
}

// filterFromCmd returns the optional --filter/--value constraint.
func filterFromCmd(cmd *cli.Command) (*recipe.Filter, error) {
	field := cmd.String("filter")
	if field == "" {
		return nil, nil
	}
	return recipe.ParseFilter(field, cmd.String("value"))
}

func listCmd() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List recipes one page at a time",
		Flags: filterFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			filter, err := filterFromCmd(cmd)
			if err != nil {
				return err
			}
			return withApp(cmd, func(app *api.App) error {
				page, err := app.Recipes.List(ctx, filter, cmd.Int("page"))
				if err != nil {
					return err
				}
				return write(ctx, cmd, page)
			})
		},
	}
}

func searchCmd() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search recipes by name",
		ArgsUsage: "<keyword>",
		Flags:     filterFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("search takes exactly one keyword, got %d arguments", cmd.NArg())
			}
			filter, err := filterFromCmd(cmd)
			if err != nil {
				return err
			}
			return withApp(cmd, func(app *api.App) error {
				page, err := app.Recipes.Search(ctx, cmd.Args().First(), filter, cmd.Int("page"))
				if err != nil {
					return err
				}
				return write(ctx, cmd, page)
			})
		},
	}
}

func exportCmd() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write every recipe to a RecipeExport document",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withApp(cmd, func(app *api.App) error {
				docs, err := app.Recipes.All(ctx)
				if err != nil {
					return err
				}
				doc := RecipeExport{
					Header:  *header.New(header.KindRecipeExport, version, header.WithMetadata(header.MetadataCount, strconv.Itoa(len(docs)))),
					Recipes: docs,
				}
				return write(ctx, cmd, doc)
			})
		},
	}
}

func importCmd() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Insert the recipes of a RecipeExport document",
		Description: `Reads a document written by export from a local file or an http(s) URL.
Every recipe is inserted as a new record; ids in the document are ignored.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "Path or URL of the export document (.json, .yaml)",
				Required: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.String("file")
			doc, err := serializer.FromFile[RecipeExport](ctx, path)
			if err != nil {
				return err
			}
			if err := doc.Check(header.KindRecipeExport); err != nil {
				return fmt.Errorf("invalid document %s: %w", path, err)
			}

			return withApp(cmd, func(app *api.App) error {
				for i, d := range doc.Recipes {
					r := recipe.FromDocument(d)
					r.ID = 0
					if err := app.Store.CreateRecipe(ctx, &r); err != nil {
						return fmt.Errorf("import recipe %d (%s): %w", i, d.Name, err)
					}
				}
				slog.Info("recipes imported", "count", len(doc.Recipes), "file", path)
				_, err := fmt.Fprintf(cmd.Root().Writer, "imported %d recipes\n", len(doc.Recipes))
				return err
			})
		},
	}
}

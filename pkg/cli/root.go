/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/recipes-api/pkg/api"
	"github.com/NVIDIA/recipes-api/pkg/logging"
	"github.com/NVIDIA/recipes-api/pkg/serializer"
)

const (
	name           = "recipes"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:    name,
		Usage:   "Manage the recipes database",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Description: `recipes manages the recipe database behind the recipesd API:

serve   - runs the HTTP API server.
select  - picks random main dishes without repeating within a cycle.
search  - finds recipes by name.
export  - writes every recipe to a RecipeExport document.`,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "db",
				Usage:   "Path to the SQLite database file",
				Sources: cli.EnvVars(api.EnvDBPath),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars(logging.EnvLogLevel),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default: stdout)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"t"},
				Value:   string(serializer.FormatYAML),
				Usage:   fmt.Sprintf("Output format (supported values: %v)", serializer.SupportedFormats()),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			slog.Debug("starting",
				"name", name,
				"version", version,
				"commit", commit,
				"date", date)
			return ctx, nil
		},
		Commands: []*cli.Command{
			serveCmd(),
			migrateCmd(),
			selectCmd(),
			searchCmd(),
			listCmd(),
			configCmd(),
			exportCmd(),
			importCmd(),
		},
	}
}

// Execute runs the root command with the process arguments and exits
// non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// loadConfig returns the application config with the --db override applied.
func loadConfig(cmd *cli.Command) (*api.Config, error) {
	cfg, err := api.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if db := cmd.String("db"); db != "" {
		cfg.DB.Path = db
	}
	return cfg, nil
}

// withApp opens the application for the duration of fn.
func withApp(cmd *cli.Command, fn func(app *api.App) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	app, err := api.NewApp(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			slog.Warn("failed to close store", "error", err)
		}
	}()
	return fn(app)
}

func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q", f)
	}
	return f, nil
}

// write serializes v to --output, or to the command writer when unset.
func write(ctx context.Context, cmd *cli.Command, v any) error {
	format, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	ser := serializer.NewWriter(format, cmd.Root().Writer)
	if path := cmd.String("output"); path != "" {
		if ser, err = serializer.NewFileWriter(format, path); err != nil {
			return err
		}
	}
	defer func() {
		if err := ser.Close(); err != nil {
			slog.Warn("failed to close serializer", "error", err)
		}
	}()

	return ser.Serialize(ctx, v)
}

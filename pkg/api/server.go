package api

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/NVIDIA/recipes-api/pkg/logging"
	"github.com/NVIDIA/recipes-api/pkg/server"
)

const (
	name           = "recipesd"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/recipes-api/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve loads the configuration from the environment, starts the API
// server and blocks until shutdown.
func Serve() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.SetDefaultStructuredLogger(name, version)

	cfg, err := LoadConfig()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		return err
	}
	return ServeWithConfig(ctx, cfg)
}

// ServeWithConfig starts the API server with cfg and blocks until ctx is
// done or the server fails.
func ServeWithConfig(ctx context.Context, cfg *Config) error {
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"db", cfg.DB.Path,
	)

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			slog.Warn("failed to close store", "error", err)
		}
	}()

	if lvl := strings.ToLower(cfg.PersistLogLevel); lvl != "" && lvl != "off" {
		base := slog.Default()
		slog.SetDefault(slog.New(logging.NewPersistentHandler(base.Handler(), app.Store, logging.ParseLogLevel(lvl))))
		defer slog.SetDefault(base)
	}

	s := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(app.Routes()),
		server.WithRateLimitGate(app.Settings.RateLimitEnabled),
		server.WithReadinessCheck(app.Store.Ping),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

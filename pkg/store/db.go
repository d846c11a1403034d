// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package store persists recipes, selection history, settings, media and
// log entries in SQLite through GORM.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/NVIDIA/recipes-api/pkg/defaults"
	recerrors "github.com/NVIDIA/recipes-api/pkg/errors"
	"github.com/NVIDIA/recipes-api/pkg/media"
	"github.com/NVIDIA/recipes-api/pkg/recipe"
	"github.com/NVIDIA/recipes-api/pkg/selector"
	"github.com/NVIDIA/recipes-api/pkg/settings"
)

// DB wraps the GORM connection with the recipe store operations.
type DB struct {
	*gorm.DB
	path string
}

// Config holds database configuration options.
type Config struct {
	Path        string
	Debug       bool
	MaxIdleConn int
	MaxOpenConn int
}

// DefaultConfig returns a single-connection configuration for path.
func DefaultConfig(path string) Config {
	return Config{
		Path:        path,
		MaxIdleConn: 1,
		MaxOpenConn: 1,
	}
}

// New opens the database at cfg.Path, migrates the schema and seeds the
// default settings.
func New(cfg Config) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}

	// DELETE journal mode; WAL has visibility issues with the pure-Go driver
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(DELETE)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)", cfg.Path)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logLevel),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConn)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConn)
	sqlDB.SetConnMaxLifetime(time.Hour)

	wrapped := &DB{DB: db, path: cfg.Path}

	ctx, cancel := context.WithTimeout(context.Background(), defaults.StoreMigrationTimeout)
	defer cancel()

	if err := wrapped.migrate(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := wrapped.seedSettings(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("seed settings: %w", err)
	}

	return wrapped, nil
}

func (db *DB) migrate(ctx context.Context) error {
	return db.WithContext(ctx).AutoMigrate(
		&recipe.Recipe{},
		&recipe.Tag{},
		&selector.Selection{},
		&settings.Setting{},
		&media.Media{},
		&LogEntry{},
	)
}

// seedSettings inserts the default settings that are not present yet.
func (db *DB) seedSettings(ctx context.Context) error {
	for _, s := range settings.Defaults() {
		if err := db.WithContext(ctx).Where("key = ?", s.Key).FirstOrCreate(&s).Error; err != nil {
			return fmt.Errorf("seed %s: %w", s.Key, err)
		}
	}
	return nil
}

// Migrate re-runs schema migration and settings seeding.
func (db *DB) Migrate(ctx context.Context) error {
	if err := db.migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return db.seedSettings(ctx)
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// Close closes the underlying connection pool.
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Transaction runs fc inside a database transaction.
func (db *DB) Transaction(fc func(tx *DB) error) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		return fc(&DB{DB: tx, path: db.path})
	})
}

// Ping reports whether the database answers queries.
func (db *DB) Ping(ctx context.Context) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func internal(op string, err error) error {
	return recerrors.WrapWithContext(recerrors.ErrCodeInternal, "Database operation failed", err,
		map[string]any{"operation": op})
}

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

package api

import (
	"context"
	"fmt"
	"maps"
	"net/http"

	"github.com/NVIDIA/recipes-api/pkg/mail"
	"github.com/NVIDIA/recipes-api/pkg/media"
	"github.com/NVIDIA/recipes-api/pkg/recipe"
	"github.com/NVIDIA/recipes-api/pkg/selector"
	"github.com/NVIDIA/recipes-api/pkg/settings"
	"github.com/NVIDIA/recipes-api/pkg/store"
)

// App holds the wired application components.
type App struct {
	Store    *store.DB
	Settings *settings.Cache
	Recipes  *recipe.Service
	Selector *selector.Selector

	recipeHandler   *recipe.Handler
	settingsHandler *settings.Handler
	mediaHandler    *media.Handler
}

// NewApp opens the store and wires every component on top of it.
func NewApp(cfg *Config) (*App, error) {
	dbCfg := store.DefaultConfig(cfg.DB.Path)
	dbCfg.Debug = cfg.DB.Debug

	db, err := store.New(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	cache := settings.NewCache(db)
	mediaHandler := media.NewHandler(db, db, cache, cfg.MediaDir)
	svc := recipe.NewService(db, recipe.WithImages(mediaHandler.Resolver()))

	selOpts := []selector.Option{
		selector.WithSettings(cache),
		selector.WithMailer(newMailer(cfg.SMTP)),
	}
	if cfg.Selector.Category != "" {
		selOpts = append(selOpts, selector.WithCategory(cfg.Selector.Category))
	}
	if cfg.Selector.MaxCollisions > 0 {
		selOpts = append(selOpts, selector.WithMaxCollisions(cfg.Selector.MaxCollisions))
	}

	return &App{
		Store:    db,
		Settings: cache,
		Recipes:  svc,
		Selector: selector.New(db, db, selOpts...),
		recipeHandler: recipe.NewHandler(svc, recipe.WithAPIVersion(func(ctx context.Context) string {
			return cache.String(ctx, settings.KeyAPIVersion, recipe.DefaultAPIVersion)
		})),
		settingsHandler: settings.NewHandler(cache),
		mediaHandler:    mediaHandler,
	}, nil
}

func newMailer(cfg SMTPConfig) mail.Sender {
	if cfg.Addr == "" {
		return mail.LogSender{}
	}
	return mail.NewSMTPSender(cfg.Addr, cfg.Username, cfg.Password)
}

// Routes returns every application route keyed by ServeMux pattern.
func (a *App) Routes() map[string]http.HandlerFunc {
	routes := make(map[string]http.HandlerFunc)
	maps.Copy(routes, a.recipeHandler.Routes())
	maps.Copy(routes, a.settingsHandler.Routes())
	maps.Copy(routes, a.mediaHandler.Routes())
	maps.Copy(routes, a.Selector.Routes())
	return routes
}

// Close releases the store.
func (a *App) Close() error {
	return a.Store.Close()
}

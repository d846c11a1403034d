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

// Package media stores recipe images and resolves their public URLs.
package media

import (
	"context"
	"time"

	"github.com/NVIDIA/recipes-api/pkg/recipe"
)

// ForeignTableRecipes is the owner table of recipe images.
const ForeignTableRecipes = "recipes"

// Media is an uploaded file attached to a record.
type Media struct {
	ID             uint      `gorm:"primaryKey" json:"id" yaml:"id"`
	Name           string    `gorm:"size:100;not null" json:"name" yaml:"name"`
	Path           string    `gorm:"size:255;not null" json:"path" yaml:"path"`
	Type           string    `gorm:"size:50;not null" json:"type" yaml:"type"`
	Size           int64     `gorm:"not null" json:"size" yaml:"size"`
	ForeignID      uint      `gorm:"not null;uniqueIndex:idx_media_owner" json:"foreignId" yaml:"foreignId"`
	ForeignTable   string    `gorm:"size:30;not null;uniqueIndex:idx_media_owner" json:"foreignTable" yaml:"foreignTable"`
	ImageWidth     *int      `json:"imageWidth,omitempty" yaml:"imageWidth,omitempty"`
	ImageHeight    *int      `json:"imageHeight,omitempty" yaml:"imageHeight,omitempty"`
	InsertDateTime time.Time `gorm:"autoCreateTime" json:"insertDateTime" yaml:"insertDateTime"`
}

func (Media) TableName() string { return "recipe_media" }

// Store persists media rows. A record owns at most one media row.
type Store interface {
	// MediaFor returns the media rows owned by the given recipe ids.
	MediaFor(ctx context.Context, foreignTable string, ids []uint) ([]Media, error)
	// UpsertMedia creates or replaces the row owned by m's foreign key and
	// returns the replaced row, if any.
	UpsertMedia(ctx context.Context, m *Media) (*Media, error)
}

// Recipes looks up the recipe an upload belongs to.
type Recipes interface {
	GetRecipe(ctx context.Context, id uint) (*recipe.Recipe, error)
}

// Settings reads the upload limits and the public URL prefix.
type Settings interface {
	String(ctx context.Context, key, def string) string
	Float(ctx context.Context, key string, def float64) float64
	List(ctx context.Context, key string, def []string) []string
}

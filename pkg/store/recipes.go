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

package store

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	recerrors "github.com/NVIDIA/recipes-api/pkg/errors"
	"github.com/NVIDIA/recipes-api/pkg/recipe"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (db *DB) recipes(ctx context.Context, c recipe.Criteria) *gorm.DB {
	q := db.WithContext(ctx).Model(&recipe.Recipe{})
	if f := c.Filter; f != nil && f.Column != "" {
		q = q.Where(clause.Eq{Column: clause.Column{Name: f.Column}, Value: f.Value})
	}
	if c.NameContains != "" {
		q = q.Where(`name LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(c.NameContains)+"%")
	}
	if c.NameEquals != "" {
		q = q.Where("LOWER(name) = LOWER(?)", c.NameEquals)
	}
	return q
}

// FindRecipes returns the recipes matching c ordered by id. A non-positive
// limit returns every match from offset.
func (db *DB) FindRecipes(ctx context.Context, c recipe.Criteria, offset, limit int) ([]recipe.Recipe, error) {
	q := db.recipes(ctx, c).Preload("Tags").Order("id ASC")
	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var out []recipe.Recipe
	if err := q.Find(&out).Error; err != nil {
		return nil, internal("find recipes", err)
	}
	return out, nil
}

// CountRecipes counts the recipes matching c.
func (db *DB) CountRecipes(ctx context.Context, c recipe.Criteria) (int64, error) {
	var n int64
	if err := db.recipes(ctx, c).Count(&n).Error; err != nil {
		return 0, internal("count recipes", err)
	}
	return n, nil
}

// GetRecipe returns the recipe with id and its tags.
func (db *DB) GetRecipe(ctx context.Context, id uint) (*recipe.Recipe, error) {
	var r recipe.Recipe
	err := db.WithContext(ctx).Preload("Tags").First(&r, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, recerrors.NewWithContext(recerrors.ErrCodeNotFound, recipe.MsgNoRecord, map[string]any{"id": id})
		}
		return nil, internal("get recipe", err)
	}
	return &r, nil
}

// CreateRecipe inserts r together with its tags.
func (db *DB) CreateRecipe(ctx context.Context, r *recipe.Recipe) error {
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		return internal("create recipe", err)
	}
	return nil
}

// SaveRecipe writes every column of r. Tags are left untouched.
func (db *DB) SaveRecipe(ctx context.Context, r *recipe.Recipe) error {
	if err := db.WithContext(ctx).Omit(clause.Associations).Save(r).Error; err != nil {
		return internal("save recipe", err)
	}
	return nil
}

// DeleteRecipe removes the recipe with id and its tags.
func (db *DB) DeleteRecipe(ctx context.Context, id uint) (bool, error) {
	var deleted bool
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&recipe.Tag{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&recipe.Recipe{}, id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, internal("delete recipe", err)
	}
	return deleted, nil
}

// AddTags attaches tags to the recipe with recipeID.
func (db *DB) AddTags(ctx context.Context, recipeID uint, tags []recipe.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	rows := make([]recipe.Tag, len(tags))
	for i, t := range tags {
		t.ID = 0
		t.RecipeID = recipeID
		rows[i] = t
	}
	if err := db.WithContext(ctx).Create(&rows).Error; err != nil {
		return internal("add tags", err)
	}
	return nil
}

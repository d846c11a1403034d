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

	"github.com/NVIDIA/recipes-api/pkg/selector"
)

// SelectedRecipeIDs returns the recipe ids picked in the current cycle.
func (db *DB) SelectedRecipeIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	if err := db.WithContext(ctx).Model(&selector.Selection{}).Order("id ASC").Pluck("recipe_id", &ids).Error; err != nil {
		return nil, internal("list selections", err)
	}
	return ids, nil
}

// AddSelection records a pick.
func (db *DB) AddSelection(ctx context.Context, s *selector.Selection) error {
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		return internal("add selection", err)
	}
	return nil
}

// ClearSelections deletes the whole selection history.
func (db *DB) ClearSelections(ctx context.Context) error {
	if err := db.WithContext(ctx).Where("1 = 1").Delete(&selector.Selection{}).Error; err != nil {
		return internal("clear selections", err)
	}
	return nil
}

// Selections returns the history rows, oldest first.
func (db *DB) Selections(ctx context.Context) ([]selector.Selection, error) {
	var out []selector.Selection
	if err := db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, internal("list selections", err)
	}
	return out, nil
}

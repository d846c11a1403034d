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

package recipe

import "context"

// Store persists recipes. Lookups of a missing id return an error with
// code errors.ErrCodeNotFound; write failures return errors.ErrCodeInternal.
type Store interface {
	// FindRecipes returns matching recipes ordered by id ascending. A
	// non-positive limit returns every match from offset.
	FindRecipes(ctx context.Context, c Criteria, offset, limit int) ([]Recipe, error)
	CountRecipes(ctx context.Context, c Criteria) (int64, error)
	GetRecipe(ctx context.Context, id uint) (*Recipe, error)
	CreateRecipe(ctx context.Context, r *Recipe) error
	SaveRecipe(ctx context.Context, r *Recipe) error
	// DeleteRecipe reports whether a recipe was deleted.
	DeleteRecipe(ctx context.Context, id uint) (bool, error)
	AddTags(ctx context.Context, recipeID uint, tags []Tag) error
}

// ImageResolver maps recipe ids to the public URL of their image. Recipes
// without an image are absent from the result.
type ImageResolver interface {
	ImageURLs(ctx context.Context, ids []uint) (map[uint]string, error)
}

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

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	recerrors "github.com/NVIDIA/recipes-api/pkg/errors"
)

// MsgNoRecord is returned when a recipe lookup finds nothing.
const MsgNoRecord = "No record found."

// Service implements the recipe operations behind the HTTP handlers and
// the CLI.
type Service struct {
	store      Store
	engine     *Engine
	images     ImageResolver
	categories Categories
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithImages resolves image URLs for returned documents.
func WithImages(r ImageResolver) ServiceOption {
	return func(s *Service) {
		s.images = r
	}
}

// WithCategories replaces the default category set.
func WithCategories(c Categories) ServiceOption {
	return func(s *Service) {
		s.categories = c
	}
}

// WithEngine replaces the default query engine.
func WithEngine(e *Engine) ServiceOption {
	return func(s *Service) {
		if e != nil {
			s.engine = e
		}
	}
}

// NewService returns a Service backed by store.
func NewService(store Store, opts ...ServiceOption) *Service {
	s := &Service{
		store:      store,
		engine:     NewEngine(store),
		categories: DefaultCategories(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Engine returns the query engine used by the service.
func (s *Service) Engine() *Engine {
	return s.engine
}

// Categories returns the accepted category names.
func (s *Service) Categories() []string {
	return s.categories.Names()
}

// All returns every recipe ordered by id.
func (s *Service) All(ctx context.Context) ([]Document, error) {
	recipes, err := s.store.FindRecipes(ctx, Criteria{}, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("find all recipes: %w", err)
	}
	return s.documents(ctx, recipes), nil
}

// ByName returns the recipes whose name equals name, ignoring case.
func (s *Service) ByName(ctx context.Context, name string) ([]Document, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, recerrors.New(recerrors.ErrCodeInvalidRequest, "Recipe name must not be empty")
	}
	recipes, err := s.store.FindRecipes(ctx, Criteria{NameEquals: name}, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("find recipes by name: %w", err)
	}
	return s.documents(ctx, recipes), nil
}

// List returns a page of recipes matching the optional filter.
func (s *Service) List(ctx context.Context, filter *Filter, page int) (*Page[Document], error) {
	res, err := s.engine.Paginate(ctx, Criteria{Filter: filter}, page)
	if err != nil {
		return nil, err
	}
	return s.page(ctx, res), nil
}

// Search returns a page of recipes whose name contains keyword.
func (s *Service) Search(ctx context.Context, keyword string, filter *Filter, page int) (*Page[Document], error) {
	res, err := s.engine.Search(ctx, keyword, filter, page)
	if err != nil {
		return nil, err
	}
	return s.page(ctx, res), nil
}

// Get returns one recipe.
func (s *Service) Get(ctx context.Context, id uint) (*Document, error) {
	r, err := s.store.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	docs := s.documents(ctx, []Recipe{*r})
	return &docs[0], nil
}

// Create inserts a recipe, or updates the existing one when the input
// carries an id.
func (s *Service) Create(ctx context.Context, in Input) (*Document, error) {
	id, hasID, err := in.RecipeID()
	if err != nil {
		return nil, recerrors.Wrap(recerrors.ErrCodeInvalidRequest, MsgSchemaValidation, err)
	}
	if hasID {
		return s.upsert(ctx, id, in)
	}

	in = NormalizeInput(in)
	if err := ValidationError(ValidateCreate(in, s.categories)); err != nil {
		slog.Warn("recipe create rejected", "error", err)
		return nil, err
	}

	r := newRecipe(in)
	if err := s.store.CreateRecipe(ctx, &r); err != nil {
		return nil, err
	}
	recipeWrites.WithLabelValues("create").Inc()
	slog.Info("recipe created", "id", r.ID, "name", r.Name, "tags", len(r.Tags))

	return s.Get(ctx, r.ID)
}

// upsert applies a create request that names an existing recipe. Missing
// directions and ingredients are taken from the stored recipe.
func (s *Service) upsert(ctx context.Context, id uint, in Input) (*Document, error) {
	existing, err := s.store.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	in = NormalizeInput(in)
	if in.Directions == nil || *in.Directions == "" {
		d := List(existing.Directions)
		in.Directions = &d
	}
	if in.Ingredients == nil || *in.Ingredients == "" {
		i := List(existing.Ingredients)
		in.Ingredients = &i
	}

	if err := ValidationError(ValidatePatch(in, s.categories)); err != nil {
		slog.Warn("recipe upsert rejected", "id", id, "error", err)
		return nil, err
	}

	applyInput(existing, in)
	if err := s.store.SaveRecipe(ctx, existing); err != nil {
		return nil, err
	}
	if len(in.Tags) > 0 {
		if err := s.store.AddTags(ctx, id, tagsFromInput(in.Tags)); err != nil {
			return nil, err
		}
	}
	recipeWrites.WithLabelValues("upsert").Inc()
	slog.Info("recipe updated", "id", id)

	return s.Get(ctx, id)
}

// Update applies a partial update to an existing recipe.
func (s *Service) Update(ctx context.Context, id uint, in Input) (*Document, error) {
	in = NormalizeInput(in)
	if err := ValidationError(ValidateUpdate(in, s.categories)); err != nil {
		slog.Warn("recipe update rejected", "id", id, "error", err)
		return nil, err
	}

	existing, err := s.store.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	applyInput(existing, in)
	if err := s.store.SaveRecipe(ctx, existing); err != nil {
		return nil, err
	}
	recipeWrites.WithLabelValues("update").Inc()
	slog.Info("recipe updated", "id", id)

	return s.Get(ctx, id)
}

// Delete removes a recipe.
func (s *Service) Delete(ctx context.Context, id uint) error {
	deleted, err := s.store.DeleteRecipe(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return recerrors.NewWithContext(recerrors.ErrCodeNotFound, MsgNoRecord, map[string]any{"id": id})
	}
	recipeWrites.WithLabelValues("delete").Inc()
	slog.Info("recipe deleted", "id", id)
	return nil
}

// Toggle flips a boolean field of a recipe and returns the updated recipe.
func (s *Service) Toggle(ctx context.Context, id uint, f ToggleField) (*Document, error) {
	r, err := s.store.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	value, err := f.Apply(r)
	if err != nil {
		return nil, recerrors.Wrap(recerrors.ErrCodeInvalidRequest, "Invalid toggle field", err)
	}
	if err := s.store.SaveRecipe(ctx, r); err != nil {
		return nil, err
	}
	recipeWrites.WithLabelValues("toggle").Inc()
	slog.Info("recipe field toggled", "id", id, "field", f.String(), "value", value)

	docs := s.documents(ctx, []Recipe{*r})
	return &docs[0], nil
}

// ValidateCategory checks a category payload.
func (s *Service) ValidateCategory(p CategoryPayload) error {
	return ValidationError(ValidateCategoryPayload(p))
}

// ImageURL returns the image URL of a recipe.
func (s *Service) ImageURL(ctx context.Context, id uint) (string, error) {
	if _, err := s.store.GetRecipe(ctx, id); err != nil {
		return "", err
	}
	if s.images == nil {
		return "", recerrors.NewWithContext(recerrors.ErrCodeNotFound, "No image found.", map[string]any{"id": id})
	}
	urls, err := s.images.ImageURLs(ctx, []uint{id})
	if err != nil {
		return "", fmt.Errorf("resolve image: %w", err)
	}
	u, ok := urls[id]
	if !ok {
		return "", recerrors.NewWithContext(recerrors.ErrCodeNotFound, "No image found.", map[string]any{"id": id})
	}
	return u, nil
}

func (s *Service) page(ctx context.Context, res *PageResult) *Page[Document] {
	return &Page[Document]{
		Results:    s.documents(ctx, res.Results),
		TotalItems: res.TotalItems,
		PagesCount: res.PagesCount,
		Page:       res.Page,
	}
}

// documents converts recipes and attaches image URLs. A failing image
// lookup only drops the URLs.
func (s *Service) documents(ctx context.Context, recipes []Recipe) []Document {
	var urls map[uint]string
	if s.images != nil && len(recipes) > 0 {
		ids := make([]uint, len(recipes))
		for i, r := range recipes {
			ids[i] = r.ID
		}
		var err error
		if urls, err = s.images.ImageURLs(ctx, ids); err != nil {
			slog.Warn("image lookup failed", "error", err)
		}
	}

	docs := make([]Document, 0, len(recipes))
	for _, r := range recipes {
		docs = append(docs, ToDocument(r, urls[r.ID]))
	}
	return docs
}

func tagsFromInput(in []TagInput) []Tag {
	tags := make([]Tag, 0, len(in))
	for _, t := range in {
		tags = append(tags, Tag{Name: t.Name, Description: t.Description})
	}
	return tags
}

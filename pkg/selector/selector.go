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

package selector

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/NVIDIA/recipes-api/pkg/defaults"
	recerrors "github.com/NVIDIA/recipes-api/pkg/errors"
	"github.com/NVIDIA/recipes-api/pkg/mail"
	"github.com/NVIDIA/recipes-api/pkg/recipe"
	"github.com/NVIDIA/recipes-api/pkg/settings"
	"k8s.io/apimachinery/pkg/util/sets"
)

const (
	// DefaultCount is the number of picks when neither the request nor the
	// settings name one.
	DefaultCount = 2

	// DefaultMaxCollisions bounds redraws per run that land on a recipe
	// already picked or on a sub-category already taken.
	DefaultMaxCollisions = 64

	MsgNoRecipes = "No recipes available!"
	MsgNoneFound = "No recipes found"
)

// Selection is one persisted pick.
type Selection struct {
	ID             uint      `gorm:"primaryKey" json:"id" yaml:"id"`
	RecipeID       uint      `gorm:"not null;index" json:"recipeId" yaml:"recipeId"`
	Name           string    `gorm:"size:150;not null" json:"name" yaml:"name"`
	InsertDateTime time.Time `gorm:"autoCreateTime" json:"insertDateTime" yaml:"insertDateTime"`
}

func (Selection) TableName() string { return "recipe_selections" }

// History stores the picks of the current cycle.
type History interface {
	SelectedRecipeIDs(ctx context.Context) ([]uint, error)
	AddSelection(ctx context.Context, s *Selection) error
	ClearSelections(ctx context.Context) error
}

// Recipes finds the eligible pool.
type Recipes interface {
	FindRecipes(ctx context.Context, c recipe.Criteria, offset, limit int) ([]recipe.Recipe, error)
}

// Settings reads runtime settings.
type Settings interface {
	Get(ctx context.Context, key string) (string, bool, error)
}

// Request parameterizes one run.
type Request struct {
	// Frontend runs only display the picks and never send email.
	Frontend bool
	// Count overrides the configured number of picks when positive.
	Count int
}

// Result is the outcome of one run.
type Result struct {
	Names   []string `json:"names" yaml:"names"`
	Message string   `json:"message" yaml:"message"`
	// Reset is set when the history was cleared during the run.
	Reset bool `json:"reset" yaml:"reset"`
	// Partial is set when fewer picks than requested were made.
	Partial   bool   `json:"partial" yaml:"partial"`
	Warning   string `json:"warning,omitempty" yaml:"warning,omitempty"`
	Requested int    `json:"requested" yaml:"requested"`
	EmailSent bool   `json:"emailSent" yaml:"emailSent"`
}

// Selector runs the random recipe selection.
type Selector struct {
	mu            sync.Mutex
	recipes       Recipes
	history       History
	settings      Settings
	mailer        mail.Sender
	category      string
	maxCollisions int
	intn          func(n int) int
}

// Option configures a Selector.
type Option func(*Selector)

// WithCategory sets the category recipes are picked from.
func WithCategory(category string) Option {
	return func(s *Selector) {
		if category != "" {
			s.category = category
		}
	}
}

// WithMaxCollisions bounds in-run redraws; see DefaultMaxCollisions.
func WithMaxCollisions(n int) Option {
	return func(s *Selector) {
		if n >= 0 {
			s.maxCollisions = n
		}
	}
}

// WithSettings sets the settings source for the count and email options.
func WithSettings(st Settings) Option {
	return func(s *Selector) {
		s.settings = st
	}
}

// WithMailer sets the email sender.
func WithMailer(m mail.Sender) Option {
	return func(s *Selector) {
		s.mailer = m
	}
}

// WithRand sets the source of random indexes in [0, n).
func WithRand(intn func(n int) int) Option {
	return func(s *Selector) {
		if intn != nil {
			s.intn = intn
		}
	}
}

// New returns a selector over recipes and history.
func New(recipes Recipes, history History, opts ...Option) *Selector {
	s := &Selector{
		recipes:       recipes,
		history:       history,
		category:      recipe.CategoryMainDish,
		maxCollisions: DefaultMaxCollisions,
		intn:          rand.IntN,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Category returns the category recipes are picked from.
func (s *Selector) Category() string {
	return s.category
}

// Run picks recipes. Store failures abort the run with an INTERNAL error;
// mail failures are only logged.
func (s *Selector) Run(ctx context.Context, req Request) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaults.SelectorTimeout)
	defer cancel()

	runs.Inc()

	eligible, err := s.recipes.FindRecipes(ctx, recipe.Criteria{
		Filter: &recipe.Filter{Field: "category", Column: "category", Value: s.category},
	}, 0, 0)
	if err != nil {
		return nil, recerrors.Wrap(recerrors.ErrCodeInternal, "Failed to load eligible recipes", err)
	}
	if len(eligible) == 0 {
		slog.Info("selector pool empty", "category", s.category)
		return &Result{Names: []string{}, Message: MsgNoRecipes}, nil
	}

	n := s.count(ctx, req)
	res := &Result{Names: []string{}, Requested: n}

	ids, err := s.history.SelectedRecipeIDs(ctx)
	if err != nil {
		return nil, recerrors.Wrap(recerrors.ErrCodeInternal, "Failed to read selection history", err)
	}
	history := sets.New(ids...)

	pool := sets.New[uint]()
	for _, r := range eligible {
		pool.Insert(r.ID)
	}

	picked := sets.New[uint]()
	subCategories := sets.New[string]()
	attempts, collisions := 0, 0

	for attempts <= len(eligible) && len(res.Names) < n {
		if history.IsSuperset(pool) {
			if err := s.history.ClearSelections(ctx); err != nil {
				return nil, recerrors.Wrap(recerrors.ErrCodeInternal, "Failed to reset selection history", err)
			}
			history = sets.New[uint]()
			res.Reset = true
			resets.Inc()
			slog.Info("selector cycle reset", "category", s.category, "pool", pool.Len())
		}

		candidate := eligible[s.intn(len(eligible))]

		// Redraws within this run (a recipe already picked or a taken
		// sub-category) spend the collision budget, not the pool budget.
		sub := strings.ToLower(strings.TrimSpace(candidate.SubCategory))
		if picked.Has(candidate.ID) || (sub != "" && subCategories.Has(sub)) {
			collisions++
			if collisions > s.maxCollisions {
				slog.Warn("selector collision limit reached", "collisions", collisions)
				break
			}
			continue
		}
		attempts++
		if history.Has(candidate.ID) {
			continue
		}

		sel := &Selection{RecipeID: candidate.ID, Name: candidate.Name}
		if err := s.history.AddSelection(ctx, sel); err != nil {
			return nil, recerrors.WrapWithContext(recerrors.ErrCodeInternal, "Failed to record selection", err,
				map[string]any{"recipeId": candidate.ID})
		}
		history.Insert(candidate.ID)
		picked.Insert(candidate.ID)
		if sub != "" {
			subCategories.Insert(sub)
		}
		res.Names = append(res.Names, candidate.Name)
	}

	picks.Add(float64(len(res.Names)))

	if len(res.Names) == 0 {
		res.Message = MsgNoneFound
	} else {
		res.Message = strings.Join(res.Names, ",")
	}
	if len(res.Names) < n {
		res.Partial = true
		res.Warning = fmt.Sprintf("selected %d of %d requested recipes after %d attempts", len(res.Names), n, attempts)
		partials.Inc()
		slog.Warn("selector run incomplete", "picked", len(res.Names), "requested", n, "attempts", attempts)
	}

	if !req.Frontend && len(res.Names) > 0 && s.emailEnabled(ctx) {
		res.EmailSent = s.sendEmail(ctx, res.Names)
	}

	slog.Info("selector run complete", "picked", res.Names, "reset", res.Reset)
	return res, nil
}

func (s *Selector) count(ctx context.Context, req Request) int {
	if req.Count > 0 {
		return req.Count
	}
	if n, err := strconv.Atoi(s.setting(ctx, settings.KeySelectorCounter)); err == nil && n > 0 {
		return n
	}
	return DefaultCount
}

func (s *Selector) emailEnabled(ctx context.Context) bool {
	if s.mailer == nil {
		return false
	}
	b, err := strconv.ParseBool(strings.TrimSpace(s.setting(ctx, settings.KeySelectorEmail)))
	return err == nil && b
}

func (s *Selector) setting(ctx context.Context, key string) string {
	if s.settings == nil {
		return ""
	}
	v, ok, err := s.settings.Get(ctx, key)
	if err != nil {
		slog.Warn("selector setting unavailable", "key", key, "error", err)
		return ""
	}
	if !ok {
		return ""
	}
	return v
}

func (s *Selector) sendEmail(ctx context.Context, names []string) bool {
	to := mail.ParseRecipients(s.setting(ctx, settings.KeyEmailTo))
	if len(to) == 0 {
		slog.Warn("selector email enabled without recipients", "key", settings.KeyEmailTo)
		return false
	}

	msg, err := mail.SelectionMessage(s.setting(ctx, settings.KeyEmailFrom), to, names)
	if err != nil {
		slog.Error("failed to render selector email", "error", err)
		return false
	}

	mailCtx, cancel := context.WithTimeout(ctx, defaults.MailTimeout)
	defer cancel()
	if err := s.mailer.Send(mailCtx, msg); err != nil {
		mailFailures.Inc()
		slog.Error("failed to send selector email", "error", err)
		return false
	}
	return true
}

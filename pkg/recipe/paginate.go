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
	"time"

	"github.com/NVIDIA/recipes-api/pkg/defaults"
	recerrors "github.com/NVIDIA/recipes-api/pkg/errors"
)

// MsgInvalidPage is returned for page numbers below 1.
const MsgInvalidPage = "Invalid page provided, page should be 1 or greater."

// Engine runs paginated recipe queries against a Store.
type Engine struct {
	store    Store
	pageSize int
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithPageSize overrides defaults.PageSize. Non-positive sizes are ignored.
func WithPageSize(size int) EngineOption {
	return func(e *Engine) {
		if size > 0 {
			e.pageSize = size
		}
	}
}

// NewEngine returns an Engine reading from store.
func NewEngine(store Store, opts ...EngineOption) *Engine {
	e := &Engine{
		store:    store,
		pageSize: defaults.PageSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// PageSize returns the number of recipes per page.
func (e *Engine) PageSize() int {
	return e.pageSize
}

// PagesCount returns ceil(total/size).
func PagesCount(total int64, size int) int64 {
	if total <= 0 || size <= 0 {
		return 0
	}
	s := int64(size)
	return (total + s - 1) / s
}

// Paginate returns the given 1-based page of recipes matching c, ordered by
// id. Pages past the end are empty but still carry the totals.
func (e *Engine) Paginate(ctx context.Context, c Criteria, page int) (*PageResult, error) {
	if page < 1 {
		return nil, recerrors.NewWithContext(recerrors.ErrCodeInvalidRequest, MsgInvalidPage, map[string]any{
			"page": page,
		})
	}

	start := time.Now()
	defer func() {
		queryDuration.WithLabelValues("paginate").Observe(time.Since(start).Seconds())
	}()

	total, err := e.store.CountRecipes(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("count recipes: %w", err)
	}

	result := &PageResult{
		Results:    []Recipe{},
		TotalItems: total,
		PagesCount: PagesCount(total, e.pageSize),
		Page:       page,
	}

	if int64(page) > result.PagesCount {
		slog.Debug("page past end", "page", page, "pagesCount", result.PagesCount)
		return result, nil
	}

	items, err := e.store.FindRecipes(ctx, c, (page-1)*e.pageSize, e.pageSize)
	if err != nil {
		return nil, fmt.Errorf("find recipes: %w", err)
	}
	if items != nil {
		result.Results = items
	}

	return result, nil
}

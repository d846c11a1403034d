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

package media

import (
	"context"
	"fmt"

	"github.com/NVIDIA/recipes-api/pkg/settings"
)

// DefaultImageURL prefixes file names when no image-url setting exists.
const DefaultImageURL = "/media/"

// Resolver builds image URLs from media rows and the image-url setting.
type Resolver struct {
	store    Store
	settings Settings
}

// NewResolver returns a resolver over store.
func NewResolver(store Store, st Settings) *Resolver {
	return &Resolver{store: store, settings: st}
}

// ImageURLs returns the image URL of every recipe in ids that has one.
func (r *Resolver) ImageURLs(ctx context.Context, ids []uint) (map[uint]string, error) {
	out := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.store.MediaFor(ctx, ForeignTableRecipes, ids)
	if err != nil {
		return nil, fmt.Errorf("load media: %w", err)
	}
	if len(rows) == 0 {
		return out, nil
	}

	base := DefaultImageURL
	if r.settings != nil {
		base = r.settings.String(ctx, settings.KeyImageURL, DefaultImageURL)
	}
	for _, m := range rows {
		out[m.ForeignID] = base + m.Name
	}
	return out, nil
}

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
	"fmt"
	"strings"
)

// ToggleField names a boolean recipe field that can be flipped.
type ToggleField int

const (
	ToggleFavourites ToggleField = iota + 1
	ToggleFeatured
)

// ParseToggleField parses "favourites" or "featured", ignoring case.
func ParseToggleField(s string) (ToggleField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "favourites":
		return ToggleFavourites, nil
	case "featured":
		return ToggleFeatured, nil
	default:
		return 0, fmt.Errorf("unknown toggle field %q", s)
	}
}

func (f ToggleField) String() string {
	switch f {
	case ToggleFavourites:
		return "favourites"
	case ToggleFeatured:
		return "featured"
	default:
		return fmt.Sprintf("ToggleField(%d)", int(f))
	}
}

// Apply flips the field on r and returns its new value.
func (f ToggleField) Apply(r *Recipe) (bool, error) {
	switch f {
	case ToggleFavourites:
		r.Favourites = !r.Favourites
		return r.Favourites, nil
	case ToggleFeatured:
		r.Featured = !r.Featured
		return r.Featured, nil
	default:
		return false, fmt.Errorf("unknown toggle field %d", int(f))
	}
}

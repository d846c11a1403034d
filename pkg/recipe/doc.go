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

// Package recipe implements recipe queries, pagination, search and CRUD.
//
// # Overview
//
// Recipes are stored as flat rows (see Recipe) where directions and
// ingredients are '#'-joined strings. The API returns Documents, in which
// those lists are split and the image URL of the recipe is attached.
//
// # Core Types
//
//	type Criteria struct {
//	    Filter       *Filter // single-field equality, from the allow-list
//	    NameContains string  // literal substring of the name
//	    NameEquals   string  // case-insensitive name match
//	}
//
//	type Page[T any] struct {
//	    Results    []T
//	    TotalItems int64
//	    PagesCount int64 // ceil(TotalItems / page size)
//	    Page       int
//	}
//
// # Queries
//
// Engine.Paginate counts the matches and returns the requested 1-based page
// ordered by id. The page size is defaults.PageSize (6) unless the engine is
// built WithPageSize. A page past the end is empty but carries the totals.
//
// Engine.Search matches the keyword as a substring of the recipe name only.
// A blank keyword is rejected; literal "%20" sequences are read as spaces.
//
// Filters come from query parameters:
//
//	GET /recipes/all?filter=category&value=Soup
//	GET /recipes/search?q=pie&filter=category&category=Dessert
//	GET /recipes/where?cuisine=Italian&page=2
//
// Only the fields returned by QueryableFields can be filtered, and only one
// at a time. Field names are matched case-insensitively; id is parsed as an
// unsigned integer and favourites/featured as booleans.
//
// # Writes
//
// Service.Create normalizes the input (NormalizeInput), validates it with
// k8s.io/apimachinery field errors, fills "NA" defaults and stores the
// recipe with its tags. A body carrying an id updates that recipe instead.
// Service.Update applies a partial update; Service.Toggle flips favourites
// or featured.
//
// # HTTP
//
// Handler.Routes returns the handlers keyed by ServeMux pattern for
// registration with pkg/server. List endpoints set X-Recipes-Total-Items and
// X-Recipes-Pages-Count and answer 404 when nothing matched.
package recipe

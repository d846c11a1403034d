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
	"strings"

	recerrors "github.com/NVIDIA/recipes-api/pkg/errors"
)

// MsgInvalidSearchQuery is returned for an empty search keyword.
const MsgInvalidSearchQuery = "Invalid search query provided, query should be search?q={searchTerm}"

// NormalizeKeyword decodes literal %20 sequences and rejects blank keywords.
// Surrounding whitespace is kept as part of the keyword.
func NormalizeKeyword(keyword string) (string, error) {
	keyword = strings.ReplaceAll(keyword, "%20", " ")
	if strings.TrimSpace(keyword) == "" {
		return "", recerrors.New(recerrors.ErrCodeInvalidRequest, MsgInvalidSearchQuery)
	}
	return keyword, nil
}

// Search returns the page of recipes whose name contains keyword, narrowed
// by the optional filter.
func (e *Engine) Search(ctx context.Context, keyword string, filter *Filter, page int) (*PageResult, error) {
	kw, err := NormalizeKeyword(keyword)
	if err != nil {
		return nil, err
	}

	return e.Paginate(ctx, Criteria{
		Filter:       filter,
		NameContains: kw,
	}, page)
}

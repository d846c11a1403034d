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

// Package selector picks random recipes from a category without repeating a
// recipe until every eligible recipe has been picked once.
//
// Picks are persisted in a History. When the history covers the whole
// eligible pool it is cleared and a new cycle starts. Within one run no two
// picks share a sub-category. Runs are serialized per Selector.
//
// Usage:
//
//	sel := selector.New(store, store,
//	    selector.WithSettings(cache),
//	    selector.WithMailer(sender),
//	)
//	res, err := sel.Run(ctx, selector.Request{Count: 2})
package selector

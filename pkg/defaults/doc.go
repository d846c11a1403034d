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

// Package defaults provides centralized configuration constants for the recipes API.
//
// This package defines timeout values, cache sizes and query defaults used
// across the codebase.
//
// # Timeout Categories
//
//   - Store timeouts: For database reads, writes and migrations
//   - Handler timeouts: For HTTP request processing
//   - Server timeouts: For HTTP server configuration
//   - Mail timeouts: For outbound selector emails
//
// # Usage
//
//	import "github.com/NVIDIA/recipes-api/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.StoreTimeout)
//	defer cancel()
//
// # Timeout Guidelines
//
//   - Store calls: 10s, always shorter than the handler issuing them
//   - HTTP handlers: 30s for recipes, 45s for the selector, 60s for uploads
//   - Server shutdown: 30s for graceful shutdown
package defaults

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

// Package server provides the HTTP server shared by the recipes API binaries.
//
// # Architecture
//
// A Server hosts handlers registered by pattern (Go 1.22 ServeMux syntax,
// e.g. "GET /recipes/name/{name}") and adds:
//
//   - Per-client rate limiting using token buckets (golang.org/x/time/rate)
//     kept in a bounded LRU (k8s.io/utils/lru), optionally gated at runtime
//   - Request ID tracking via X-Request-Id
//   - API version negotiation via vendor media types in Accept
//     ("application/vnd.nvidia.recipes.v1+json"), reported in X-API-Version
//   - Panic recovery
//   - CORS headers and preflight handling
//   - Prometheus RED metrics
//   - Graceful shutdown and systemd readiness notification
//
// # Middleware Chain
//
// Every registered handler runs inside:
//
//	metrics -> version -> requestID -> panicRecovery -> rateLimit -> logging -> handler
//
// CORS wraps the whole mux so OPTIONS preflights never reach method-bound
// patterns.
//
// # System Endpoints
//
//   - GET /health  - liveness
//   - GET /ready   - readiness (503 until the listener is bound, during
//     shutdown, and while the WithReadinessCheck function fails)
//   - GET /metrics - Prometheus metrics
//   - GET /        - service name, version and the list of routes
//
// # Errors
//
// Handlers report failures with WriteError or WriteErrorFromErr, which render:
//
//	{
//	  "code": "INVALID_REQUEST",
//	  "message": "Invalid filter provided.",
//	  "details": {"field": "colour"},
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2025-01-01T00:00:00Z",
//	  "retryable": false
//	}
//
// Structured errors from pkg/errors are mapped to HTTP status codes by
// HTTPStatusFromCode.
//
// # Usage
//
//	s := server.New(
//	    server.WithName("recipesd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "GET /recipes": h.All,
//	    }),
//	    server.WithRateLimitGate(settings.RateLimitEnabled),
//	    server.WithReadinessCheck(db.Ping),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// # Configuration
//
// Environment variables:
//   - ADDRESS: listen address (default all interfaces)
//   - PORT: listen port (default 8080)
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST: per-client limit (default 100/200)
//   - SHUTDOWN_TIMEOUT_SECONDS: graceful shutdown timeout (default 30)
//   - CORS_ALLOWED_ORIGINS: comma separated origins (default "*")
package server

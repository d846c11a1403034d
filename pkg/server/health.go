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

package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/NVIDIA/recipes-api/pkg/defaults"
	"github.com/NVIDIA/recipes-api/pkg/serializer"
)

// HealthResponse is the body of /health and /ready.
type HealthResponse struct {
	Status    string    `json:"status" yaml:"status"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Reason    string    `json:"reason,omitempty" yaml:"reason,omitempty"`
}

func respondHealth(w http.ResponseWriter, code int, status, reason string) {
	serializer.RespondJSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Reason:    reason,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondHealth(w, http.StatusOK, "healthy", "")
}

// handleReady reports 503 until the listener is up, during shutdown, and
// whenever the readiness check (the database ping for recipesd) fails.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if !s.isReady() {
		respondHealth(w, http.StatusServiceUnavailable, "not_ready", "service is not accepting traffic")
		return
	}

	if s.readiness != nil {
		ctx, cancel := context.WithTimeout(r.Context(), defaults.ReadinessCheckTimeout)
		defer cancel()
		if err := s.readiness(ctx); err != nil {
			slog.Warn("readiness check failed", "error", err)
			respondHealth(w, http.StatusServiceUnavailable, "not_ready", err.Error())
			return
		}
	}

	respondHealth(w, http.StatusOK, "ready", "")
}

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
	"net/http"
	"slices"
	"strings"
)

var (
	corsAllowedMethods = strings.Join([]string{
		http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions,
	}, ", ")
	corsAllowedHeaders = "Accept, Content-Type, " + HeaderRequestID
	corsExposedHeaders = strings.Join([]string{
		HeaderRequestID,
		HeaderAPIVersion,
		"X-Recipes-Total-Items",
		"X-Recipes-Pages-Count",
		"X-Recipes-Response-Time",
		"X-Recipes-Api-Version",
		"Retry-After",
	}, ", ")
)

// corsMiddleware adds CORS headers for allowed origins and answers
// preflight requests before they reach the mux.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" {
			if allowed := s.allowOrigin(origin); allowed != "" {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", allowed)
				h.Set("Access-Control-Expose-Headers", corsExposedHeaders)
				if allowed != "*" {
					h.Add("Vary", "Origin")
				}
			}
		}

		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			h := w.Header()
			h.Set("Access-Control-Allow-Methods", corsAllowedMethods)
			h.Set("Access-Control-Allow-Headers", corsAllowedHeaders)
			h.Set("Access-Control-Max-Age", "3600")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// allowOrigin returns the value for Access-Control-Allow-Origin or "" when
// origin is not allowed.
func (s *Server) allowOrigin(origin string) string {
	if slices.Contains(s.config.AllowedOrigins, "*") {
		return "*"
	}
	if slices.Contains(s.config.AllowedOrigins, origin) {
		return origin
	}
	return ""
}

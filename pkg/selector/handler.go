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

package selector

import (
	"net/http"
	"strconv"
	"strings"

	recerrors "github.com/NVIDIA/recipes-api/pkg/errors"
	"github.com/NVIDIA/recipes-api/pkg/serializer"
	"github.com/NVIDIA/recipes-api/pkg/server"
)

const (
	ParamFrontend = "fe-selector"
	ParamCount    = "count"
)

// HandleSelect serves GET /recipes/selector.
func (s *Selector) HandleSelect(w http.ResponseWriter, r *http.Request) {
	req, err := ParseRequest(r)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid selector request", nil)
		return
	}

	res, err := s.Run(r.Context(), req)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to select recipes", nil)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, res)
}

// Routes returns the selector routes keyed by method and pattern.
func (s *Selector) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"GET /recipes/selector": s.HandleSelect,
	}
}

// ParseRequest reads fe-selector and count from the query string.
func ParseRequest(r *http.Request) (Request, error) {
	var req Request
	q := r.URL.Query()

	if raw := strings.TrimSpace(q.Get(ParamFrontend)); raw != "" {
		fe, err := strconv.ParseBool(raw)
		if err != nil {
			return req, recerrors.WrapWithContext(recerrors.ErrCodeInvalidRequest, "Invalid fe-selector value", err,
				map[string]any{ParamFrontend: raw})
		}
		req.Frontend = fe
	}

	if raw := strings.TrimSpace(q.Get(ParamCount)); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return req, recerrors.NewWithContext(recerrors.ErrCodeInvalidRequest, "Invalid count, count should be 1 or greater",
				map[string]any{ParamCount: raw})
		}
		req.Count = n
	}

	return req, nil
}

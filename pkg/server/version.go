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
	"mime"
	"net/http"
	"strings"

	"github.com/NVIDIA/recipes-api/pkg/version"
)

const (
	// DefaultAPIVersion is served when the client asks for no version or
	// for one this server cannot read.
	DefaultAPIVersion = "v1"

	// HeaderAPIVersion carries the negotiated version on every response.
	HeaderAPIVersion = "X-API-Version"

	vendorMediaPrefix = "application/vnd.nvidia.recipes."
)

var servedVersion = version.MustParse(DefaultAPIVersion)

// negotiateAPIVersion picks the first vendor media type in Accept, e.g.
// "application/vnd.nvidia.recipes.v1+json", whose version shares the served
// major version and is not newer.
func negotiateAPIVersion(r *http.Request) string {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		rest, ok := strings.CutPrefix(mediaType, vendorMediaPrefix)
		if !ok {
			continue
		}
		raw, _, _ := strings.Cut(rest, "+")
		if !strings.HasPrefix(raw, "v") {
			continue
		}
		v, err := version.Parse(raw)
		if err != nil || !servedVersion.Readable(v) {
			continue
		}
		return "v" + v.String()
	}
	return DefaultAPIVersion
}

// APIVersion returns the version negotiated for the request carried by ctx.
func APIVersion(ctx context.Context) string {
	if v, ok := ctx.Value(contextKeyAPIVersion).(string); ok && v != "" {
		return v
	}
	return DefaultAPIVersion
}

func (s *Server) versionMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v := negotiateAPIVersion(r)
		w.Header().Set(HeaderAPIVersion, v)
		next(w, r.WithContext(context.WithValue(r.Context(), contextKeyAPIVersion, v)))
	}
}

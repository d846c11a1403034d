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

package header

import (
	"fmt"
	"strings"
	"time"

	"github.com/NVIDIA/recipes-api/pkg/version"
)

// Kind names the type of an exported document.
type Kind string

const (
	KindRecipeExport   Kind = "RecipeExport"
	KindSettingsExport Kind = "SettingsExport"
	KindSelection      Kind = "Selection"
)

// APIVersion is the schema version written to new documents.
const APIVersion = "recipes.nvidia.com/v1"

// Metadata keys set by Init.
const (
	MetadataTimestamp = "timestamp"
	MetadataVersion   = "version"
	MetadataCount     = "count"
)

func (k Kind) String() string {
	return string(k)
}

// IsValid reports whether k is a known kind.
func (k Kind) IsValid() bool {
	switch k {
	case KindRecipeExport, KindSettingsExport, KindSelection:
		return true
	default:
		return false
	}
}

// Header identifies the kind and schema version of a document.
type Header struct {
	Kind       Kind              `json:"kind,omitempty" yaml:"kind,omitempty"`
	APIVersion string            `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Option configures a Header.
type Option func(*Header)

// WithMetadata adds a metadata entry.
func WithMetadata(key, value string) Option {
	return func(h *Header) {
		if h.Metadata == nil {
			h.Metadata = make(map[string]string)
		}
		h.Metadata[key] = value
	}
}

// WithAPIVersion overrides the schema version.
func WithAPIVersion(apiVersion string) Option {
	return func(h *Header) {
		h.APIVersion = apiVersion
	}
}

// New returns a header of kind stamped with the current time and the
// producing binary's version.
func New(kind Kind, binVersion string, opts ...Option) *Header {
	h := &Header{}
	h.Init(kind, binVersion)
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Init resets h to kind at the current APIVersion with fresh metadata.
func (h *Header) Init(kind Kind, binVersion string) {
	h.Kind = kind
	h.APIVersion = APIVersion
	h.Metadata = map[string]string{
		MetadataTimestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if binVersion != "" {
		h.Metadata[MetadataVersion] = binVersion
	}
}

// Check returns an error unless h is a document of kind whose apiVersion
// is readable at the current APIVersion: same group and major version, not
// newer.
func (h *Header) Check(kind Kind) error {
	if h == nil || h.Kind == "" {
		return fmt.Errorf("document has no kind, want %s", kind)
	}
	if h.Kind != kind {
		return fmt.Errorf("document kind %q, want %q", h.Kind, kind)
	}
	group, ver, ok := strings.Cut(h.APIVersion, "/")
	wantGroup, wantVer, _ := strings.Cut(APIVersion, "/")
	if !ok || group != wantGroup {
		return fmt.Errorf("unsupported apiVersion %q, want %q", h.APIVersion, APIVersion)
	}
	got, err := version.Parse(ver)
	if err != nil {
		return fmt.Errorf("invalid apiVersion %q: %w", h.APIVersion, err)
	}
	if !version.MustParse(wantVer).Readable(got) {
		return fmt.Errorf("unsupported apiVersion %q, want %q", h.APIVersion, APIVersion)
	}
	return nil
}

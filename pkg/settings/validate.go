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

package settings

import (
	"strconv"
	"strings"

	recerrors "github.com/NVIDIA/recipes-api/pkg/errors"
	"github.com/NVIDIA/recipes-api/pkg/version"
)

// ValidateValue checks value against the format the service reads key
// with. Keys the service does not interpret accept any value.
func ValidateValue(key, value string) error {
	raw := strings.TrimSpace(value)

	var reason string
	switch key {
	case KeySelectorEmail, KeyRateLimit:
		if _, err := strconv.ParseBool(raw); err != nil {
			reason = "must be a boolean"
		}
	case KeySelectorCounter:
		if n, err := strconv.Atoi(raw); err != nil || n < 1 {
			reason = "must be a positive integer"
		}
	case KeyMaxFileSize:
		if f, err := strconv.ParseFloat(raw, 64); err != nil || f <= 0 {
			reason = "must be a positive number"
		}
	case KeyAPIVersion:
		if _, err := version.Parse(raw); err != nil {
			reason = "must be a version such as 1.0"
		}
	case KeyAllowedExtensions:
		if strings.Trim(raw, ", ") == "" {
			reason = "must list at least one extension"
		}
	}

	if reason == "" {
		return nil
	}
	return recerrors.NewWithContext(recerrors.ErrCodeInvalidRequest,
		"Invalid value for "+key+": "+reason,
		map[string]any{"key": key, "value": value})
}

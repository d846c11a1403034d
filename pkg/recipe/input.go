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
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Input is the body of create and update requests. Nil fields were not
// sent by the client.
type Input struct {
	ID          *Text      `json:"id,omitempty"`
	Name        *string    `json:"name,omitempty"`
	PrepTime    *Text      `json:"prepTime,omitempty"`
	CookingTime *Text      `json:"cookingTime,omitempty"`
	Servings    *Text      `json:"servings,omitempty"`
	Category    *string    `json:"category,omitempty"`
	SubCategory *string    `json:"subCategory,omitempty"`
	Directions  *List      `json:"directions,omitempty"`
	Ingredients *List      `json:"ingredients,omitempty"`
	Favourites  *Flag      `json:"favourites,omitempty"`
	Featured    *Flag      `json:"featured,omitempty"`
	AddedBy     *string    `json:"addedBy,omitempty"`
	Calories    *Text      `json:"calories,omitempty"`
	Cuisine     *string    `json:"cuisine,omitempty"`
	URL         *string    `json:"url,omitempty"`
	Tags        []TagInput `json:"tags,omitempty"`
}

// RecipeID parses the optional id carried by a create request.
func (in Input) RecipeID() (uint, bool, error) {
	if in.ID == nil {
		return 0, false, nil
	}
	id, err := strconv.ParseUint(strings.TrimSpace(string(*in.ID)), 10, 64)
	if err != nil {
		return 0, true, fmt.Errorf("invalid id %q: %w", *in.ID, err)
	}
	return uint(id), true, nil
}

// Text is a string field that also accepts JSON numbers and booleans,
// e.g. "servings": 4.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}

	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case float64:
		*t = Text(strconv.FormatFloat(x, 'f', -1, 64))
	case bool:
		*t = Text(strconv.FormatBool(x))
	case nil:
		*t = ""
	default:
		return fmt.Errorf("expected string or number, got %s", string(b))
	}
	return nil
}

// List is a '#'-joined list. It accepts either the joined string or a JSON
// array of strings.
type List string

// UnmarshalJSON implements json.Unmarshaler.
func (l *List) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var items []string
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		*l = List(JoinList(items))
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("expected string or array of strings: %w", err)
	}
	*l = List(s)
	return nil
}

// Flag is a boolean that also accepts 0/1 and the strings understood by
// strconv.ParseBool.
type Flag bool

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flag) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case bool:
		*f = Flag(x)
	case float64:
		if x != 0 && x != 1 {
			return fmt.Errorf("expected 0 or 1, got %v", x)
		}
		*f = x == 1
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(x))
		if err != nil {
			return fmt.Errorf("invalid boolean %q", x)
		}
		*f = Flag(parsed)
	case nil:
		*f = false
	default:
		return fmt.Errorf("expected boolean, got %s", string(b))
	}
	return nil
}

// TagInput is a tag in a create request: either a plain name or an object
// with name and description.
type TagInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *TagInput) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &t.Name)
	}
	type plain TagInput
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*t = TagInput(p)
	return nil
}

// CategoryPayload is the body of POST /recipes/category.
type CategoryPayload struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

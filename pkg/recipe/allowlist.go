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
	"net/url"
	"strconv"
	"strings"

	recerrors "github.com/NVIDIA/recipes-api/pkg/errors"
	"k8s.io/apimachinery/pkg/util/sets"
)

// Messages returned for rejected filters.
const (
	MsgInvalidFilter       = "Invalid filter provided."
	MsgInvalidSearchFilter = "Invalid search filter provided."
)

// Query parameters that never name a filter field.
const (
	ParamPage   = "page"
	ParamFilter = "filter"
	ParamValue  = "value"
	ParamParsed = "parsed"
)

// Filter is a single-field equality constraint.
type Filter struct {
	// Field is the API field name, e.g. "prepTime".
	Field string `json:"field" yaml:"field"`
	// Column is the store column backing Field, e.g. "prep_time".
	Column string `json:"-" yaml:"-"`
	// Value is a string, uint (id) or bool (favourites, featured).
	Value any `json:"value" yaml:"value"`
}

// fieldColumns maps the queryable API fields to their columns.
var fieldColumns = map[string]string{
	"id":          "id",
	"name":        "name",
	"prepTime":    "prep_time",
	"cookingTime": "cooking_time",
	"ingredients": "ingredients",
	"servings":    "servings",
	"category":    "category",
	"directions":  "directions",
	"favourites":  "favourites",
	"addedBy":     "added_by",
	"calories":    "calories",
	"cuisine":     "cuisine",
	"url":         "url",
	"featured":    "featured",
}

var (
	queryable = sets.KeySet(fieldColumns)

	// lower-cased field name to API field name
	canonicalFields = func() map[string]string {
		m := make(map[string]string, len(fieldColumns))
		for f := range fieldColumns {
			m[strings.ToLower(f)] = f
		}
		return m
	}()

	ignoredParams = sets.New(ParamPage, ParamParsed)
)

// QueryableFields returns the sorted allow-list of filterable fields.
func QueryableFields() []string {
	return sets.List(queryable)
}

// IsQueryable reports whether field is in the allow-list, ignoring case.
func IsQueryable(field string) bool {
	_, ok := canonicalFields[strings.ToLower(field)]
	return ok
}

// ParseFilter validates field against the allow-list and converts value to
// the field's type.
func ParseFilter(field, value string) (*Filter, error) {
	return parseFilter(field, value, MsgInvalidFilter)
}

func parseFilter(field, value, msg string) (*Filter, error) {
	name, ok := canonicalFields[strings.ToLower(strings.TrimSpace(field))]
	if !ok {
		return nil, recerrors.NewWithContext(recerrors.ErrCodeInvalidRequest, msg, map[string]any{
			"field":   field,
			"allowed": QueryableFields(),
		})
	}

	f := &Filter{Field: name, Column: fieldColumns[name], Value: value}

	switch name {
	case "id":
		id, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return nil, recerrors.WrapWithContext(recerrors.ErrCodeInvalidRequest, msg, err, map[string]any{
				"field": name,
				"value": value,
			})
		}
		f.Value = uint(id)
	case "favourites", "featured":
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return nil, recerrors.WrapWithContext(recerrors.ErrCodeInvalidRequest, msg, err, map[string]any{
				"field": name,
				"value": value,
			})
		}
		f.Value = b
	}

	return f, nil
}

// BuildFilter reads the filter=<field> form used by list and search
// requests. The value comes from value=<v> or from a parameter named after
// the field. A field without a value, or no field at all, matches
// everything and returns a nil filter.
func BuildFilter(params url.Values) (*Filter, error) {
	field := strings.TrimSpace(params.Get(ParamFilter))
	if field == "" {
		return nil, nil
	}

	if !IsQueryable(field) {
		return nil, recerrors.NewWithContext(recerrors.ErrCodeInvalidRequest, MsgInvalidSearchFilter, map[string]any{
			"field":   field,
			"allowed": QueryableFields(),
		})
	}

	value := params.Get(ParamValue)
	if value == "" {
		value = params.Get(field)
	}
	if value == "" {
		return nil, nil
	}

	return parseFilter(field, value, MsgInvalidSearchFilter)
}

// BuildWhere reads the <field>=<value> form. Paging parameters are
// ignored; more than one remaining parameter is rejected because only a
// single field can be filtered at a time.
func BuildWhere(params url.Values) (*Filter, error) {
	var fields []string
	for k := range params {
		if !ignoredParams.Has(strings.ToLower(k)) {
			fields = append(fields, k)
		}
	}

	switch len(fields) {
	case 0:
		return nil, nil
	case 1:
		return ParseFilter(fields[0], params.Get(fields[0]))
	default:
		return nil, recerrors.NewWithContext(recerrors.ErrCodeInvalidRequest, MsgInvalidFilter, map[string]any{
			"fields": sets.List(sets.New(fields...)),
			"reason": "only one filter field is supported",
		})
	}
}

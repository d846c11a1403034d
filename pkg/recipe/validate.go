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
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	recerrors "github.com/NVIDIA/recipes-api/pkg/errors"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

// MsgSchemaValidation is returned when a request body fails validation.
const MsgSchemaValidation = "Schema validation failed"

const (
	maxTagName        = 50
	maxTagDescription = 100
)

// ValidateCreate validates normalized input for a new recipe.
func ValidateCreate(in Input, cats Categories) field.ErrorList {
	var errs field.ErrorList

	errs = append(errs, requireMin(field.NewPath("name"), in.Name, 2)...)
	errs = append(errs, optionalMin(field.NewPath("prepTime"), in.PrepTime, 2)...)
	errs = append(errs, optionalMin(field.NewPath("cookingTime"), in.CookingTime, 2)...)
	errs = append(errs, optionalMin(field.NewPath("addedBy"), in.AddedBy, 2)...)
	errs = append(errs, requireMin(field.NewPath("directions"), in.Directions, 3)...)
	errs = append(errs, requireMin(field.NewPath("ingredients"), in.Ingredients, 3)...)
	errs = append(errs, validateCategory(field.NewPath("category"), in.Category, cats, true)...)
	errs = append(errs, validateURL(field.NewPath("url"), in.URL)...)
	errs = append(errs, validateTags(field.NewPath("tags"), in.Tags)...)

	return errs
}

// ValidatePatch validates normalized input for a create request that
// carries an id and therefore updates an existing recipe.
func ValidatePatch(in Input, cats Categories) field.ErrorList {
	var errs field.ErrorList

	errs = append(errs, optionalMin(field.NewPath("name"), in.Name, 2)...)
	errs = append(errs, optionalMin(field.NewPath("prepTime"), in.PrepTime, 3)...)
	errs = append(errs, optionalMin(field.NewPath("cookingTime"), in.CookingTime, 3)...)
	errs = append(errs, optionalMin(field.NewPath("addedBy"), in.AddedBy, 3)...)
	errs = append(errs, optionalMin(field.NewPath("directions"), in.Directions, 3)...)
	errs = append(errs, optionalMin(field.NewPath("ingredients"), in.Ingredients, 3)...)
	errs = append(errs, validateCategory(field.NewPath("category"), in.Category, cats, false)...)
	errs = append(errs, validateURL(field.NewPath("url"), in.URL)...)
	errs = append(errs, validateTags(field.NewPath("tags"), in.Tags)...)

	return errs
}

// ValidateUpdate validates input for a partial update.
func ValidateUpdate(in Input, cats Categories) field.ErrorList {
	var errs field.ErrorList

	for _, f := range []struct {
		name  string
		value *string
		min   int
	}{
		{"name", in.Name, 3},
		{"addedBy", in.AddedBy, 3},
		{"cuisine", in.Cuisine, 3},
		{"url", in.URL, 3},
	} {
		errs = append(errs, optionalMin(field.NewPath(f.name), f.value, f.min)...)
	}
	errs = append(errs, optionalMin(field.NewPath("prepTime"), in.PrepTime, 3)...)
	errs = append(errs, optionalMin(field.NewPath("cookingTime"), in.CookingTime, 3)...)
	errs = append(errs, optionalMin(field.NewPath("servings"), in.Servings, 1)...)
	errs = append(errs, optionalMin(field.NewPath("calories"), in.Calories, 1)...)
	errs = append(errs, optionalMin(field.NewPath("directions"), in.Directions, 3)...)
	errs = append(errs, optionalMin(field.NewPath("ingredients"), in.Ingredients, 3)...)
	errs = append(errs, validateCategory(field.NewPath("category"), in.Category, cats, false)...)

	return errs
}

// ValidateCategoryPayload validates the body of POST /recipes/category.
func ValidateCategoryPayload(p CategoryPayload) field.ErrorList {
	var errs field.ErrorList
	for _, f := range []struct {
		name  string
		value string
	}{
		{"name", p.Name},
		{"type", p.Type},
	} {
		path := field.NewPath(f.name)
		if strings.TrimSpace(f.value) == "" {
			errs = append(errs, field.Required(path, "must not be blank"))
			continue
		}
		errs = append(errs, optionalMin(path, &f.value, 3)...)
	}
	return errs
}

// ValidationError converts a non-empty error list into an INVALID_REQUEST
// error listing every violation. It returns nil for an empty list.
func ValidationError(errs field.ErrorList) error {
	if len(errs) == 0 {
		return nil
	}
	violations := make([]map[string]string, 0, len(errs))
	for _, e := range errs {
		violations = append(violations, map[string]string{e.Field: e.ErrorBody()})
	}
	return recerrors.WrapWithContext(recerrors.ErrCodeInvalidRequest, MsgSchemaValidation,
		errs.ToAggregate(), map[string]any{"violations": violations})
}

func requireMin[T ~string](path *field.Path, v *T, n int) field.ErrorList {
	if v == nil || *v == "" {
		return field.ErrorList{field.Required(path, "")}
	}
	return optionalMin(path, v, n)
}

func optionalMin[T ~string](path *field.Path, v *T, n int) field.ErrorList {
	if v == nil {
		return nil
	}
	if utf8.RuneCountInString(string(*v)) < n {
		return field.ErrorList{field.Invalid(path, string(*v), fmt.Sprintf("must be at least %d characters long", n))}
	}
	return nil
}

func validateCategory(path *field.Path, v *string, cats Categories, required bool) field.ErrorList {
	if v == nil || *v == "" {
		if required {
			return field.ErrorList{field.Required(path, "")}
		}
		return nil
	}
	if errs := optionalMin(path, v, 3); len(errs) > 0 {
		return errs
	}
	if !cats.Contains(*v) {
		return field.ErrorList{field.NotSupported(path, *v, cats.Names())}
	}
	return nil
}

func validateURL(path *field.Path, v *string) field.ErrorList {
	if v == nil || *v == "" {
		return nil
	}
	u, err := url.ParseRequestURI(*v)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return field.ErrorList{field.Invalid(path, *v, "must be an absolute http or https URL")}
	}
	return nil
}

func validateTags(path *field.Path, tags []TagInput) field.ErrorList {
	var errs field.ErrorList
	for i, t := range tags {
		p := path.Index(i)
		switch {
		case strings.TrimSpace(t.Name) == "":
			errs = append(errs, field.Required(p.Child("name"), ""))
		case utf8.RuneCountInString(t.Name) > maxTagName:
			errs = append(errs, field.TooLong(p.Child("name"), t.Name, maxTagName))
		}
		if utf8.RuneCountInString(t.Description) > maxTagDescription {
			errs = append(errs, field.TooLong(p.Child("description"), t.Description, maxTagDescription))
		}
	}
	return errs
}

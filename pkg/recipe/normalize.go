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
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"k8s.io/utils/ptr"
)

const (
	listSeparator = "#"

	// NotAvailable fills optional text fields left empty on create.
	NotAvailable = "NA"
)

// SplitList parses a '#'-joined list. Leading and trailing separators are
// dropped and every item is trimmed.
func SplitList(s string) []string {
	s = strings.Trim(s, listSeparator)
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, listSeparator)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// JoinList is the inverse of SplitList.
func JoinList(items []string) string {
	return strings.Join(items, listSeparator)
}

// ToDocument converts a stored recipe to its API form.
func ToDocument(r Recipe, imageURL string) Document {
	d := Document{
		ID:             r.ID,
		Name:           r.Name,
		PrepTime:       r.PrepTime,
		CookingTime:    r.CookingTime,
		Servings:       r.Servings,
		Category:       r.Category,
		SubCategory:    r.SubCategory,
		Directions:     SplitList(r.Directions),
		Ingredients:    SplitList(r.Ingredients),
		Favourites:     r.Favourites,
		Featured:       r.Featured,
		AddedBy:        r.AddedBy,
		Calories:       r.Calories,
		Cuisine:        r.Cuisine,
		URL:            r.URL,
		ImageURL:       imageURL,
		InsertDateTime: r.InsertDateTime,
	}
	for _, t := range r.Tags {
		d.Tags = append(d.Tags, TagDocument{Name: t.Name, Description: t.Description})
	}
	return d
}

// FromDocument converts an API document back to a storable recipe.
func FromDocument(d Document) Recipe {
	r := Recipe{
		ID:             d.ID,
		Name:           d.Name,
		PrepTime:       d.PrepTime,
		CookingTime:    d.CookingTime,
		Servings:       d.Servings,
		Category:       d.Category,
		SubCategory:    d.SubCategory,
		Directions:     JoinList(d.Directions),
		Ingredients:    JoinList(d.Ingredients),
		Favourites:     d.Favourites,
		Featured:       d.Featured,
		AddedBy:        d.AddedBy,
		Calories:       d.Calories,
		Cuisine:        d.Cuisine,
		URL:            d.URL,
		InsertDateTime: d.InsertDateTime,
	}
	for _, t := range d.Tags {
		r.Tags = append(r.Tags, Tag{Name: t.Name, Description: t.Description})
	}
	return r
}

// TitleWords upper-cases the first letter of every word and leaves the
// rest of each word untouched.
func TitleWords(s string) string {
	// Casers keep state and are not safe for concurrent use.
	return cases.Title(language.English, cases.NoLower).String(s)
}

// UpperFirst upper-cases the first letter of s.
func UpperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// NormalizeInput applies the input conventions: name and addedBy are
// title-cased (name also trimmed), directions and ingredients start with a
// capital letter.
func NormalizeInput(in Input) Input {
	out := in
	if in.Name != nil {
		out.Name = ptr.To(strings.TrimSpace(TitleWords(*in.Name)))
	}
	if in.AddedBy != nil {
		out.AddedBy = ptr.To(TitleWords(*in.AddedBy))
	}
	if in.Directions != nil {
		out.Directions = ptr.To(List(UpperFirst(string(*in.Directions))))
	}
	if in.Ingredients != nil {
		out.Ingredients = ptr.To(List(UpperFirst(string(*in.Ingredients))))
	}
	return out
}

// orNA returns NotAvailable for an unset or empty value.
func orNA[T ~string](v *T) string {
	if v == nil || *v == "" {
		return NotAvailable
	}
	return string(*v)
}

// newRecipe builds a recipe from normalized create input, filling defaults.
func newRecipe(in Input) Recipe {
	r := Recipe{
		Name:        ptr.Deref(in.Name, ""),
		PrepTime:    orNA(in.PrepTime),
		CookingTime: orNA(in.CookingTime),
		Servings:    orNA(in.Servings),
		Category:    ptr.Deref(in.Category, ""),
		SubCategory: ptr.Deref(in.SubCategory, ""),
		Directions:  string(ptr.Deref(in.Directions, "")),
		Ingredients: string(ptr.Deref(in.Ingredients, "")),
		Favourites:  bool(ptr.Deref(in.Favourites, false)),
		Featured:    bool(ptr.Deref(in.Featured, false)),
		AddedBy:     orNA(in.AddedBy),
		Calories:    NotAvailable,
		Cuisine:     orNA(in.Cuisine),
		URL:         ptr.Deref(in.URL, ""),
	}
	if in.Calories != nil {
		r.Calories = string(*in.Calories)
	}
	for _, t := range in.Tags {
		r.Tags = append(r.Tags, Tag{Name: t.Name, Description: t.Description})
	}
	return r
}

// applyInput copies every non-empty field of in onto r.
func applyInput(r *Recipe, in Input) {
	setString(&r.Name, in.Name)
	setString(&r.PrepTime, in.PrepTime)
	setString(&r.CookingTime, in.CookingTime)
	setString(&r.Servings, in.Servings)
	setString(&r.Category, in.Category)
	setString(&r.SubCategory, in.SubCategory)
	setString(&r.Directions, in.Directions)
	setString(&r.Ingredients, in.Ingredients)
	setString(&r.AddedBy, in.AddedBy)
	setString(&r.Calories, in.Calories)
	setString(&r.Cuisine, in.Cuisine)
	setString(&r.URL, in.URL)
	if in.Favourites != nil {
		r.Favourites = bool(*in.Favourites)
	}
	if in.Featured != nil {
		r.Featured = bool(*in.Featured)
	}
}

func setString[T ~string](dst *string, v *T) {
	if v != nil && *v != "" {
		*dst = string(*v)
	}
}

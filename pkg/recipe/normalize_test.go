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
	"slices"
	"testing"

	"k8s.io/utils/ptr"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"#", []string{}},
		{"Mix", []string{"Mix"}},
		{"Mix#Bake", []string{"Mix", "Bake"}},
		{"Mix # Bake#", []string{"Mix", "Bake"}},
	}

	for _, tt := range tests {
		if got := SplitList(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("SplitList(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if got := JoinList([]string{"a", "b"}); got != "a#b" {
		t.Errorf("JoinList = %q, want a#b", got)
	}
}

func TestTitleWords(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"chicken tikka masala", "Chicken Tikka Masala"},
		{"BBQ ribs", "BBQ Ribs"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := TitleWords(tt.in); got != tt.want {
			t.Errorf("TitleWords(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUpperFirst(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"boil water#add pasta", "Boil water#add pasta"},
		{"éclair", "Éclair"},
		{"Already", "Already"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := UpperFirst(tt.in); got != tt.want {
			t.Errorf("UpperFirst(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeInput(t *testing.T) {
	in := Input{
		Name:        ptr.To("  apple pie "),
		AddedBy:     ptr.To("jane doe"),
		Directions:  ptr.To(List("bake it")),
		Ingredients: ptr.To(List("apples#flour")),
		Cuisine:     ptr.To("american"),
	}

	out := NormalizeInput(in)

	if *out.Name != "Apple Pie" {
		t.Errorf("name = %q", *out.Name)
	}
	if *out.AddedBy != "Jane Doe" {
		t.Errorf("addedBy = %q", *out.AddedBy)
	}
	if *out.Directions != "Bake it" {
		t.Errorf("directions = %q", *out.Directions)
	}
	if *out.Ingredients != "Apples#flour" {
		t.Errorf("ingredients = %q", *out.Ingredients)
	}
	if *out.Cuisine != "american" {
		t.Errorf("cuisine should be untouched, got %q", *out.Cuisine)
	}
	if *in.Name != "  apple pie " {
		t.Error("input must not be modified")
	}
}

func TestNewRecipeDefaults(t *testing.T) {
	r := newRecipe(Input{
		Name:        ptr.To("Toast"),
		Category:    ptr.To(CategoryBreakfast),
		Directions:  ptr.To(List("Toast bread")),
		Ingredients: ptr.To(List("Bread")),
		Tags:        []TagInput{{Name: "quick"}},
	})

	for name, got := range map[string]string{
		"prepTime":    r.PrepTime,
		"cookingTime": r.CookingTime,
		"servings":    r.Servings,
		"addedBy":     r.AddedBy,
		"calories":    r.Calories,
		"cuisine":     r.Cuisine,
	} {
		if got != NotAvailable {
			t.Errorf("%s = %q, want %q", name, got, NotAvailable)
		}
	}
	if r.URL != "" {
		t.Errorf("url = %q, want empty", r.URL)
	}
	if r.Favourites || r.Featured {
		t.Error("flags should default to false")
	}
	if len(r.Tags) != 1 || r.Tags[0].Name != "quick" {
		t.Errorf("unexpected tags %+v", r.Tags)
	}
}

func TestApplyInputKeepsUnsetFields(t *testing.T) {
	r := Recipe{Name: "Toast", Cuisine: "French", Favourites: true}

	applyInput(&r, Input{
		Name:       ptr.To("French Toast"),
		Cuisine:    ptr.To(""),
		Favourites: ptr.To(Flag(false)),
	})

	if r.Name != "French Toast" {
		t.Errorf("name = %q", r.Name)
	}
	if r.Cuisine != "French" {
		t.Errorf("empty input must not clear cuisine, got %q", r.Cuisine)
	}
	if r.Favourites {
		t.Error("favourites should be cleared when provided")
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	r := Recipe{
		ID:          3,
		Name:        "Pancakes",
		Directions:  "Mix#Fry",
		Ingredients: "Flour#Milk#Eggs",
		Tags:        []Tag{{Name: "sweet", Description: "sugar"}},
	}

	d := ToDocument(r, "/media/3.png")
	if !slices.Equal(d.Directions, []string{"Mix", "Fry"}) {
		t.Errorf("directions = %q", d.Directions)
	}
	if d.ImageURL != "/media/3.png" {
		t.Errorf("imageUrl = %q", d.ImageURL)
	}

	back := FromDocument(d)
	if back.Directions != r.Directions || back.Ingredients != r.Ingredients {
		t.Errorf("lists not preserved: %+v", back)
	}
	if len(back.Tags) != 1 || back.Tags[0].Description != "sugar" {
		t.Errorf("tags not preserved: %+v", back.Tags)
	}
}

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
	"time"
)

// Category names known to the API.
const (
	CategoryAppetizer = "Appetizer"
	CategoryBeverage  = "Beverage"
	CategoryBread     = "Bread"
	CategoryBreakfast = "Breakfast"
	CategoryDessert   = "Dessert"
	CategoryHolidays  = "Holidays"
	CategoryMainDish  = "Main Dish"
	CategorySalad     = "Salad"
	CategorySideDish  = "Side Dish"
	CategorySoup      = "Soup"
)

// Recipe is a stored recipe. Directions and ingredients are kept as
// '#'-joined strings; see SplitList.
type Recipe struct {
	ID             uint      `gorm:"primaryKey" json:"id" yaml:"id"`
	Name           string    `gorm:"size:255;not null;index" json:"name" yaml:"name"`
	PrepTime       string    `gorm:"size:100" json:"prepTime" yaml:"prepTime"`
	CookingTime    string    `gorm:"size:100" json:"cookingTime" yaml:"cookingTime"`
	Servings       string    `json:"servings" yaml:"servings"`
	Category       string    `gorm:"size:100;not null;index" json:"category" yaml:"category"`
	SubCategory    string    `gorm:"size:100" json:"subCategory,omitempty" yaml:"subCategory,omitempty"`
	Directions     string    `gorm:"type:text;not null" json:"directions" yaml:"directions"`
	Ingredients    string    `gorm:"type:text;not null" json:"ingredients" yaml:"ingredients"`
	Favourites     bool      `gorm:"not null;default:false" json:"favourites" yaml:"favourites"`
	Featured       bool      `gorm:"not null;default:false" json:"featured" yaml:"featured"`
	AddedBy        string    `gorm:"size:100" json:"addedBy" yaml:"addedBy"`
	Calories       string    `gorm:"size:100" json:"calories" yaml:"calories"`
	Cuisine        string    `gorm:"size:255" json:"cuisine" yaml:"cuisine"`
	URL            string    `gorm:"size:255" json:"url" yaml:"url"`
	InsertDateTime time.Time `gorm:"autoCreateTime" json:"insertDateTime" yaml:"insertDateTime"`
	Tags           []Tag     `gorm:"constraint:OnDelete:CASCADE" json:"tags,omitempty" yaml:"tags,omitempty"`
}

// TableName sets the table name used by the store.
func (Recipe) TableName() string { return "recipes" }

// Tag is a label attached to a recipe.
type Tag struct {
	ID             uint      `gorm:"primaryKey" json:"id" yaml:"id"`
	RecipeID       uint      `gorm:"not null;index" json:"recipeId" yaml:"recipeId"`
	Name           string    `gorm:"size:50;not null" json:"name" yaml:"name"`
	Description    string    `gorm:"size:100" json:"description,omitempty" yaml:"description,omitempty"`
	InsertDateTime time.Time `gorm:"autoCreateTime" json:"insertDateTime" yaml:"insertDateTime"`
}

// TableName sets the table name used by the store.
func (Tag) TableName() string { return "recipe_tags" }

// Document is the API representation of a recipe.
type Document struct {
	ID             uint          `json:"id" yaml:"id"`
	Name           string        `json:"name" yaml:"name"`
	PrepTime       string        `json:"prepTime" yaml:"prepTime"`
	CookingTime    string        `json:"cookingTime" yaml:"cookingTime"`
	Servings       string        `json:"servings" yaml:"servings"`
	Category       string        `json:"category" yaml:"category"`
	SubCategory    string        `json:"subCategory,omitempty" yaml:"subCategory,omitempty"`
	Directions     []string      `json:"directions" yaml:"directions"`
	Ingredients    []string      `json:"ingredients" yaml:"ingredients"`
	Favourites     bool          `json:"favourites" yaml:"favourites"`
	Featured       bool          `json:"featured" yaml:"featured"`
	AddedBy        string        `json:"addedBy" yaml:"addedBy"`
	Calories       string        `json:"calories" yaml:"calories"`
	Cuisine        string        `json:"cuisine" yaml:"cuisine"`
	URL            string        `json:"url" yaml:"url"`
	ImageURL       string        `json:"imageUrl" yaml:"imageUrl"`
	InsertDateTime time.Time     `json:"insertDateTime" yaml:"insertDateTime"`
	Tags           []TagDocument `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// TagDocument is the API representation of a tag.
type TagDocument struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Page is one page of a paginated query.
type Page[T any] struct {
	Results    []T   `json:"results" yaml:"results"`
	TotalItems int64 `json:"totalItems" yaml:"totalItems"`
	PagesCount int64 `json:"pagesCount" yaml:"pagesCount"`
	Page       int   `json:"page" yaml:"page"`
}

// PageResult is a page of stored recipes.
type PageResult = Page[Recipe]

// Criteria selects recipes. Zero value matches everything.
type Criteria struct {
	// Filter is an optional single-field equality constraint.
	Filter *Filter
	// NameContains matches recipes whose name contains the text literally.
	NameContains string
	// NameEquals matches recipes whose name equals the text, ignoring case.
	NameEquals string
}

// Categories is the immutable set of accepted recipe categories.
type Categories struct {
	names []string
}

// NewCategories returns a category set in the given order.
func NewCategories(names ...string) Categories {
	return Categories{names: slices.Clone(names)}
}

// DefaultCategories returns the built-in categories.
func DefaultCategories() Categories {
	return NewCategories(
		CategoryAppetizer,
		CategoryBeverage,
		CategoryBread,
		CategoryBreakfast,
		CategoryDessert,
		CategoryHolidays,
		CategoryMainDish,
		CategorySalad,
		CategorySideDish,
		CategorySoup,
	)
}

// Names returns a copy of the category names.
func (c Categories) Names() []string {
	return slices.Clone(c.names)
}

// Contains reports whether name is an accepted category (exact match).
func (c Categories) Contains(name string) bool {
	return slices.Contains(c.names, name)
}

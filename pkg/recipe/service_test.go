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
	"context"
	"encoding/json"
	"testing"

	recerrors "github.com/NVIDIA/recipes-api/pkg/errors"
	"k8s.io/utils/ptr"
)

func TestServiceCreate(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)

	doc, err := svc.Create(context.Background(), Input{
		Name:        ptr.To("beef tacos"),
		Category:    ptr.To(CategoryMainDish),
		Directions:  ptr.To(List("fill tortillas#serve")),
		Ingredients: ptr.To(List("Tortillas#Beef")),
		Tags:        []TagInput{{Name: "mexican"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.ID == 0 {
		t.Fatal("expected an assigned id")
	}
	if doc.Name != "Beef Tacos" {
		t.Errorf("name = %q", doc.Name)
	}
	if len(doc.Directions) != 2 || doc.Directions[0] != "Fill tortillas" {
		t.Errorf("directions = %q", doc.Directions)
	}
	if doc.PrepTime != NotAvailable || doc.Cuisine != NotAvailable {
		t.Errorf("expected NA defaults, got prepTime=%q cuisine=%q", doc.PrepTime, doc.Cuisine)
	}
	if len(doc.Tags) != 1 || doc.Tags[0].Name != "mexican" {
		t.Errorf("tags = %+v", doc.Tags)
	}
}

func TestServiceCreateRejectsInvalid(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)

	_, err := svc.Create(context.Background(), Input{Name: ptr.To("X")})
	if !recerrors.IsCode(err, recerrors.ErrCodeInvalidRequest) {
		t.Fatalf("expected INVALID_REQUEST, got %v", err)
	}
	if len(store.recipes) != 0 {
		t.Error("nothing should be stored")
	}
}

func TestServiceCreateWithIDUpserts(t *testing.T) {
	store := newMemStore(Recipe{
		Name:        "Soup",
		Category:    CategorySoup,
		Directions:  "Boil",
		Ingredients: "Water#Salt",
		Tags:        []Tag{{Name: "warm"}},
	})
	svc := NewService(store)

	var in Input
	if err := json.Unmarshal([]byte(`{"id": 1, "name": "tomato soup", "tags": ["red"]}`), &in); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	doc, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ID != 1 || doc.Name != "Tomato Soup" {
		t.Errorf("unexpected doc %+v", doc)
	}
	if doc.Ingredients[0] != "Water" {
		t.Errorf("ingredients should be kept, got %q", doc.Ingredients)
	}
	if len(doc.Tags) != 2 {
		t.Errorf("expected tags to be appended, got %+v", doc.Tags)
	}
	if len(store.recipes) != 1 {
		t.Errorf("expected 1 recipe, got %d", len(store.recipes))
	}
}

func TestServiceCreateWithUnknownID(t *testing.T) {
	svc := NewService(newMemStore())

	var in Input
	if err := json.Unmarshal([]byte(`{"id": 99, "name": "Ghost"}`), &in); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), in); !recerrors.IsCode(err, recerrors.ErrCodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestServiceUpdate(t *testing.T) {
	store := newMemStore(seedRecipes(2)...)
	svc := NewService(store)
	ctx := context.Background()

	doc, err := svc.Update(ctx, 2, Input{Cuisine: ptr.To("Italian"), Servings: ptr.To(Text("4"))})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Cuisine != "Italian" || doc.Servings != "4" {
		t.Errorf("unexpected doc %+v", doc)
	}
	if doc.Name != "Recipe B" {
		t.Errorf("name should be unchanged, got %q", doc.Name)
	}

	if _, err := svc.Update(ctx, 7, Input{Cuisine: ptr.To("Thai")}); !recerrors.IsCode(err, recerrors.ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
	if _, err := svc.Update(ctx, 1, Input{Cuisine: ptr.To("X")}); !recerrors.IsCode(err, recerrors.ErrCodeInvalidRequest) {
		t.Errorf("expected INVALID_REQUEST, got %v", err)
	}
}

func TestServiceDelete(t *testing.T) {
	store := newMemStore(seedRecipes(1)...)
	svc := NewService(store)
	ctx := context.Background()

	if err := svc.Delete(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Delete(ctx, 1); !recerrors.IsCode(err, recerrors.ErrCodeNotFound) {
		t.Fatalf("second delete: expected NOT_FOUND, got %v", err)
	}
}

func TestServiceToggle(t *testing.T) {
	store := newMemStore(seedRecipes(1)...)
	svc := NewService(store)
	ctx := context.Background()

	doc, err := svc.Toggle(ctx, 1, ToggleFavourites)
	if err != nil || !doc.Favourites {
		t.Fatalf("first toggle: doc=%+v err=%v", doc, err)
	}
	doc, err = svc.Toggle(ctx, 1, ToggleFavourites)
	if err != nil || doc.Favourites {
		t.Fatalf("second toggle: doc=%+v err=%v", doc, err)
	}
	if store.recipes[1].Favourites {
		t.Error("stored value should be toggled back")
	}
}

func TestServiceByName(t *testing.T) {
	svc := NewService(newMemStore(
		Recipe{Name: "Pizza"},
		Recipe{Name: "Pizza Bianca"},
	))
	ctx := context.Background()

	docs, err := svc.ByName(ctx, "pizza")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 || docs[0].Name != "Pizza" {
		t.Errorf("expected exact match only, got %+v", docs)
	}

	if _, err := svc.ByName(ctx, "  "); !recerrors.IsCode(err, recerrors.ErrCodeInvalidRequest) {
		t.Errorf("expected INVALID_REQUEST, got %v", err)
	}
}

func TestServiceImages(t *testing.T) {
	store := newMemStore(seedRecipes(2)...)
	svc := NewService(store, WithImages(staticImages{1: "/media/1.png"}))
	ctx := context.Background()

	all, err := svc.All(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if all[0].ImageURL != "/media/1.png" || all[1].ImageURL != "" {
		t.Errorf("unexpected image urls %q, %q", all[0].ImageURL, all[1].ImageURL)
	}

	u, err := svc.ImageURL(ctx, 1)
	if err != nil || u != "/media/1.png" {
		t.Errorf("ImageURL(1) = %q, %v", u, err)
	}
	if _, err := svc.ImageURL(ctx, 2); !recerrors.IsCode(err, recerrors.ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND for missing image, got %v", err)
	}
	if _, err := NewService(store).ImageURL(ctx, 1); !recerrors.IsCode(err, recerrors.ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND without resolver, got %v", err)
	}
}

func TestServiceCategories(t *testing.T) {
	svc := NewService(newMemStore(), WithCategories(NewCategories("Tapas", "Dessert")))

	cats := svc.Categories()
	if len(cats) != 2 || cats[0] != "Tapas" {
		t.Errorf("unexpected categories %v", cats)
	}
	cats[0] = "changed"
	if svc.Categories()[0] != "Tapas" {
		t.Error("categories must be returned as a copy")
	}
}

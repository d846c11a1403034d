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
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	recerrors "github.com/NVIDIA/recipes-api/pkg/errors"
	"github.com/NVIDIA/recipes-api/pkg/server"
)

func newTestMux(store Store, opts ...HandlerOption) *http.ServeMux {
	h := NewHandler(NewService(store), opts...)
	mux := http.NewServeMux()
	for pattern, fn := range h.Routes() {
		mux.HandleFunc(pattern, fn)
	}
	return mux
}

func serve(t *testing.T, mux http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) server.ErrorResponse {
	t.Helper()
	var resp server.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return resp
}

func TestHandleList(t *testing.T) {
	mux := newTestMux(newMemStore(seedRecipes(8)...))

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantTotal  string
		wantPages  string
		wantCount  int
	}{
		{"first page", "/recipes/all", http.StatusOK, "8", "2", 6},
		{"second page", "/recipes/all?page=2", http.StatusOK, "8", "2", 2},
		{"past end", "/recipes/all?page=3", http.StatusNotFound, "0", "0", 0},
		{"filter no match", "/recipes/all?filter=category&value=Soup", http.StatusNotFound, "0", "0", 0},
		{"filter match", "/recipes/all?filter=category&category=Main%20Dish", http.StatusOK, "8", "2", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(t, mux, http.MethodGet, tt.target, "")
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if got := w.Header().Get(HeaderTotalItems); got != tt.wantTotal {
				t.Errorf("%s = %q, want %q", HeaderTotalItems, got, tt.wantTotal)
			}
			if got := w.Header().Get(HeaderPagesCount); got != tt.wantPages {
				t.Errorf("%s = %q, want %q", HeaderPagesCount, got, tt.wantPages)
			}

			var page Page[Document]
			if err := json.NewDecoder(w.Body).Decode(&page); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(page.Results) != tt.wantCount {
				t.Errorf("got %d results, want %d", len(page.Results), tt.wantCount)
			}
			if page.Results == nil {
				t.Error("results must serialize as an array")
			}
		})
	}
}

func TestHandleListErrors(t *testing.T) {
	mux := newTestMux(newMemStore(seedRecipes(3)...))

	tests := []struct {
		name        string
		target      string
		wantStatus  int
		wantMessage string
	}{
		{"page zero", "/recipes/all?page=0", http.StatusBadRequest, MsgInvalidPage},
		{"page text", "/recipes/all?page=two", http.StatusBadRequest, MsgInvalidPage},
		{"bad filter", "/recipes/all?filter=password&value=x", http.StatusBadRequest, MsgInvalidSearchFilter},
		{"where two fields", "/recipes/where?category=Soup&cuisine=Thai", http.StatusBadRequest, MsgInvalidFilter},
		{"where bad field", "/recipes/where?password=x", http.StatusBadRequest, MsgInvalidFilter},
		{"search missing q", "/recipes/search", http.StatusBadRequest, MsgInvalidSearchQuery},
		{"search blank q", "/recipes/search?q=%2520", http.StatusBadRequest, MsgInvalidSearchQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(t, mux, http.MethodGet, tt.target, "")
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			resp := decodeError(t, w)
			if resp.Code != string(recerrors.ErrCodeInvalidRequest) {
				t.Errorf("code = %q", resp.Code)
			}
			if resp.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", resp.Message, tt.wantMessage)
			}
		})
	}
}

func TestHandleWhereAndSearch(t *testing.T) {
	mux := newTestMux(newMemStore(
		Recipe{Name: "Apple Pie", Category: CategoryDessert, Featured: true},
		Recipe{Name: "Apple Crumble", Category: CategoryDessert},
		Recipe{Name: "Onion Soup", Category: CategorySoup},
	))

	w := serve(t, mux, http.MethodGet, "/recipes/where?featured=true", "")
	if w.Code != http.StatusOK || w.Header().Get(HeaderTotalItems) != "1" {
		t.Errorf("where: status=%d total=%s", w.Code, w.Header().Get(HeaderTotalItems))
	}

	w = serve(t, mux, http.MethodGet, "/recipes/search?q=apple", "")
	if w.Code != http.StatusOK || w.Header().Get(HeaderTotalItems) != "2" {
		t.Errorf("search: status=%d total=%s", w.Code, w.Header().Get(HeaderTotalItems))
	}

	w = serve(t, mux, http.MethodGet, "/recipes/search?q=apple&filter=featured&value=true", "")
	if w.Header().Get(HeaderTotalItems) != "1" {
		t.Errorf("filtered search: total=%s", w.Header().Get(HeaderTotalItems))
	}

	w = serve(t, mux, http.MethodGet, "/recipes/search?q=risotto", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("no match: status=%d", w.Code)
	}
}

func TestHandleAllAndByName(t *testing.T) {
	mux := newTestMux(newMemStore())

	w := serve(t, mux, http.MethodGet, "/recipes", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("empty store: status = %d", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("empty store: body = %q", w.Body.String())
	}

	mux = newTestMux(newMemStore(Recipe{Name: "Pho", Directions: "Simmer#Serve"}))
	w = serve(t, mux, http.MethodGet, "/recipes/name/pho", "")
	if w.Code != http.StatusOK {
		t.Fatalf("by name: status = %d", w.Code)
	}
	var docs []Document
	if err := json.NewDecoder(w.Body).Decode(&docs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(docs) != 1 || len(docs[0].Directions) != 2 {
		t.Errorf("unexpected docs %+v", docs)
	}
}

func TestHandleCreate(t *testing.T) {
	store := newMemStore()
	mux := newTestMux(store)

	w := serve(t, mux, http.MethodPost, "/recipes", `{
		"name": "green salad",
		"category": "Salad",
		"directions": ["Wash leaves", "Toss"],
		"ingredients": ["Lettuce", "Oil"]
	}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var doc Document
	if err := json.NewDecoder(w.Body).Decode(&doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Name != "Green Salad" || doc.ID != 1 {
		t.Errorf("unexpected doc %+v", doc)
	}

	w = serve(t, mux, http.MethodPost, "/recipes", `{"name": "x"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid: status = %d", w.Code)
	}
	resp := decodeError(t, w)
	if resp.Message != MsgSchemaValidation {
		t.Errorf("message = %q", resp.Message)
	}
	if _, ok := resp.Details["violations"]; !ok {
		t.Errorf("expected violations in details, got %v", resp.Details)
	}

	w = serve(t, mux, http.MethodPost, "/recipes", `{not json`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed: status = %d", w.Code)
	}

	w = serve(t, mux, http.MethodPost, "/recipes", `{"name":"`+strings.Repeat("a", maxBodyBytes)+`"}`)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("oversized: status = %d", w.Code)
	}
}

func TestHandleUpdateDeleteToggle(t *testing.T) {
	store := newMemStore(seedRecipes(2)...)
	mux := newTestMux(store)

	w := serve(t, mux, http.MethodPatch, "/recipes/update/1", `{"cuisine": "Greek"}`)
	if w.Code != http.StatusOK || store.recipes[1].Cuisine != "Greek" {
		t.Errorf("update: status=%d cuisine=%q", w.Code, store.recipes[1].Cuisine)
	}

	w = serve(t, mux, http.MethodPatch, "/recipes/featured/2", "")
	if w.Code != http.StatusOK || !store.recipes[2].Featured {
		t.Errorf("featured: status=%d featured=%v", w.Code, store.recipes[2].Featured)
	}

	w = serve(t, mux, http.MethodPatch, "/recipes/favourites/9", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("favourites missing: status=%d", w.Code)
	}

	w = serve(t, mux, http.MethodDelete, "/recipes/delete/abc", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("delete bad id: status=%d", w.Code)
	}

	w = serve(t, mux, http.MethodDelete, "/recipes/delete/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete: status=%d", w.Code)
	}
	var del DeleteResponse
	if err := json.NewDecoder(w.Body).Decode(&del); err != nil || !del.Deleted || del.ID != 1 {
		t.Errorf("delete response %+v, %v", del, err)
	}

	w = serve(t, mux, http.MethodDelete, "/recipes/delete/1", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("delete again: status=%d", w.Code)
	}
}

func TestHandleCategories(t *testing.T) {
	mux := newTestMux(newMemStore())

	w := serve(t, mux, http.MethodGet, "/recipes/categories-dropdown", "")
	var cats []string
	if err := json.NewDecoder(w.Body).Decode(&cats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(cats) != 10 || cats[0] != CategoryAppetizer {
		t.Errorf("unexpected categories %v", cats)
	}

	w = serve(t, mux, http.MethodPost, "/recipes/category", `{"name": "Tapas", "type": "small plates"}`)
	if w.Code != http.StatusOK {
		t.Errorf("valid category: status=%d", w.Code)
	}
	w = serve(t, mux, http.MethodPost, "/recipes/category", `{"name": "", "type": "x"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid category: status=%d", w.Code)
	}
}

func TestHandleFile(t *testing.T) {
	h := NewHandler(NewService(newMemStore(seedRecipes(2)...), WithImages(staticImages{1: "/media/1.jpg"})))
	mux := http.NewServeMux()
	for pattern, fn := range h.Routes() {
		mux.HandleFunc(pattern, fn)
	}

	w := serve(t, mux, http.MethodGet, "/recipes/file/1", "")
	var img ImageResponse
	if err := json.NewDecoder(w.Body).Decode(&img); err != nil || img.ImageURL != "/media/1.jpg" {
		t.Errorf("image response %+v, %v", img, err)
	}

	w = serve(t, mux, http.MethodGet, "/recipes/file/2", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("missing image: status=%d", w.Code)
	}
}

func TestResponseHeaders(t *testing.T) {
	mux := newTestMux(newMemStore(seedRecipes(1)...), WithAPIVersion(func(context.Context) string { return "2.1" }))

	for _, target := range []string{"/recipes", "/recipes/all?page=0"} {
		w := serve(t, mux, http.MethodGet, target, "")
		if got := w.Header().Get(HeaderAPIVersion); got != "2.1" {
			t.Errorf("%s: %s = %q", target, HeaderAPIVersion, got)
		}
		if w.Header().Get(HeaderResponseTime) == "" {
			t.Errorf("%s: missing %s", target, HeaderResponseTime)
		}
	}
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"", 1, false},
		{"1", 1, false},
		{" 7 ", 7, false},
		{"0", 0, true},
		{"-2", 0, true},
		{"1.5", 0, true},
	}

	for _, tt := range tests {
		got, err := ParsePage(tt.raw)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParsePage(%q) = %d, %v", tt.raw, got, err)
		}
	}
}

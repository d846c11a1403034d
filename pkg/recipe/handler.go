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
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/NVIDIA/recipes-api/pkg/defaults"
	recerrors "github.com/NVIDIA/recipes-api/pkg/errors"
	"github.com/NVIDIA/recipes-api/pkg/serializer"
	"github.com/NVIDIA/recipes-api/pkg/server"
)

// Response headers set by recipe handlers.
const (
	HeaderTotalItems   = "X-Recipes-Total-Items"
	HeaderPagesCount   = "X-Recipes-Pages-Count"
	HeaderResponseTime = "X-Recipes-Response-Time"
	HeaderAPIVersion   = "X-Recipes-Api-Version"

	// DefaultAPIVersion is reported when no api-version setting exists.
	DefaultAPIVersion = "1.0"

	maxBodyBytes = 1 << 20
)

// Handler serves the recipe endpoints.
type Handler struct {
	svc        *Service
	apiVersion func(context.Context) string
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithAPIVersion sets the source of the X-Recipes-Api-Version header.
func WithAPIVersion(fn func(context.Context) string) HandlerOption {
	return func(h *Handler) {
		if fn != nil {
			h.apiVersion = fn
		}
	}
}

// NewHandler returns a Handler for svc.
func NewHandler(svc *Service, opts ...HandlerOption) *Handler {
	h := &Handler{
		svc:        svc,
		apiVersion: func(context.Context) string { return DefaultAPIVersion },
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes returns the recipe handlers keyed by ServeMux pattern.
func (h *Handler) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"GET /recipes":                     h.HandleAll,
		"GET /recipes/categories-dropdown": h.HandleCategories,
		"GET /recipes/name/{name}":         h.HandleByName,
		"POST /recipes/category":           h.HandlePostCategory,
		"DELETE /recipes/delete/{id}":      h.HandleDelete,
		"PATCH /recipes/favourites/{id}":   h.toggle(ToggleFavourites),
		"PATCH /recipes/featured/{id}":     h.toggle(ToggleFeatured),
		"GET /recipes/where":               h.HandleWhere,
		"GET /recipes/all":                 h.HandleList,
		"GET /recipes/search":              h.HandleSearch,
		"GET /recipes/file/{id}":           h.HandleFile,
		"POST /recipes":                    h.HandleCreate,
		"PATCH /recipes/update/{id}":       h.HandleUpdate,
	}
}

// begin applies the request timeout and returns a function that stamps
// the common response headers.
func (h *Handler) begin(r *http.Request) (context.Context, context.CancelFunc, func(http.ResponseWriter)) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(r.Context(), defaults.RecipeHandlerTimeout)
	stamp := func(w http.ResponseWriter) {
		w.Header().Set(HeaderResponseTime, strconv.FormatFloat(time.Since(start).Seconds(), 'f', 6, 64))
		w.Header().Set(HeaderAPIVersion, h.apiVersion(ctx))
	}
	return ctx, cancel, stamp
}

// HandleAll returns every recipe.
func (h *Handler) HandleAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel, stamp := h.begin(r)
	defer cancel()

	docs, err := h.svc.All(ctx)
	stamp(w)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to list recipes", nil)
		return
	}
	respondList(w, docs)
}

// HandleCategories returns the category names.
func (h *Handler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	_, cancel, stamp := h.begin(r)
	defer cancel()

	stamp(w)
	serializer.RespondJSON(w, http.StatusOK, h.svc.Categories())
}

// HandleByName returns the recipes with the given name.
func (h *Handler) HandleByName(w http.ResponseWriter, r *http.Request) {
	ctx, cancel, stamp := h.begin(r)
	defer cancel()

	docs, err := h.svc.ByName(ctx, r.PathValue("name"))
	stamp(w)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to find recipe", nil)
		return
	}
	respondList(w, docs)
}

// HandlePostCategory validates a category payload and echoes it back.
func (h *Handler) HandlePostCategory(w http.ResponseWriter, r *http.Request) {
	_, cancel, stamp := h.begin(r)
	defer cancel()

	var p CategoryPayload
	if err := decodeBody(w, r, &p); err != nil {
		stamp(w)
		server.WriteErrorFromErr(w, r, err, "Invalid request body", nil)
		return
	}

	stamp(w)
	if err := h.svc.ValidateCategory(p); err != nil {
		server.WriteErrorFromErr(w, r, err, MsgSchemaValidation, nil)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, p)
}

// DeleteResponse is returned by a successful delete.
type DeleteResponse struct {
	ID      uint `json:"id"`
	Deleted bool `json:"deleted"`
}

// HandleDelete deletes a recipe.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel, stamp := h.begin(r)
	defer cancel()

	id, err := PathID(r)
	if err != nil {
		stamp(w)
		server.WriteErrorFromErr(w, r, err, "Invalid recipe id", nil)
		return
	}

	err = h.svc.Delete(ctx, id)
	stamp(w)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to delete recipe", nil)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, DeleteResponse{ID: id, Deleted: true})
}

func (h *Handler) toggle(f ToggleField) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel, stamp := h.begin(r)
		defer cancel()

		id, err := PathID(r)
		if err != nil {
			stamp(w)
			server.WriteErrorFromErr(w, r, err, "Invalid recipe id", nil)
			return
		}

		doc, err := h.svc.Toggle(ctx, id, f)
		stamp(w)
		if err != nil {
			server.WriteErrorFromErr(w, r, err, "Failed to update recipe", map[string]any{"field": f.String()})
			return
		}
		serializer.RespondJSON(w, http.StatusOK, doc)
	}
}

// HandleWhere filters by a single <field>=<value> query parameter.
func (h *Handler) HandleWhere(w http.ResponseWriter, r *http.Request) {
	ctx, cancel, stamp := h.begin(r)
	defer cancel()

	q := r.URL.Query()
	page, err := ParsePage(q.Get(ParamPage))
	if err != nil {
		stamp(w)
		server.WriteErrorFromErr(w, r, err, MsgInvalidPage, nil)
		return
	}
	filter, err := BuildWhere(q)
	if err != nil {
		stamp(w)
		server.WriteErrorFromErr(w, r, err, MsgInvalidFilter, nil)
		return
	}

	res, err := h.svc.List(ctx, filter, page)
	stamp(w)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to list recipes", nil)
		return
	}
	respondPage(w, res)
}

// HandleList returns a page of recipes with an optional filter.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel, stamp := h.begin(r)
	defer cancel()

	q := r.URL.Query()
	page, err := ParsePage(q.Get(ParamPage))
	if err != nil {
		stamp(w)
		server.WriteErrorFromErr(w, r, err, MsgInvalidPage, nil)
		return
	}
	filter, err := BuildFilter(q)
	if err != nil {
		stamp(w)
		server.WriteErrorFromErr(w, r, err, MsgInvalidSearchFilter, nil)
		return
	}

	res, err := h.svc.List(ctx, filter, page)
	stamp(w)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to list recipes", nil)
		return
	}
	respondPage(w, res)
}

// HandleSearch searches recipe names.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx, cancel, stamp := h.begin(r)
	defer cancel()

	q := r.URL.Query()
	page, err := ParsePage(q.Get(ParamPage))
	if err != nil {
		stamp(w)
		server.WriteErrorFromErr(w, r, err, MsgInvalidPage, nil)
		return
	}
	filter, err := BuildFilter(q)
	if err != nil {
		stamp(w)
		server.WriteErrorFromErr(w, r, err, MsgInvalidSearchFilter, nil)
		return
	}

	res, err := h.svc.Search(ctx, q.Get("q"), filter, page)
	stamp(w)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to search recipes", nil)
		return
	}
	respondPage(w, res)
}

// ImageResponse is returned by GET /recipes/file/{id}.
type ImageResponse struct {
	ID       uint   `json:"id"`
	ImageURL string `json:"imageUrl"`
}

// HandleFile returns the image URL of a recipe.
func (h *Handler) HandleFile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel, stamp := h.begin(r)
	defer cancel()

	id, err := PathID(r)
	if err != nil {
		stamp(w)
		server.WriteErrorFromErr(w, r, err, "Invalid recipe id", nil)
		return
	}

	u, err := h.svc.ImageURL(ctx, id)
	stamp(w)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to find image", nil)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, ImageResponse{ID: id, ImageURL: u})
}

// HandleCreate inserts a recipe, or updates one when the body has an id.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel, stamp := h.begin(r)
	defer cancel()

	var in Input
	if err := decodeBody(w, r, &in); err != nil {
		stamp(w)
		server.WriteErrorFromErr(w, r, err, "Invalid request body", nil)
		return
	}

	doc, err := h.svc.Create(ctx, in)
	stamp(w)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to save recipe", nil)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, doc)
}

// HandleUpdate applies a partial update.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel, stamp := h.begin(r)
	defer cancel()

	id, err := PathID(r)
	if err != nil {
		stamp(w)
		server.WriteErrorFromErr(w, r, err, "Invalid recipe id", nil)
		return
	}

	var in Input
	if err := decodeBody(w, r, &in); err != nil {
		stamp(w)
		server.WriteErrorFromErr(w, r, err, "Invalid request body", nil)
		return
	}

	doc, err := h.svc.Update(ctx, id, in)
	stamp(w)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to update recipe", nil)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, doc)
}

// PathID parses the {id} path value.
func PathID(r *http.Request) (uint, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, recerrors.NewWithContext(recerrors.ErrCodeInvalidRequest, "Invalid recipe id", map[string]any{"id": raw})
	}
	return uint(id), nil
}

// ParsePage parses a page query value; empty means page 1.
func ParsePage(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, recerrors.NewWithContext(recerrors.ErrCodeInvalidRequest, MsgInvalidPage, map[string]any{"page": raw})
	}
	return page, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return recerrors.WrapWithContext(recerrors.ErrCodePayloadTooLarge, "Request body too large", err,
				map[string]any{"limit": tooLarge.Limit})
		}
		return recerrors.Wrap(recerrors.ErrCodeInvalidRequest, "Invalid request body", err)
	}
	return nil
}

// respondList writes a full listing; an empty list is a 404 with zero totals.
func respondList(w http.ResponseWriter, docs []Document) {
	n := int64(len(docs))
	w.Header().Set(HeaderTotalItems, strconv.FormatInt(n, 10))
	w.Header().Set(HeaderPagesCount, strconv.FormatInt(min(n, 1), 10))
	if n == 0 {
		serializer.RespondJSON(w, http.StatusNotFound, docs)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, docs)
}

// respondPage writes a page; a page without results is a 404 with zero
// totals.
func respondPage(w http.ResponseWriter, p *Page[Document]) {
	if len(p.Results) == 0 {
		w.Header().Set(HeaderTotalItems, "0")
		w.Header().Set(HeaderPagesCount, "0")
		serializer.RespondJSON(w, http.StatusNotFound, Page[Document]{Results: []Document{}, Page: p.Page})
		return
	}
	w.Header().Set(HeaderTotalItems, strconv.FormatInt(p.TotalItems, 10))
	w.Header().Set(HeaderPagesCount, strconv.FormatInt(p.PagesCount, 10))
	serializer.RespondJSON(w, http.StatusOK, p)
}

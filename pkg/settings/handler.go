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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/NVIDIA/recipes-api/pkg/defaults"
	recerrors "github.com/NVIDIA/recipes-api/pkg/errors"
	"github.com/NVIDIA/recipes-api/pkg/serializer"
	"github.com/NVIDIA/recipes-api/pkg/server"
)

const (
	MsgInvalidKey    = "Config key could not be found."
	MsgCacheCleared  = "Cache cleared."
	MsgValueNotFound = "No config holds this value."

	maxBodyBytes = 64 << 10
)

// KeyValue is the response body of a single setting lookup.
type KeyValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// MessageResponse carries a plain status message.
type MessageResponse struct {
	Message string `json:"message"`
}

// Handler serves the settings endpoints.
type Handler struct {
	cache *Cache
}

// NewHandler returns a handler over cache.
func NewHandler(cache *Cache) *Handler {
	return &Handler{cache: cache}
}

// Routes returns the settings routes keyed by method and pattern.
func (h *Handler) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"GET /recipes/config/keys":            h.HandleKeys,
		"GET /recipes/configs":                h.HandleAll,
		"POST /recipes/config":                h.HandleSave,
		"GET /recipes/config/{key}":           h.HandleGet,
		"GET /recipes/config/value/{value}":   h.HandleLookupValue,
		"PATCH /recipes/config/{key}/{value}": h.HandleSet,
		"DELETE /recipes/config/deletecache":  h.HandleClearCache,
	}
}

func (h *Handler) HandleKeys(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.StoreTimeout)
	defer cancel()

	keys, err := h.cache.Keys(ctx)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to list config keys", nil)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, keys)
}

func (h *Handler) HandleAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.StoreTimeout)
	defer cancel()

	list, err := h.cache.All(ctx)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to list configs", nil)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, list)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.StoreTimeout)
	defer cancel()

	key := r.PathValue("key")
	value, ok, err := h.cache.Get(ctx, key)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to read config", nil)
		return
	}
	if !ok {
		server.WriteError(w, r, http.StatusNotFound, recerrors.ErrCodeNotFound, MsgInvalidKey, false,
			map[string]any{"key": key})
		return
	}
	serializer.RespondJSON(w, http.StatusOK, KeyValue{Key: key, Value: value})
}

// HandleLookupValue answers which key holds a value.
func (h *Handler) HandleLookupValue(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.StoreTimeout)
	defer cancel()

	value := r.PathValue("value")
	key, ok, err := h.cache.LookupByValue(ctx, value)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to read config", nil)
		return
	}
	if !ok {
		server.WriteError(w, r, http.StatusNotFound, recerrors.ErrCodeNotFound, MsgValueNotFound, false,
			map[string]any{"value": value})
		return
	}
	serializer.RespondJSON(w, http.StatusOK, KeyValue{Key: key, Value: value})
}

// HandleSet updates an existing key. Unknown keys are rejected, new keys
// are created through HandleSave.
func (h *Handler) HandleSet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.StoreTimeout)
	defer cancel()

	key, value := r.PathValue("key"), r.PathValue("value")
	if _, ok, err := h.cache.Get(ctx, key); err != nil || !ok {
		if err == nil {
			err = recerrors.NewWithContext(recerrors.ErrCodeInvalidRequest, MsgInvalidKey, map[string]any{"key": key})
		}
		server.WriteErrorFromErr(w, r, err, MsgInvalidKey, nil)
		return
	}

	if err := h.cache.Set(ctx, key, value); err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to update config", nil)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, KeyValue{Key: key, Value: value})
}

// HandleSave accepts one setting object or an array of them.
func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.StoreTimeout)
	defer cancel()

	list, err := decodeSettings(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid request body", nil)
		return
	}

	if err := h.cache.Save(ctx, list); err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to save configs", nil)
		return
	}
	serializer.RespondJSON(w, http.StatusCreated, list)
}

func (h *Handler) HandleClearCache(w http.ResponseWriter, _ *http.Request) {
	h.cache.Clear()
	serializer.RespondJSON(w, http.StatusOK, MessageResponse{Message: MsgCacheCleared})
}

func decodeSettings(body io.Reader) ([]Setting, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, recerrors.Wrap(recerrors.ErrCodePayloadTooLarge, "Request body too large", err)
		}
		return nil, recerrors.Wrap(recerrors.ErrCodeInvalidRequest, "Invalid request body", err)
	}
	raw = bytes.TrimSpace(raw)

	var list []Setting
	if len(raw) > 0 && raw[0] == '[' {
		err = json.Unmarshal(raw, &list)
	} else {
		var s Setting
		err = json.Unmarshal(raw, &s)
		list = []Setting{s}
	}
	if err != nil {
		return nil, recerrors.Wrap(recerrors.ErrCodeInvalidRequest, "Invalid request body", err)
	}

	for i := range list {
		list[i].ID = 0
		list[i].Key = strings.TrimSpace(list[i].Key)
		if list[i].Key == "" {
			return nil, recerrors.NewWithContext(recerrors.ErrCodeInvalidRequest, "Config key must not be empty",
				map[string]any{"index": i})
		}
		if list[i].Type == "" {
			list[i].Type = TypeApp
		}
	}
	if len(list) == 0 {
		return nil, recerrors.New(recerrors.ErrCodeInvalidRequest, "No configs provided")
	}
	return list, nil
}

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

package media

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/NVIDIA/recipes-api/pkg/defaults"
	recerrors "github.com/NVIDIA/recipes-api/pkg/errors"
	"github.com/NVIDIA/recipes-api/pkg/recipe"
	"github.com/NVIDIA/recipes-api/pkg/serializer"
	"github.com/NVIDIA/recipes-api/pkg/server"
	"github.com/NVIDIA/recipes-api/pkg/settings"
	"github.com/google/uuid"
)

const (
	// FormField is the multipart field carrying the file.
	FormField = "file"

	MsgInvalidImage    = "Invalid image."
	MsgTypeNotAllowed  = "File type not allowed"
	DefaultMaxFileSize = 2.0

	bytesPerMB      = 1_000_000
	multipartMemory = 8 << 20
	formOverhead    = 1 << 20
)

// DefaultAllowedExtensions are accepted when no allowed-extensions setting exists.
var DefaultAllowedExtensions = []string{"gif", "jpg", "jpeg", "png"}

// UploadResponse is returned after a successful upload.
type UploadResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Size     int64  `json:"size"`
	ImageURL string `json:"imageUrl"`
	Replaced bool   `json:"replaced"`
}

// Handler accepts uploads and serves stored files.
type Handler struct {
	store    Store
	recipes  Recipes
	settings Settings
	resolver *Resolver
	dir      string
}

// NewHandler returns a handler storing files in dir.
func NewHandler(store Store, recipes Recipes, st Settings, dir string) *Handler {
	return &Handler{
		store:    store,
		recipes:  recipes,
		settings: st,
		resolver: NewResolver(store, st),
		dir:      dir,
	}
}

// Resolver returns the image URL resolver sharing this handler's store.
func (h *Handler) Resolver() *Resolver {
	return h.resolver
}

// Routes returns the media routes keyed by method and pattern.
func (h *Handler) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"POST /recipes/upload/{id}": h.HandleUpload,
		"GET /media/{name}":         h.HandleFile,
	}
}

// HandleFile serves a stored file by name.
func (h *Handler) HandleFile(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		server.WriteError(w, r, http.StatusNotFound, recerrors.ErrCodeNotFound, "File not found", false, nil)
		return
	}
	http.ServeFileFS(w, r, os.DirFS(h.dir), name)
}

// HandleUpload stores the multipart file of a recipe, replacing any
// previous image.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.UploadHandlerTimeout)
	defer cancel()

	id, err := recipe.PathID(r)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid recipe id", nil)
		return
	}
	if _, err := h.recipes.GetRecipe(ctx, id); err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to find recipe", nil)
		return
	}

	maxMB := h.settings.Float(ctx, settings.KeyMaxFileSize, DefaultMaxFileSize)
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxMB*bytesPerMB)+formOverhead)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			server.WriteError(w, r, http.StatusRequestEntityTooLarge, recerrors.ErrCodePayloadTooLarge,
				tooLargeMessage(maxMB), false, map[string]any{"maxFileSize": maxMB})
			return
		}
		server.WriteError(w, r, http.StatusBadRequest, recerrors.ErrCodeInvalidRequest, MsgInvalidImage, false,
			map[string]any{"error": err.Error()})
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile(FormField)
	if err != nil {
		server.WriteError(w, r, http.StatusBadRequest, recerrors.ErrCodeInvalidRequest, MsgInvalidImage, false,
			map[string]any{"field": FormField})
		return
	}
	defer file.Close()

	mediaType, ext := fileType(header.Header.Get("Content-Type"))
	allowed := h.settings.List(ctx, settings.KeyAllowedExtensions, DefaultAllowedExtensions)
	if ext == "" || !slices.Contains(allowed, ext) {
		slog.Warn("upload rejected", "id", id, "type", mediaType)
		server.WriteError(w, r, http.StatusBadRequest, recerrors.ErrCodeInvalidRequest, MsgTypeNotAllowed, false,
			map[string]any{"type": mediaType, "allowed": allowed})
		return
	}

	if float64(header.Size)/bytesPerMB >= maxMB {
		server.WriteError(w, r, http.StatusRequestEntityTooLarge, recerrors.ErrCodePayloadTooLarge,
			tooLargeMessage(maxMB), false, map[string]any{"size": header.Size, "maxFileSize": maxMB})
		return
	}

	m, err := h.save(file, mediaType, ext)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to store file", nil)
		return
	}
	m.ForeignID = id
	m.ForeignTable = ForeignTableRecipes

	previous, err := h.store.UpsertMedia(ctx, m)
	if err != nil {
		h.remove(m.Name)
		server.WriteErrorFromErr(w, r, err, "Failed to save media", nil)
		return
	}
	if previous != nil && previous.Name != m.Name {
		h.remove(previous.Name)
	}

	urls, err := h.resolver.ImageURLs(ctx, []uint{id})
	if err != nil {
		slog.Warn("image url lookup failed", "id", id, "error", err)
	}

	uploads.WithLabelValues(ext).Inc()
	slog.Info("media uploaded", "id", id, "name", m.Name, "size", m.Size, "replaced", previous != nil)

	status := http.StatusCreated
	if previous != nil {
		status = http.StatusOK
	}
	serializer.RespondJSON(w, status, UploadResponse{
		ID:       id,
		Name:     m.Name,
		Type:     m.Type,
		Size:     m.Size,
		ImageURL: urls[id],
		Replaced: previous != nil,
	})
}

// save writes src to a new uuid-named file and reads its dimensions.
func (h *Handler) save(src io.ReadSeeker, mediaType, ext string) (*Media, error) {
	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}

	name := uuid.NewString() + "." + ext
	dst, err := os.OpenFile(filepath.Join(h.dir, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create media file: %w", err)
	}

	size, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		h.remove(name)
		return nil, fmt.Errorf("write media file: %w", err)
	}

	m := &Media{Name: name, Path: h.dir, Type: mediaType, Size: size}
	if _, err := src.Seek(0, io.SeekStart); err == nil {
		if cfg, _, err := image.DecodeConfig(src); err == nil {
			m.ImageWidth, m.ImageHeight = &cfg.Width, &cfg.Height
		}
	}
	return m, nil
}

func (h *Handler) remove(name string) {
	if err := os.Remove(filepath.Join(h.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to remove media file", "name", name, "error", err)
	}
}

// fileType returns the media type and its subtype, e.g. "image/png", "png".
func fileType(contentType string) (string, string) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return contentType, ""
	}
	_, sub, ok := strings.Cut(mediaType, "/")
	if !ok {
		return mediaType, ""
	}
	return mediaType, sub
}

func tooLargeMessage(maxMB float64) string {
	return fmt.Sprintf("File size is greater than the defined max file size of %g.", maxMB)
}

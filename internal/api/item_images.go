package api

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"github.com/uptrace/bun"

	"github.com/stagecrew/stageinv/internal/images"
	"github.com/stagecrew/stageinv/internal/imaging"
	"github.com/stagecrew/stageinv/internal/store"
)

// MaxImageBytes limits uploaded image size.
const MaxImageBytes = 10 << 20

// ImagesHandler handles item image endpoints.
type ImagesHandler struct {
	DB     *bun.DB
	Images *images.Store
}

// Upload handles PUT /api/items/{id}/image.
func (h *ImagesHandler) Upload(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		slog.Error("failed to get item", "item", id, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxImageBytes)
	if err := r.ParseMultipartForm(MaxImageBytes); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to read image")
		return
	}

	path, err := h.Images.Save(id, data, header.Filename)
	if err != nil {
		slog.Error("failed to save image", "item", id, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to save image")
		return
	}

	slog.Info("item image saved", "user", sessionUser(r), "item", id, "path", path)
	jsonMessage(w, "image uploaded")
}

// Get handles GET /api/items/{id}/image. With ?w=N a JPEG preview no larger
// than N pixels is served instead of the stored file.
func (h *ImagesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	path, ok, err := h.Images.Get(id)
	if err != nil {
		slog.Error("failed to look up image", "item", id, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get image")
		return
	}
	if !ok {
		jsonError(w, http.StatusNotFound, "no image")
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		slog.Error("failed to read image", "item", id, "path", path, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get image")
		return
	}

	mime := imaging.MIMEForPath(path)
	if v := r.URL.Query().Get("w"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size <= 0 {
			jsonError(w, http.StatusBadRequest, "invalid preview width")
			return
		}
		thumb, err := imaging.Thumbnail(bytes.NewReader(data), size)
		if err != nil {
			// Undecodable files are served as stored.
			slog.Warn("failed to build preview", "item", id, "error", err)
		} else {
			data, mime = thumb, "image/jpeg"
		}
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "private, max-age=60")
	w.Write(data)
}

// Delete handles DELETE /api/items/{id}/image.
func (h *ImagesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := h.Images.Remove(id); err != nil {
		slog.Error("failed to remove image", "item", id, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to remove image")
		return
	}

	slog.Info("item image removed", "user", sessionUser(r), "item", id)
	jsonMessage(w, "image removed")
}

package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/samber/lo"
	"github.com/uptrace/bun"

	"github.com/stagecrew/stageinv/internal/export"
	"github.com/stagecrew/stageinv/internal/images"
	"github.com/stagecrew/stageinv/internal/model"
	"github.com/stagecrew/stageinv/internal/store"
)

// ItemsHandler handles item CRUD endpoints.
type ItemsHandler struct {
	DB     *bun.DB
	Images *images.Store
}

type inUseRequest struct {
	InUse bool `json:"in_use"`
}

// parseItemQuery reads listing filters and the sort key from the query
// string. Repeated category, tag and location parameters are OR-ed.
func parseItemQuery(r *http.Request) (model.ItemFilter, string, error) {
	q := r.URL.Query()
	f := model.ItemFilter{
		NameQuery:  q.Get("q"),
		Categories: lo.Compact(q["category"]),
		Tags:       lo.Compact(q["tag"]),
		Locations:  lo.Compact(q["location"]),
	}

	if v := q.Get("in_use"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return f, "", fmt.Errorf("invalid in_use value %q", v)
		}
		f.InUse = &b
	}

	return f, q.Get("sort"), nil
}

func (h *ItemsHandler) listSorted(r *http.Request) ([]model.Item, int, error) {
	f, sortKey, err := parseItemQuery(r)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}

	items, err := store.ListItems(r.Context(), h.DB, f)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	if items == nil {
		items = []model.Item{}
	}
	if sortKey != "" {
		model.SortItems(items, sortKey)
	}
	return items, http.StatusOK, nil
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, status, err := h.listSorted(r)
	if status == http.StatusBadRequest {
		jsonError(w, status, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to list items", "error", err)
		jsonError(w, status, "failed to list items")
		return
	}
	jsonResponse(w, http.StatusOK, items)
}

// ExportCSV handles GET /api/export/items.csv.
func (h *ItemsHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	items, status, err := h.listSorted(r)
	if status == http.StatusBadRequest {
		jsonError(w, status, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to export items", "error", err)
		jsonError(w, status, "failed to export items")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="items.csv"`)
	if err := export.WriteItemsCSV(w, items); err != nil {
		slog.Error("failed to write csv", "error", err)
	}
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.ItemInput
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := model.ValidateItemInput(req); err != nil {
		validationOrInternal(w, err, "failed to create item")
		return
	}

	item, err := store.CreateItem(r.Context(), h.DB, req)
	if err != nil {
		validationOrInternal(w, err, "failed to create item")
		return
	}

	slog.Info("item created", "user", sessionUser(r), "item", item.ID, "name", item.Name)
	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	hasImage, err := h.Images.Exists(id)
	if err != nil {
		slog.Warn("failed to check item image", "item", id, "error", err)
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"item":      item,
		"has_image": hasImage,
	})
}

// Update handles PUT /api/items/{id}. A missing item is a no-op.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req model.ItemInput
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := model.ValidateItemInput(req); err != nil {
		validationOrInternal(w, err, "failed to update item")
		return
	}

	if err := store.UpdateItem(r.Context(), h.DB, id, req); err != nil {
		validationOrInternal(w, err, "failed to update item")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		slog.Error("failed to reload item", "item", id, "error", err)
	}
	if item == nil {
		jsonMessage(w, "item not found, nothing updated")
		return
	}

	slog.Info("item updated", "user", sessionUser(r), "item", id)
	jsonResponse(w, http.StatusOK, item)
}

// SetInUse handles PUT /api/items/{id}/in-use.
func (h *ItemsHandler) SetInUse(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req inUseRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := store.SetItemInUse(r.Context(), h.DB, id, req.InUse); err != nil {
		slog.Error("failed to set in-use", "item", id, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to update item")
		return
	}

	slog.Info("item in-use changed", "user", sessionUser(r), "item", id, "in_use", req.InUse)
	jsonResponse(w, http.StatusOK, map[string]any{"id": id, "in_use": req.InUse})
}

// Delete handles DELETE /api/items/{id}. The item's image goes first.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := h.Images.Remove(id); err != nil {
		slog.Error("failed to remove item image", "item", id, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to delete item image")
		return
	}

	if err := store.DeleteItem(r.Context(), h.DB, id); err != nil {
		slog.Error("failed to delete item", "item", id, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}

	slog.Info("item deleted", "user", sessionUser(r), "item", id)
	jsonMessage(w, "item deleted")
}

func sessionUser(r *http.Request) string {
	name, _ := GetSession(r.Context()).CurrentUser()
	return name
}

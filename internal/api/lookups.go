package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/uptrace/bun"

	"github.com/stagecrew/stageinv/internal/model"
	"github.com/stagecrew/stageinv/internal/store"
)

// LookupsHandler serves the value lists used to fill item forms.
type LookupsHandler struct {
	DB *bun.DB
}

type addLocationRequest struct {
	Name string `json:"name"`
}

// Locations handles GET /api/locations.
func (h *LookupsHandler) Locations(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "locations", store.ListLocations)
}

// Tags handles GET /api/tags.
func (h *LookupsHandler) Tags(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "tags", store.ListTags)
}

// Categories handles GET /api/categories.
func (h *LookupsHandler) Categories(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "categories", store.ListCategories)
}

func (h *LookupsHandler) list(w http.ResponseWriter, r *http.Request, what string, fn func(context.Context, *bun.DB) ([]string, error)) {
	values, err := fn(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to list "+what, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list "+what)
		return
	}
	if values == nil {
		values = []string{}
	}
	jsonResponse(w, http.StatusOK, values)
}

// AddLocation handles POST /api/locations.
func (h *LookupsHandler) AddLocation(w http.ResponseWriter, r *http.Request) {
	var req addLocationRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		jsonError(w, http.StatusBadRequest, "name: location name is required")
		return
	}

	if err := store.AddLocation(r.Context(), h.DB, name); err != nil {
		slog.Error("failed to add location", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to add location")
		return
	}

	slog.Info("location added", "user", sessionUser(r), "location", name)
	h.Locations(w, r)
}

// Presets handles GET /api/presets.
func (h *LookupsHandler) Presets(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string][]string{
		"tags":       model.PresetTags,
		"categories": model.PresetCategories,
	})
}

package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/stagecrew/stageinv/internal/announce"
	"github.com/stagecrew/stageinv/internal/model"
)

// AnnouncementsHandler handles the announcements board.
type AnnouncementsHandler struct {
	Board *announce.Board
}

type createAnnouncementRequest struct {
	Text string `json:"text"`
}

// List handles GET /api/announcements. limit=0 returns everything.
func (h *AnnouncementsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := announce.DefaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	anns, err := h.Board.List(limit)
	if err != nil {
		slog.Error("failed to list announcements", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list announcements")
		return
	}
	jsonResponse(w, http.StatusOK, anns)
}

// Create handles POST /api/announcements. The author is the session user.
func (h *AnnouncementsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAnnouncementRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := model.ValidateAnnouncement(req.Text); err != nil {
		validationOrInternal(w, err, "failed to post announcement")
		return
	}

	author := sessionUser(r)
	ann, err := h.Board.Add(strings.TrimSpace(req.Text), author)
	if err != nil {
		slog.Error("failed to post announcement", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to post announcement")
		return
	}

	slog.Info("announcement posted", "user", author, "announcement", ann.ID)
	jsonResponse(w, http.StatusCreated, ann)
}

// Delete handles DELETE /api/announcements/{id}.
func (h *AnnouncementsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Board.Delete(id); err != nil {
		slog.Error("failed to delete announcement", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to delete announcement")
		return
	}

	slog.Info("announcement deleted", "user", sessionUser(r), "announcement", id)
	jsonMessage(w, "announcement deleted")
}

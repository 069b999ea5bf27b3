package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/stagecrew/stageinv/internal/auth"
	"github.com/stagecrew/stageinv/internal/model"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	Gate *auth.Gate
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token   string         `json:"token"`
	Session *model.Session `json:"session"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" {
		jsonError(w, http.StatusBadRequest, "username and password required")
		return
	}

	token, sess, err := h.Gate.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		slog.Warn("login failed", "username", req.Username, "remote", r.RemoteAddr)
		jsonError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		slog.Error("login", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	setAuthCookie(w, r, token, h.Gate.SessionExpiry())
	jsonResponse(w, http.StatusOK, loginResponse{Token: token, Session: sess})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Gate.Logout(r.Context(), GetClaims(r.Context())); err != nil {
		slog.Error("failed to revoke token", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to log out")
		return
	}

	clearAuthCookie(w)
	jsonMessage(w, "logged out")
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, GetSession(r.Context()))
}

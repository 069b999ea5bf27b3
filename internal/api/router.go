package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/uptrace/bun"

	"github.com/stagecrew/stageinv/internal/announce"
	"github.com/stagecrew/stageinv/internal/auth"
	"github.com/stagecrew/stageinv/internal/images"
)

// Deps bundles what the handlers need.
type Deps struct {
	DB     *bun.DB
	Gate   *auth.Gate
	Images *images.Store
	Board  *announce.Board
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(SecureHeaders)
	r.Use(middleware.RequestID)
	r.Use(LoggingMiddleware)
	r.Use(middleware.Recoverer)

	authHandler := &AuthHandler{Gate: d.Gate}
	itemsHandler := &ItemsHandler{DB: d.DB, Images: d.Images}
	imagesHandler := &ImagesHandler{DB: d.DB, Images: d.Images}
	lookupsHandler := &LookupsHandler{DB: d.DB}
	announcementsHandler := &AnnouncementsHandler{Board: d.Board}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		// Public: login.
		r.Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(d.Gate))

			r.Post("/auth/logout", authHandler.Logout)
			r.Get("/auth/me", authHandler.Me)

			// Items: read (all roles), write (admin).
			r.Get("/items", itemsHandler.List)
			r.Get("/items/{id}", itemsHandler.Get)
			r.Get("/items/{id}/image", imagesHandler.Get)
			r.Get("/export/items.csv", itemsHandler.ExportCSV)

			r.Get("/locations", lookupsHandler.Locations)
			r.Get("/tags", lookupsHandler.Tags)
			r.Get("/categories", lookupsHandler.Categories)
			r.Get("/presets", lookupsHandler.Presets)

			// Any signed-in user may post to the board.
			r.Get("/announcements", announcementsHandler.List)
			r.Post("/announcements", announcementsHandler.Create)

			r.Group(func(r chi.Router) {
				r.Use(RequireAdmin)

				r.Post("/items", itemsHandler.Create)
				r.Put("/items/{id}", itemsHandler.Update)
				r.Delete("/items/{id}", itemsHandler.Delete)
				r.Put("/items/{id}/in-use", itemsHandler.SetInUse)
				r.Put("/items/{id}/image", imagesHandler.Upload)
				r.Delete("/items/{id}/image", imagesHandler.Delete)

				r.Post("/locations", lookupsHandler.AddLocation)

				r.Delete("/announcements/{id}", announcementsHandler.Delete)
			})
		})
	})

	return r
}

// internal/app/features/plants/routes.go
package plants

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/gardenlog/internal/app/system/auth"
)

// Routes returns the router for the plant log. All routes require a
// signed-in user.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Get("/", h.ServeList)
	r.Post("/", h.ServeAdd)
	r.Patch("/{plantID}/status", h.ServeUpdateStatus)
	r.Delete("/{plantID}", h.ServeDelete)

	return r
}

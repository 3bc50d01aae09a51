// internal/app/features/plans/routes.go
package plans

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/gardenlog/internal/app/system/auth"
)

// Routes returns the router for saved plans. All routes require a signed-in
// user.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Get("/", h.ServeList)
	r.Post("/", h.ServeSave)

	return r
}

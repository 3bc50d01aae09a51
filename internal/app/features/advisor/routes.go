// internal/app/features/advisor/routes.go
package advisor

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/gardenlog/internal/app/system/auth"
)

// Routes returns the router for the advisor endpoints. All routes require a
// signed-in user.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Post("/soil", h.ServeSoil)
	r.Post("/identify", h.ServeIdentify)
	r.Post("/health", h.ServePlantHealth)
	r.Post("/plan", h.ServePlan)
	r.Post("/recipe", h.ServeRecipe)
	r.Post("/gapfiller", h.ServeGapFiller)

	return r
}

// internal/app/features/weather/routes.go
package weather

import "github.com/go-chi/chi/v5"

// Routes returns the router for the weather endpoint. Conditions are not
// user-specific, so no sign-in is required.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeCurrent)
	return r
}

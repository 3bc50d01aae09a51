// internal/app/features/account/routes.go
package account

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/gardenlog/internal/app/system/auth"
)

// Routes returns the router for the account endpoints. ServeCurrent answers
// for anonymous callers too, so only deletion requires a signed-in user.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeCurrent)
	r.With(sm.RequireSignedIn).Delete("/", h.ServeDelete)

	return r
}

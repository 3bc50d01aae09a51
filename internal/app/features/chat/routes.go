// internal/app/features/chat/routes.go
package chat

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/gardenlog/internal/app/system/auth"
)

// Routes returns the router for grower channels. All routes require a
// signed-in user.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Get("/{channel}", h.ServeList)
	r.Post("/{channel}", h.ServeSend)
	r.Get("/{channel}/stream", h.ServeStream)

	return r
}

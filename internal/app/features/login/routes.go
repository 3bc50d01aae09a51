// internal/app/features/login/routes.go
package login

import "github.com/go-chi/chi/v5"

// Routes returns the router for sign-in endpoints.
// These routes are public (no authentication required).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// POST /login/demo - Sign in the demo gardener (local mode only)
	r.Post("/demo", h.ServeDemoLogin)

	return r
}

// GoogleRoutes returns the router for the Google OAuth endpoints,
// mounted at /auth/google.
func GoogleRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// GET /auth/google - Initiate Google OAuth flow
	r.Get("/", h.ServeGoogleLogin)

	// GET /auth/google/callback - Handle Google OAuth callback
	r.Get("/callback", h.ServeGoogleCallback)

	return r
}

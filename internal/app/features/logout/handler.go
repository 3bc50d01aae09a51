// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/dalemusser/gardenlog/internal/app/store/garden"
	"github.com/dalemusser/gardenlog/internal/app/system/auth"
)

// Handler signs the current user out.
type Handler struct {
	Svc        *garden.Service
	SessionMgr *auth.SessionManager
	Log        *zap.Logger
}

// NewHandler creates a new logout handler.
func NewHandler(svc *garden.Service, sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{Svc: svc, SessionMgr: sessionMgr, Log: logger}
}

// ServeLogout clears the session and publishes the signed-out state.
// Signing out while already signed out is a no-op.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.SignOut(r.Context()); err != nil {
		h.Log.Error("sign-out failed", zap.Error(err))
	}
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Error("clear session failed", zap.Error(err))
	}
	w.WriteHeader(http.StatusNoContent)
}

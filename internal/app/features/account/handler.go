// internal/app/features/account/handler.go
package account

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/dalemusser/gardenlog/internal/app/store/accounts"
	"github.com/dalemusser/gardenlog/internal/app/store/garden"
	"github.com/dalemusser/gardenlog/internal/app/system/auth"
	"github.com/dalemusser/gardenlog/internal/app/system/timeouts"
)

// Handler serves the current account: who is signed in, and deletion.
type Handler struct {
	Svc        *garden.Service
	SessionMgr *auth.SessionManager
	Log        *zap.Logger
}

// NewHandler creates a new account handler.
func NewHandler(svc *garden.Service, sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{Svc: svc, SessionMgr: sessionMgr, Log: logger}
}

// ServeCurrent handles GET /api/account.
func (h *Handler) ServeCurrent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	user, ok := auth.CurrentUser(r)
	if !ok {
		_ = json.NewEncoder(w).Encode(map[string]any{"isAuthenticated": false})
		return
	}
	ident := user.Identity()
	_ = json.NewEncoder(w).Encode(map[string]any{
		"isAuthenticated": true,
		"identity":        ident,
		"gardenerLevel":   ident.GardenerLevel(),
	})
}

// ServeDelete handles DELETE /api/account.
//
// Every record the user owns is removed, then the identity itself. On
// success the session is cleared and 204 returned. If the backend demands a
// fresh sign-in first, the response is 401 with a distinct code so the
// client can re-authenticate and simply retry: the cascade is idempotent.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Svc.DeleteAccount(ctx, user.UID); err != nil {
		if errors.Is(err, accounts.ErrReauthRequired) {
			h.Log.Info("account deletion requires recent login", zap.String("uid", user.UID))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "reauth_required"})
			return
		}
		h.Log.Error("account deletion failed", zap.Error(err), zap.String("uid", user.UID))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Error("clear session after deletion failed", zap.Error(err))
	}
	w.WriteHeader(http.StatusNoContent)
}

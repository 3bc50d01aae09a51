// internal/app/features/home/handler.go
package home

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/dalemusser/gardenlog/internal/app/backend"
)

// Handler serves the API index.
type Handler struct {
	Backend backend.Config
	Log     *zap.Logger
}

// NewHandler creates a new home handler.
func NewHandler(bcfg backend.Config, logger *zap.Logger) *Handler {
	return &Handler{Backend: bcfg, Log: logger}
}

// ServeIndex returns the API index with the active backend mode, so clients
// know whether to offer Google sign-in or the demo account.
func (h *Handler) ServeIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"name": "GardenLog",
		"mode": h.Backend.Mode.String(),
	})
}

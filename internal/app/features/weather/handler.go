// internal/app/features/weather/handler.go
package weather

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/dalemusser/gardenlog/internal/app/system/timeouts"
	"github.com/dalemusser/gardenlog/internal/app/system/weather"
)

// Handler serves the current-conditions endpoint for the dashboard header.
type Handler struct {
	Client *weather.Client
	Log    *zap.Logger
}

// NewHandler creates a new weather handler.
func NewHandler(client *weather.Client, logger *zap.Logger) *Handler {
	return &Handler{Client: client, Log: logger}
}

// ServeCurrent handles GET /api/weather.
func (h *Handler) ServeCurrent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data, err := h.Client.Current(ctx)
	if err != nil {
		h.Log.Warn("weather lookup failed", zap.Error(err))
		http.Error(w, "weather unavailable", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}

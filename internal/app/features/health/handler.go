// internal/app/features/health/handler.go
package health

import (
	"context"
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/dalemusser/gardenlog/internal/app/backend"
	"github.com/dalemusser/gardenlog/internal/app/system/timeouts"
)

// Handler holds dependencies needed for health checks.
type Handler struct {
	Client  *mongo.Client // nil in local mode
	Backend backend.Config
	Log     *zap.Logger
}

// NewHandler constructs a health Handler. client is nil in local mode.
func NewHandler(client *mongo.Client, bcfg backend.Config, logger *zap.Logger) *Handler {
	return &Handler{Client: client, Backend: bcfg, Log: logger}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status   string `json:"status"`
	Mode     string `json:"mode"`
	Database string `json:"database,omitempty"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// In local mode: 200 and { "status":"ok", "mode":"local" }.
// In connected mode the database is pinged; on failure: 503 and
//
//	{ "status":"error", "mode":"connected", "database":"disconnected", ... }
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status: "ok",
		Mode:   h.Backend.Mode.String(),
	}

	if !h.Backend.Connected() {
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	resp.Database = "connected"
	if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Error("health-check: mongo ping failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Database = "disconnected"
		resp.Message = "Database unavailable"
		resp.Error = err.Error()
	}
	_ = json.NewEncoder(w).Encode(resp)
}

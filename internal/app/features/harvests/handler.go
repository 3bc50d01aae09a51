// internal/app/features/harvests/handler.go
package harvests

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dalemusser/gardenlog/internal/app/store/garden"
	"github.com/dalemusser/gardenlog/internal/app/system/auth"
	"github.com/dalemusser/gardenlog/internal/app/system/limits"
	"github.com/dalemusser/gardenlog/internal/app/system/timeouts"
	"github.com/dalemusser/gardenlog/internal/domain/models"
)

// Handler serves the harvest log API.
type Handler struct {
	Svc *garden.Service
	Log *zap.Logger
}

// NewHandler creates a new harvests handler.
func NewHandler(svc *garden.Service, logger *zap.Logger) *Handler {
	return &Handler{Svc: svc, Log: logger}
}

// ServeList handles GET /api/harvests.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Svc.ListHarvests(ctx, user.UID)
	if err != nil {
		h.Log.Error("list harvests failed", zap.Error(err), zap.String("uid", user.UID))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// ServeAdd handles POST /api/harvests. A rating outside 1..5 or a
// non-positive weight is a 400.
func (h *Handler) ServeAdd(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	var log models.HarvestLog
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, limits.MaxJSONBodySize)).Decode(&log); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if log.CropName == "" {
		http.Error(w, "cropName is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, err := h.Svc.AddHarvest(ctx, user.UID, log)
	if err != nil {
		if errors.Is(err, garden.ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.Log.Error("add harvest failed", zap.Error(err), zap.String("uid", user.UID))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{"id": id})
}

// ServeDelete handles DELETE /api/harvests/{harvestID}. Idempotent.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	harvestID := chi.URLParam(r, "harvestID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Svc.DeleteHarvest(ctx, user.UID, harvestID); err != nil {
		h.Log.Error("delete harvest failed",
			zap.Error(err), zap.String("uid", user.UID), zap.String("harvest_id", harvestID))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// internal/app/features/plants/handler.go
package plants

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dalemusser/gardenlog/internal/app/store/garden"
	"github.com/dalemusser/gardenlog/internal/app/system/auth"
	"github.com/dalemusser/gardenlog/internal/app/system/limits"
	"github.com/dalemusser/gardenlog/internal/app/system/timeouts"
	"github.com/dalemusser/gardenlog/internal/domain/models"
)

// Handler serves the plant log API.
type Handler struct {
	Svc *garden.Service
	Log *zap.Logger
}

// NewHandler creates a new plants handler.
func NewHandler(svc *garden.Service, logger *zap.Logger) *Handler {
	return &Handler{Svc: svc, Log: logger}
}

// ServeList handles GET /api/plants.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Svc.ListPlants(ctx, user.UID)
	if err != nil {
		h.Log.Error("list plants failed", zap.Error(err), zap.String("uid", user.UID))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// ServeAdd handles POST /api/plants.
func (h *Handler) ServeAdd(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	var p models.Plant
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, limits.MaxJSONBodySize)).Decode(&p); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if p.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, err := h.Svc.AddPlant(ctx, user.UID, p)
	if err != nil {
		h.Log.Error("add plant failed", zap.Error(err), zap.String("uid", user.UID))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{"id": id})
}

// ServeUpdateStatus handles PATCH /api/plants/{plantID}/status.
func (h *Handler) ServeUpdateStatus(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	plantID := chi.URLParam(r, "plantID")

	var body struct {
		IsPlanted bool `json:"isPlanted"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, limits.MaxJSONBodySize)).Decode(&body); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Svc.UpdatePlantStatus(ctx, user.UID, plantID, body.IsPlanted); err != nil {
		h.Log.Error("update plant status failed",
			zap.Error(err), zap.String("uid", user.UID), zap.String("plant_id", plantID))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ServeDelete handles DELETE /api/plants/{plantID}. Deleting a plant that is
// already gone succeeds.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	plantID := chi.URLParam(r, "plantID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Svc.DeletePlant(ctx, user.UID, plantID); err != nil {
		h.Log.Error("delete plant failed",
			zap.Error(err), zap.String("uid", user.UID), zap.String("plant_id", plantID))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

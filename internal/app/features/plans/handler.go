// internal/app/features/plans/handler.go
package plans

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/dalemusser/gardenlog/internal/app/store/garden"
	"github.com/dalemusser/gardenlog/internal/app/system/auth"
	"github.com/dalemusser/gardenlog/internal/app/system/limits"
	"github.com/dalemusser/gardenlog/internal/app/system/timeouts"
	"github.com/dalemusser/gardenlog/internal/domain/models"
)

// Handler serves saved planting plans.
type Handler struct {
	Svc *garden.Service
	Log *zap.Logger
}

// NewHandler creates a new plans handler.
func NewHandler(svc *garden.Service, logger *zap.Logger) *Handler {
	return &Handler{Svc: svc, Log: logger}
}

// ServeList handles GET /api/plans.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Svc.ListPlans(ctx, user.UID)
	if err != nil {
		h.Log.Error("list plans failed", zap.Error(err), zap.String("uid", user.UID))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// ServeSave handles POST /api/plans. Plans are write-once; there is no
// update endpoint.
func (h *Handler) ServeSave(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	var body struct {
		Name string              `json:"name"`
		Plan models.PlantingPlan `json:"plan"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, limits.MaxJSONBodySize)).Decode(&body); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if body.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, err := h.Svc.SavePlan(ctx, user.UID, body.Name, body.Plan)
	if err != nil {
		h.Log.Error("save plan failed", zap.Error(err), zap.String("uid", user.UID))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{"id": id})
}

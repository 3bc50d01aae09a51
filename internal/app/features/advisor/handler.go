// internal/app/features/advisor/handler.go
package advisor

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/dalemusser/gardenlog/internal/app/store/garden"
	"github.com/dalemusser/gardenlog/internal/app/system/advisor"
	"github.com/dalemusser/gardenlog/internal/app/system/auth"
	"github.com/dalemusser/gardenlog/internal/app/system/limits"
	"github.com/dalemusser/gardenlog/internal/app/system/ratelimit"
	"github.com/dalemusser/gardenlog/internal/app/system/timeouts"
	"github.com/dalemusser/gardenlog/internal/domain/models"
)

// Each gardener gets this many advisor calls per window; the upstream
// generative API is metered, so one user must not exhaust it.
const (
	callLimit  = 20
	callWindow = time.Hour
)

// Handler serves the generative advisor endpoints. Client is nil when no
// API key is configured; every endpoint then answers 503 with a stable code
// so the UI can hide the advisor features.
type Handler struct {
	Client  *advisor.Client
	Svc     *garden.Service
	Limiter *ratelimit.Limiter
	Log     *zap.Logger
}

// NewHandler creates a new advisor handler. client may be nil.
func NewHandler(client *advisor.Client, svc *garden.Service, logger *zap.Logger) *Handler {
	return &Handler{
		Client:  client,
		Svc:     svc,
		Limiter: ratelimit.New(callLimit, callWindow),
		Log:     logger,
	}
}

// unavailable answers for unconfigured or over-quota callers; true means the
// request has been handled.
func (h *Handler) unavailable(w http.ResponseWriter, r *http.Request) bool {
	if h.Client == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "advisor_unavailable"})
		return true
	}
	user, _ := auth.CurrentUser(r)
	if !h.Limiter.Allow(user.UID) {
		h.Log.Warn("advisor rate limit hit", zap.String("uid", user.UID))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "advisor_rate_limited"})
		return true
	}
	return false
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, limits.MaxAdvisorBodySize)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return false
	}
	return true
}

func (h *Handler) respond(w http.ResponseWriter, result any, err error, what string) {
	if err != nil {
		h.Log.Error("advisor request failed", zap.Error(err), zap.String("kind", what))
		http.Error(w, "advisor error", http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}

// ServeSoil handles POST /api/advisor/soil.
func (h *Handler) ServeSoil(w http.ResponseWriter, r *http.Request) {
	if h.unavailable(w, r) {
		return
	}
	var inputs models.SoilDiagnosisInputs
	if !decodeBody(w, r, &inputs) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	result, err := h.Client.DiagnoseSoil(ctx, inputs)
	h.respond(w, result, err, "soil")
}

// ServeIdentify handles POST /api/advisor/identify.
func (h *Handler) ServeIdentify(w http.ResponseWriter, r *http.Request) {
	if h.unavailable(w, r) {
		return
	}
	var body struct {
		Images []models.SeedImage `json:"images"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if len(body.Images) == 0 {
		http.Error(w, "at least one image is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	result, err := h.Client.IdentifyPlants(ctx, body.Images)
	h.respond(w, result, err, "identify")
}

// ServePlan handles POST /api/advisor/plan.
func (h *Handler) ServePlan(w http.ResponseWriter, r *http.Request) {
	if h.unavailable(w, r) {
		return
	}
	var inputs models.PlantingPlanInputs
	if !decodeBody(w, r, &inputs) {
		return
	}
	if inputs.SeedText == "" && len(inputs.SeedImages) == 0 {
		http.Error(w, "seed text or images are required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	result, err := h.Client.GeneratePlantingPlan(ctx, inputs)
	h.respond(w, result, err, "plan")
}

// ServePlantHealth handles POST /api/advisor/health.
func (h *Handler) ServePlantHealth(w http.ResponseWriter, r *http.Request) {
	if h.unavailable(w, r) {
		return
	}
	var body struct {
		Image models.SeedImage `json:"image"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Image.Base64 == "" {
		http.Error(w, "an image is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	result, err := h.Client.DiagnosePlantHealth(ctx, body.Image)
	h.respond(w, result, err, "plant_health")
}

// ServeRecipe handles POST /api/advisor/recipe.
func (h *Handler) ServeRecipe(w http.ResponseWriter, r *http.Request) {
	if h.unavailable(w, r) {
		return
	}
	user, _ := auth.CurrentUser(r)
	var body struct {
		Harvested  []string `json:"harvested"`
		Pantry     string   `json:"pantry"`
		Creativity string   `json:"creativity"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if len(body.Harvested) == 0 {
		http.Error(w, "harvested crops are required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	// Still-growing plants let the advisor suggest what to hold back for.
	growing := h.plantNames(ctx, user.UID, false)

	result, err := h.Client.SuggestRecipe(ctx, body.Harvested, body.Pantry, body.Creativity, growing)
	h.respond(w, result, err, "recipe")
}

// ServeGapFiller handles POST /api/advisor/gapfiller.
func (h *Handler) ServeGapFiller(w http.ResponseWriter, r *http.Request) {
	if h.unavailable(w, r) {
		return
	}
	user, _ := auth.CurrentUser(r)
	var inputs models.GapFillerInputs
	if !decodeBody(w, r, &inputs) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	var inventory []string
	if inputs.UseInventory {
		inventory = h.plantNames(ctx, user.UID, true)
	}

	result, err := h.Client.RecommendGapFiller(ctx, inputs, inventory)
	h.respond(w, result, err, "gapfiller")
}

// plantNames lists the user's plant names, optionally only unplanted ones
// (the seed inventory). Lookup failures degrade to an empty list rather than
// failing the advisor call.
func (h *Handler) plantNames(ctx context.Context, uid string, onlyUnplanted bool) []string {
	all, err := h.Svc.ListPlants(ctx, uid)
	if err != nil {
		h.Log.Warn("list plants for advisor failed", zap.Error(err), zap.String("uid", uid))
		return nil
	}
	var names []string
	for _, p := range all {
		if onlyUnplanted && p.IsPlanted {
			continue
		}
		if !onlyUnplanted && !p.IsPlanted {
			continue
		}
		names = append(names, p.Name)
	}
	return names
}

// internal/app/features/chat/handler.go
package chat

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

// Handler serves the grower channel chat API.
type Handler struct {
	Svc *garden.Service
	Log *zap.Logger
}

// NewHandler creates a new chat handler.
func NewHandler(svc *garden.Service, logger *zap.Logger) *Handler {
	return &Handler{Svc: svc, Log: logger}
}

// ServeList handles GET /api/chat/{channel}.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	channel := chi.URLParam(r, "channel")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	msgs, err := h.Svc.ListMessages(ctx, channel)
	if err != nil {
		h.Log.Error("list messages failed", zap.Error(err), zap.String("channel", channel))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(msgs)
}

// ServeSend handles POST /api/chat/{channel}.
func (h *Handler) ServeSend(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	channel := chi.URLParam(r, "channel")

	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, limits.MaxJSONBodySize)).Decode(&body); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if body.Text == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, err := h.Svc.SendMessage(ctx, channel, body.Text, user.Identity())
	if err != nil {
		h.Log.Error("send message failed", zap.Error(err), zap.String("channel", channel))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{"id": id})
}

// ServeStream handles GET /api/chat/{channel}/stream as Server-Sent Events.
// The current history is sent as the first event; each subsequent event is
// the full message list again. The stream ends when the client disconnects.
func (h *Handler) ServeStream(w http.ResponseWriter, r *http.Request) {
	channel := chi.URLParam(r, "channel")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	cancel, err := h.Svc.SubscribeChat(r.Context(), channel, func(msgs []models.ChatMessage) {
		data, err := json.Marshal(msgs)
		if err != nil {
			h.Log.Error("marshal chat event failed", zap.Error(err))
			return
		}
		w.Write([]byte("data: "))
		w.Write(data)
		w.Write([]byte("\n\n"))
		flusher.Flush()
	})
	if err != nil {
		h.Log.Error("chat subscribe failed", zap.Error(err), zap.String("channel", channel))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	<-r.Context().Done()
	// Cancel waits for in-flight callbacks, so no write races the handler
	// returning.
	cancel()
}

package health_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/dalemusser/gardenlog/internal/app/backend"
	"github.com/dalemusser/gardenlog/internal/app/features/health"
)

func TestServe_LocalMode(t *testing.T) {
	bcfg := backend.Config{Mode: backend.ModeLocal, ChatPollInterval: 2 * time.Second}
	handler := health.NewHandler(nil, bcfg, zap.NewNop())

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()

	handler.Serve(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" || body["mode"] != "local" {
		t.Errorf("unexpected body: %v", body)
	}
	if _, has := body["database"]; has {
		t.Error("local mode should not report a database field")
	}
}

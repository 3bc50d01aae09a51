package weather_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	feature "github.com/dalemusser/gardenlog/internal/app/features/weather"
	"github.com/dalemusser/gardenlog/internal/app/system/weather"
	"github.com/dalemusser/gardenlog/internal/domain/models"
)

func TestServeCurrent(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"current_weather":{"temperature":18.5,"weathercode":2}}`))
	}))
	defer upstream.Close()

	client := weather.New(51.5, -0.12, zap.NewNop(), weather.WithBaseURL(upstream.URL))
	h := feature.NewHandler(client, zap.NewNop())

	rec := httptest.NewRecorder()
	h.ServeCurrent(rec, httptest.NewRequest("GET", "/api/weather", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	var data models.WeatherData
	if err := json.NewDecoder(rec.Body).Decode(&data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if data.Condition != "Cloudy" || data.IsFrostWarning {
		t.Errorf("unexpected conditions: %+v", data)
	}
}

func TestServeCurrent_UpstreamDown(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer upstream.Close()

	client := weather.New(51.5, -0.12, zap.NewNop(), weather.WithBaseURL(upstream.URL))
	h := feature.NewHandler(client, zap.NewNop())

	rec := httptest.NewRecorder()
	h.ServeCurrent(rec, httptest.NewRequest("GET", "/api/weather", nil))

	if rec.Code != http.StatusBadGateway {
		t.Errorf("expected status %d, got %d", http.StatusBadGateway, rec.Code)
	}
}

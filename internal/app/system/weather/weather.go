// Package weather fetches current conditions from the Open-Meteo API, which
// needs no API key. Conditions are collapsed to the handful of categories the
// dashboard can render, and a frost warning is raised below 2°C.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/dalemusser/gardenlog/internal/domain/models"
)

const defaultBaseURL = "https://api.open-meteo.com"

// frostThresholdC is the temperature below which tender plants need covering.
const frostThresholdC = 2.0

// Client fetches weather for a fixed location.
type Client struct {
	baseURL string
	http    *http.Client
	lat     float64
	lon     float64
	log     *zap.Logger
}

// Option adjusts a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint. Tests point this at a local server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// New creates a weather client for the given coordinates.
func New(lat, lon float64, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		lat:     lat,
		lon:     lon,
		log:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// currentResponse mirrors the slice of the Open-Meteo payload we consume.
type currentResponse struct {
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
		WeatherCode int     `json:"weathercode"`
	} `json:"current_weather"`
}

// Current returns the conditions at the client's location.
func (c *Client) Current(ctx context.Context) (*models.WeatherData, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", c.lat))
	q.Set("longitude", fmt.Sprintf("%.4f", c.lon))
	q.Set("current_weather", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/forecast?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build weather request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch weather: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather API status %d", resp.StatusCode)
	}

	var body currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode weather response: %w", err)
	}

	temp := body.CurrentWeather.Temperature
	condition, icon := describe(body.CurrentWeather.WeatherCode)

	data := &models.WeatherData{
		Temp:           temp,
		Condition:      condition,
		Icon:           icon,
		IsFrostWarning: temp < frostThresholdC,
	}

	c.log.Debug("weather fetched",
		zap.Float64("temp_c", temp),
		zap.String("condition", condition),
		zap.Bool("frost_warning", data.IsFrostWarning))

	return data, nil
}

// describe maps a WMO weather code to a display condition and icon.
func describe(code int) (condition, icon string) {
	switch {
	case code == 0:
		return "Sunny", "sun"
	case code <= 3:
		return "Cloudy", "cloud"
	case code == 45 || code == 48:
		return "Foggy", "cloud"
	case code >= 51 && code <= 67:
		return "Rainy", "rain"
	case code >= 71 && code <= 77:
		return "Snowy", "snow"
	case code >= 80 && code <= 82:
		return "Rainy", "rain"
	case code >= 85 && code <= 86:
		return "Snowy", "snow"
	case code >= 95:
		return "Stormy", "storm"
	default:
		return "Cloudy", "cloud"
	}
}

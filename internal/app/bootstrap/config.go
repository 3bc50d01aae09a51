// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"

	"github.com/dalemusser/gardenlog/internal/app/backend"
)

// appConfigKeys defines the configuration keys for GardenLog.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: GARDENLOG_MONGO_URI, GARDENLOG_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "", Desc: "MongoDB connection URI (blank runs local demo mode)"},
	{Name: "mongo_database", Default: "gardenlog", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "gardenlog-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "720h", Desc: "Session lifetime (e.g., 720h for 30 days)"},

	// Local (demo) mode storage
	{Name: "data_dir", Default: "./data", Desc: "Directory for the local demo-mode store"},
	{Name: "local_quota_bytes", Default: 5 * 1024 * 1024, Desc: "Byte quota for the local store (0 = unlimited)"},

	// Storage-layer behavior
	{Name: "chat_poll_interval", Default: "2s", Desc: "Local-mode chat poll cadence"},
	{Name: "reauth_window", Default: "5m", Desc: "Max login age before account deletion demands re-auth"},

	// Google OAuth configuration
	{Name: "google_client_id", Default: "", Desc: "Google OAuth2 client ID"},
	{Name: "google_client_secret", Default: "", Desc: "Google OAuth2 client secret"},

	// Gemini advisor
	{Name: "gemini_api_key", Default: "", Desc: "Gemini API key (blank disables advisor endpoints)"},
	{Name: "gemini_model", Default: "gemini-2.5-flash", Desc: "Gemini model name"},

	// Weather dashboard location
	{Name: "weather_lat", Default: "51.5072", Desc: "Latitude for the weather dashboard"},
	{Name: "weather_lon", Default: "-0.1276", Desc: "Longitude for the weather dashboard"},

	// Base URL for OAuth callbacks
	{Name: "base_url", Default: "http://localhost:3000", Desc: "Base URL for OAuth callbacks"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, GARDENLOG_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "GARDENLOG", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	lat, err := strconv.ParseFloat(appValues.String("weather_lat"), 64)
	if err != nil {
		return nil, AppConfig{}, fmt.Errorf("invalid weather_lat: %w", err)
	}
	lon, err := strconv.ParseFloat(appValues.String("weather_lon"), 64)
	if err != nil {
		return nil, AppConfig{}, fmt.Errorf("invalid weather_lon: %w", err)
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 720*time.Hour),

		DataDir:         appValues.String("data_dir"),
		LocalQuotaBytes: int64(appValues.Int("local_quota_bytes")),

		ChatPollInterval: appValues.Duration("chat_poll_interval", 2*time.Second),
		ReauthWindow:     appValues.Duration("reauth_window", 5*time.Minute),

		GoogleClientID:     appValues.String("google_client_id"),
		GoogleClientSecret: appValues.String("google_client_secret"),

		GeminiAPIKey: appValues.String("gemini_api_key"),
		GeminiModel:  appValues.String("gemini_model"),

		WeatherLat: lat,
		WeatherLon: lon,

		BaseURL: appValues.String("base_url"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// A missing or placeholder Mongo URI is NOT an error — it selects local demo
// mode. A URI that is present but malformed is rejected here so the failure
// is a config error at startup rather than a silent fallback.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if backend.UsableURI(appCfg.MongoURI) {
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
		if appCfg.GoogleClientID == "" || appCfg.GoogleClientSecret == "" {
			logger.Warn("connected mode without Google OAuth credentials; sign-in will be unavailable")
		}
	}

	if appCfg.LocalQuotaBytes < 0 {
		return fmt.Errorf("local_quota_bytes must be >= 0, got %d", appCfg.LocalQuotaBytes)
	}
	if appCfg.ChatPollInterval <= 0 {
		return fmt.Errorf("chat_poll_interval must be positive, got %s", appCfg.ChatPollInterval)
	}
	if appCfg.ReauthWindow <= 0 {
		return fmt.Errorf("reauth_window must be positive, got %s", appCfg.ReauthWindow)
	}

	return nil
}

// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings (ports, TLS, log level); AppConfig is everything
// specific to GardenLog.
//
// The defining knob is MongoURI: when it is set and reachable the app runs
// in connected mode against MongoDB with Google sign-in; when it is blank,
// a placeholder, or unreachable, the app falls back to local demo mode
// backed by a quota-limited on-disk store.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string; blank or placeholder selects local mode
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Session lifetime

	// Local (demo) mode storage
	DataDir         string // Directory for the local store database file
	LocalQuotaBytes int64  // Byte quota for the local store (0 = unlimited)

	// Storage-layer behavior
	ChatPollInterval time.Duration // Local-mode chat subscription poll cadence
	ReauthWindow     time.Duration // Max login age before account deletion demands re-auth

	// Google OAuth (connected mode sign-in)
	GoogleClientID     string
	GoogleClientSecret string

	// Gemini advisor
	GeminiAPIKey string // Blank disables the advisor endpoints
	GeminiModel  string // Model name (default gemini-2.5-flash)

	// Weather dashboard location
	WeatherLat float64
	WeatherLon float64

	// Base URL for OAuth callbacks
	BaseURL string // e.g., "https://gardenlog.app" or "http://localhost:3000"
}

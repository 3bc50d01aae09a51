// internal/app/backend/backend.go

// Package backend holds the connected-vs-local decision for the storage
// layer. The decision is made once, in bootstrap.ConnectDB, and the resulting
// Config value is passed by injection to everything that needs it. There is
// no package-level mode state and no runtime switch-over.
package backend

import (
	"strings"
	"time"
)

// Mode says which store backs the storage layer for the life of the process.
type Mode int

const (
	// ModeConnected delegates all storage to the multi-tenant MongoDB
	// backend and identity to Google sign-in.
	ModeConnected Mode = iota

	// ModeLocal ("demo mode") delegates all storage to the local
	// single-process quota-limited store with a synthetic demo identity.
	ModeLocal
)

func (m Mode) String() string {
	if m == ModeConnected {
		return "connected"
	}
	return "local"
}

// Config is the backend selection plus the knobs the storage layer needs in
// each mode. Built once at startup, read-only afterward.
type Config struct {
	Mode Mode

	// ChatPollInterval is how often local-mode chat subscriptions re-read
	// their channel key. Unused in connected mode.
	ChatPollInterval time.Duration

	// ReauthWindow bounds how stale a login may be before identity
	// revocation demands a fresh sign-in. Unused in local mode.
	ReauthWindow time.Duration
}

func (c Config) Connected() bool { return c.Mode == ModeConnected }

// placeholders that ship in sample config files. A URI matching one of these
// is treated the same as no URI at all.
var placeholders = []string{
	"your_mongo_uri",
	"your-mongo-uri",
	"changeme",
	"change-me",
	"example.com",
}

// UsableURI reports whether the Mongo URI is worth attempting a connection
// with: non-empty and not a sample-config placeholder. Scheme validation is
// left to the driver (bootstrap falls back to local mode if that fails too).
func UsableURI(uri string) bool {
	u := strings.ToLower(strings.TrimSpace(uri))
	if u == "" {
		return false
	}
	for _, p := range placeholders {
		if strings.Contains(u, p) {
			return false
		}
	}
	return true
}

// Package timeouts provides the timeout values handler operations use with
// context.WithTimeout, so every feature bounds its storage and upstream calls
// the same way.
//
// Guidelines:
//   - Ping: health checks and connectivity verification
//   - Short: single-record reads
//   - Medium: list queries and simple writes
//   - Long: the account-deletion cascade and generative advisor calls
package timeouts

import "time"

const (
	ping   = 2 * time.Second
	short  = 5 * time.Second
	medium = 10 * time.Second
	long   = 45 * time.Second
)

// Ping returns the timeout for health checks. The health endpoint uses it to
// verify MongoDB connectivity in connected mode.
func Ping() time.Duration { return ping }

// Short returns the timeout for single-record reads, like loading the
// current identity.
func Short() time.Duration { return short }

// Medium returns the timeout for list queries and simple writes: plant and
// harvest CRUD, chat sends.
func Medium() time.Duration { return medium }

// Long returns the timeout for multi-collection work and upstream generative
// calls. The advisor regularly takes tens of seconds on image-heavy prompts.
func Long() time.Duration { return long }

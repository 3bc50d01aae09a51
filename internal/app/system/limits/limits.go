// internal/app/system/limits/limits.go
package limits

// Request body size limits. These prevent memory exhaustion from oversized
// requests before JSON decoding starts.
const (
	// MaxAdvisorBodySize bounds advisor requests, which may carry several
	// base64-encoded seed packet photos.
	MaxAdvisorBodySize = 10 << 20 // 10 MB

	// MaxJSONBodySize bounds every other JSON request body.
	MaxJSONBodySize = 1 << 20 // 1 MB
)

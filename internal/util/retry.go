// ABOUTME: Retry helpers for backend API calls with exponential backoff
// ABOUTME: Used by the LLM client; the routing core itself never retries
package util

import (
	"math/rand/v2"
	"time"
)

// maxBackoff caps a single wait between attempts
const maxBackoff = 20 * time.Second

// Backoff returns the wait before retry number attempt (1-based), doubling
// the base delay each attempt with up to +/-25% jitter.
func Backoff(baseDelay time.Duration, attempt int) time.Duration {
	if attempt <= 0 || baseDelay <= 0 {
		return 0
	}
	if attempt > 20 {
		attempt = 20
	}

	backoff := baseDelay * time.Duration(1<<uint(attempt))
	if backoff > maxBackoff {
		backoff = maxBackoff
	}

	jitter := time.Duration(rand.Int64N(int64(backoff)/2)) - backoff/4
	return backoff + jitter
}

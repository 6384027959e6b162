package config

import (
	"strconv"
	"time"
)

// Timeouts holds the request timeout and the retry policy for provisioning.
type Timeouts struct {
	Request           time.Duration // Per-request HTTP timeout
	RetryMaxAttempts  int           // Attempts per ensure, including the first
	RetryInitialDelay time.Duration // Delay before the first retry
	RetryMaxDelay     time.Duration // Upper bound for the backoff delay
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - TSBX_TIMEOUT_REQUEST (default: 30s)
//   - TSBX_RETRY_MAX_ATTEMPTS (default: 3)
//   - TSBX_RETRY_INITIAL_DELAY (default: 1s)
//   - TSBX_RETRY_MAX_DELAY (default: 30s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		Request:           parseDuration("TSBX_TIMEOUT_REQUEST", 30*time.Second),
		RetryMaxAttempts:  parseInt("TSBX_RETRY_MAX_ATTEMPTS", 3),
		RetryInitialDelay: parseDuration("TSBX_RETRY_INITIAL_DELAY", 1*time.Second),
		RetryMaxDelay:     parseDuration("TSBX_RETRY_MAX_DELAY", 30*time.Second),
	}
}

// parseDuration parses a positive duration from an environment variable.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := optional(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}

	return d
}

// parseInt parses a positive integer from an environment variable.
func parseInt(envVar string, defaultVal int) int {
	val := optional(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil || i <= 0 {
		return defaultVal
	}

	return i
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var timeoutKeys = []string{
	"TSBX_TIMEOUT_REQUEST",
	"TSBX_RETRY_MAX_ATTEMPTS",
	"TSBX_RETRY_INITIAL_DELAY",
	"TSBX_RETRY_MAX_DELAY",
}

func TestLoadTimeouts_Defaults(t *testing.T) {
	unsetEnv(t, timeoutKeys...)

	timeouts := LoadTimeouts()

	assert.Equal(t, 30*time.Second, timeouts.Request)
	assert.Equal(t, 3, timeouts.RetryMaxAttempts)
	assert.Equal(t, 1*time.Second, timeouts.RetryInitialDelay)
	assert.Equal(t, 30*time.Second, timeouts.RetryMaxDelay)
}

func TestLoadTimeouts_CustomValues(t *testing.T) {
	t.Setenv("TSBX_TIMEOUT_REQUEST", "5s")
	t.Setenv("TSBX_RETRY_MAX_ATTEMPTS", "7")
	t.Setenv("TSBX_RETRY_INITIAL_DELAY", "250ms")
	t.Setenv("TSBX_RETRY_MAX_DELAY", `"2m"`)

	timeouts := LoadTimeouts()

	assert.Equal(t, 5*time.Second, timeouts.Request)
	assert.Equal(t, 7, timeouts.RetryMaxAttempts)
	assert.Equal(t, 250*time.Millisecond, timeouts.RetryInitialDelay)
	assert.Equal(t, 2*time.Minute, timeouts.RetryMaxDelay)
}

func TestLoadTimeouts_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("TSBX_TIMEOUT_REQUEST", "soon")
	t.Setenv("TSBX_RETRY_MAX_ATTEMPTS", "many")
	t.Setenv("TSBX_RETRY_INITIAL_DELAY", "-1s")
	t.Setenv("TSBX_RETRY_MAX_DELAY", "0s")

	timeouts := LoadTimeouts()

	assert.Equal(t, 30*time.Second, timeouts.Request)
	assert.Equal(t, 3, timeouts.RetryMaxAttempts)
	assert.Equal(t, 1*time.Second, timeouts.RetryInitialDelay)
	assert.Equal(t, 30*time.Second, timeouts.RetryMaxDelay)
}

func TestLoadTimeouts_ZeroAttemptsFallsBack(t *testing.T) {
	t.Setenv("TSBX_RETRY_MAX_ATTEMPTS", "0")

	assert.Equal(t, 3, LoadTimeouts().RetryMaxAttempts)
}

package tsbx

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransport_Endpoint(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		endpoint   string
		wantScheme string
		wantHost   string
		wantPath   string
	}{
		{"bare host and port", "localhost:9000", "http", "localhost:9000", "/"},
		{"bare ip and port", "127.0.0.1:9000", "http", "127.0.0.1:9000", "/"},
		{"bare host", "tsbx.internal", "http", "tsbx.internal", "/"},
		{"absolute http", "http://localhost:9000", "http", "localhost:9000", "/"},
		{"absolute https with path", "https://tsbx.example.com/base/", "https", "tsbx.example.com", "/base/"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tr, err := newTransport(tt.endpoint, "token", http.DefaultClient, DefaultUserAgent)
			require.NoError(t, err)

			assert.Equal(t, tt.wantScheme, tr.baseURL.Scheme)
			assert.Equal(t, tt.wantHost, tr.baseURL.Host)
			assert.Equal(t, tt.wantPath, tr.baseURL.Path)
		})
	}
}

func TestNewTransport_InvalidEndpoint(t *testing.T) {
	t.Parallel()
	for _, endpoint := range []string{"not a url at all \u0000", ""} {
		endpoint := endpoint
		t.Run(endpoint, func(t *testing.T) {
			t.Parallel()
			_, err := newTransport(endpoint, "token", http.DefaultClient, DefaultUserAgent)

			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, "endpoint", cfgErr.Field)
		})
	}
}

func TestNewTransport_InvalidToken(t *testing.T) {
	t.Parallel()
	_, err := newTransport("localhost:9000", "secret\nvalue", http.DefaultClient, DefaultUserAgent)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "token", cfgErr.Field)
	assert.NotContains(t, err.Error(), "secret")
}

func TestTransport_SandboxesURL(t *testing.T) {
	t.Parallel()
	tr, err := newTransport("https://tsbx.example.com/ignored/path?x=1", "token", http.DefaultClient, "")
	require.NoError(t, err)

	first := tr.sandboxesURL()
	assert.Equal(t, "https://tsbx.example.com/api/v0/sandboxes", first.String())

	// callers may mutate the result without affecting later calls
	first.RawQuery = "tags=x"
	assert.Equal(t, "https://tsbx.example.com/api/v0/sandboxes", tr.sandboxesURL().String())
}

func TestTransport_NewRequestHeaders(t *testing.T) {
	t.Parallel()
	tr, err := newTransport("localhost:9000", "admin-token", http.DefaultClient, DefaultUserAgent)
	require.NoError(t, err)

	req, err := tr.newRequest(context.Background(), http.MethodGet, tr.sandboxesURL(), nil)
	require.NoError(t, err)

	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Equal(t, "Bearer admin-token", req.Header.Get("Authorization"))
	assert.Equal(t, DefaultUserAgent, req.Header.Get("User-Agent"))

	// per-request header edits must not leak into the shared defaults
	req.Header.Set("Accept", "text/plain")
	assert.Equal(t, "application/json", tr.headers.Get("Accept"))
}

func TestTransport_NewRequestUnencodableBody(t *testing.T) {
	t.Parallel()
	tr, err := newTransport("localhost:9000", "token", http.DefaultClient, "")
	require.NoError(t, err)

	_, err = tr.newRequest(context.Background(), http.MethodPost, tr.sandboxesURL(), NewSandboxPayload(make(chan int)))
	require.Error(t, err)

	var cfgErr *ConfigurationError
	assert.False(t, errors.As(err, &cfgErr))
}

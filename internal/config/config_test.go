package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	EnvHostURL, EnvAdminToken,
	EnvTwitterBearerToken, EnvTwitterAPIKey, EnvTwitterAPISecret,
	EnvTwitterAccessToken, EnvTwitterAccessTokenSecret,
}

// unsetEnv removes keys for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestFromEnv(t *testing.T) {
	unsetEnv(t, allKeys...)
	t.Setenv(EnvHostURL, "  http://localhost:9000  ")
	t.Setenv(EnvAdminToken, `"secret-token"`)
	t.Setenv(EnvTwitterAPIKey, "'api-key'")
	t.Setenv(EnvTwitterAPISecret, "   ")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000", cfg.HostURL)
	assert.Equal(t, "secret-token", cfg.AdminToken)
	assert.Equal(t, "api-key", cfg.Twitter.APIKey)
	assert.Empty(t, cfg.Twitter.APISecret)
	assert.Equal(t, map[string]string{EnvTwitterAPIKey: "api-key"}, cfg.SandboxEnv())
}

func TestFromEnv_Required(t *testing.T) {
	tests := []struct {
		name    string
		host    string
		token   string
		wantErr string
	}{
		{"missing host", "", "token", "TSBX_HOST_URL is required"},
		{"quoted empty host", `""`, "token", "TSBX_HOST_URL is required"},
		{"missing token", "http://localhost:9000", "", "TSBX_ADMIN_TOKEN is required"},
		{"whitespace token", "http://localhost:9000", "  \t ", "TSBX_ADMIN_TOKEN is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unsetEnv(t, allKeys...)
			t.Setenv(EnvHostURL, tt.host)
			t.Setenv(EnvAdminToken, tt.token)

			_, err := FromEnv()
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestLoad_EnvFile(t *testing.T) {
	unsetEnv(t, allKeys...)
	t.Setenv(EnvAdminToken, "from-process")

	path := filepath.Join(t.TempDir(), "test.env")
	content := "TSBX_HOST_URL=\"http://tsbx.internal:8080\"\n" +
		"TSBX_ADMIN_TOKEN=from-file\n" +
		"TWITTER_BEARER_TOKEN=bearer\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://tsbx.internal:8080", cfg.HostURL)
	assert.Equal(t, "from-process", cfg.AdminToken, "process environment wins over the file")
	assert.Equal(t, "bearer", cfg.Twitter.BearerToken)
}

func TestLoad_MissingEnvFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load env file")
}

func TestSandboxEnv_AllCredentials(t *testing.T) {
	t.Parallel()
	cfg := &Config{Twitter: TwitterCredentials{
		BearerToken:       "b",
		APIKey:            "k",
		APISecret:         "s",
		AccessToken:       "t",
		AccessTokenSecret: "ts",
	}}

	assert.Equal(t, map[string]string{
		"TWITTER_BEARER_TOKEN":        "b",
		"TWITTER_API_KEY":             "k",
		"TWITTER_API_SECRET":          "s",
		"TWITTER_ACCESS_TOKEN":        "t",
		"TWITTER_ACCESS_TOKEN_SECRET": "ts",
	}, cfg.SandboxEnv())
}

func TestSandboxEnv_NoneSet(t *testing.T) {
	t.Parallel()
	cfg := &Config{}
	assert.Empty(t, cfg.SandboxEnv())
	assert.NotNil(t, cfg.SandboxEnv())
}

func TestConfigString_HidesSecrets(t *testing.T) {
	t.Parallel()
	cfg := &Config{
		HostURL:    "http://localhost:9000",
		AdminToken: "super-secret-token",
		Twitter:    TwitterCredentials{APISecret: "twitter-secret"},
	}

	s := cfg.String()
	assert.Contains(t, s, "http://localhost:9000")
	assert.NotContains(t, s, "super-secret-token")
	assert.NotContains(t, s, "twitter-secret")
}

func TestClean(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want string
	}{
		{"value", "value"},
		{"  value\n", "value"},
		{`"value"`, "value"},
		{`'value'`, "value"},
		{` "value" `, "value"},
		{`""`, ""},
		{`"`, `"`},
		{`"value'`, `"value'`},
		{`""value""`, `"value"`},
		{`"  spaced  "`, "  spaced  "},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, clean(tt.in), "clean(%q)", tt.in)
	}
}

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvHostURL    = "TSBX_HOST_URL"
	EnvAdminToken = "TSBX_ADMIN_TOKEN"

	EnvTwitterBearerToken       = "TWITTER_BEARER_TOKEN"
	EnvTwitterAPIKey            = "TWITTER_API_KEY"
	EnvTwitterAPISecret         = "TWITTER_API_SECRET"
	EnvTwitterAccessToken       = "TWITTER_ACCESS_TOKEN"
	EnvTwitterAccessTokenSecret = "TWITTER_ACCESS_TOKEN_SECRET"
)

// TwitterCredentials are handed to sandboxes so the agent can reply.
// Any of them may be empty.
type TwitterCredentials struct {
	BearerToken       string
	APIKey            string
	APISecret         string
	AccessToken       string
	AccessTokenSecret string
}

// Config is the service configuration read from the environment.
type Config struct {
	HostURL    string
	AdminToken string
	Twitter    TwitterCredentials
}

// Load reads the configuration from the environment. Variables in the given
// env files are loaded first without overriding the process environment; with
// no files, a .env in the working directory is used if present.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		// a missing .env is fine
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFiles...); err != nil {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}
	return FromEnv()
}

// FromEnv reads the configuration from the process environment only.
func FromEnv() (*Config, error) {
	hostURL, err := required(EnvHostURL)
	if err != nil {
		return nil, err
	}
	token, err := required(EnvAdminToken)
	if err != nil {
		return nil, err
	}

	return &Config{
		HostURL:    hostURL,
		AdminToken: token,
		Twitter: TwitterCredentials{
			BearerToken:       optional(EnvTwitterBearerToken),
			APIKey:            optional(EnvTwitterAPIKey),
			APISecret:         optional(EnvTwitterAPISecret),
			AccessToken:       optional(EnvTwitterAccessToken),
			AccessTokenSecret: optional(EnvTwitterAccessTokenSecret),
		},
	}, nil
}

// SandboxEnv returns the credentials to inject into a sandbox, keyed by
// their environment variable names. Unset credentials are left out.
func (c *Config) SandboxEnv() map[string]string {
	env := make(map[string]string)
	for key, value := range map[string]string{
		EnvTwitterBearerToken:       c.Twitter.BearerToken,
		EnvTwitterAPIKey:            c.Twitter.APIKey,
		EnvTwitterAPISecret:         c.Twitter.APISecret,
		EnvTwitterAccessToken:       c.Twitter.AccessToken,
		EnvTwitterAccessTokenSecret: c.Twitter.AccessTokenSecret,
	} {
		if value != "" {
			env[key] = value
		}
	}
	return env
}

// String describes the configuration without secrets.
func (c *Config) String() string {
	return fmt.Sprintf("host=%s admin_token=<redacted> sandbox_credentials=%d", c.HostURL, len(c.SandboxEnv()))
}

func required(key string) (string, error) {
	value := optional(key)
	if value == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return value, nil
}

func optional(key string) string {
	return clean(os.Getenv(key))
}

// clean trims whitespace and one pair of matching surrounding quotes,
// which .env files and shell exports often leave behind.
func clean(value string) string {
	value = strings.TrimSpace(value)
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if first == last && (first == '"' || first == '\'') {
			return value[1 : len(value)-1]
		}
	}
	return value
}

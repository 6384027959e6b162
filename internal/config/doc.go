// Package config loads the askrepo service configuration.
//
// [Load] reads the provisioning endpoint, the admin token and the optional
// sandbox credentials from the environment, after loading a .env file if
// one exists. Values are trimmed and a single pair of surrounding quotes is
// removed. [LoadTimeouts] reads the request timeout and retry policy, and
// [LoadTemplate] reads the YAML sandbox template applied to every sandbox
// the service provisions.
package config

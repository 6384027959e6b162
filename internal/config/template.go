package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/askrepo/askrepo/internal/tsbx"
)

// SandboxTemplate holds the sandbox settings shared by every provisioned
// sandbox. Fields left out of the file stay unset and are not sent.
type SandboxTemplate struct {
	Description        *string           `yaml:"description"`
	Instructions       *string           `yaml:"instructions"`
	Setup              *string           `yaml:"setup"`
	StartupTask        *string           `yaml:"startup_task"`
	IdleTimeoutSeconds *int32            `yaml:"idle_timeout_seconds"`
	InferenceModel     *string           `yaml:"inference_model"`
	Tags               []string          `yaml:"tags"`
	Env                map[string]string `yaml:"env"`
}

// LoadTemplate reads a sandbox template from a YAML file.
// Unknown keys are rejected. An empty file yields an empty template.
func LoadTemplate(path string) (*SandboxTemplate, error) {
	// #nosec G304
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseTemplate(f)
}

// ParseTemplate decodes a sandbox template from r.
func ParseTemplate(r io.Reader) (*SandboxTemplate, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var tmpl SandboxTemplate
	if err := dec.Decode(&tmpl); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return &tmpl, nil
}

// Apply copies the template's settings onto p. Template tags are appended
// after p's own tags and template env is set only where p has no value.
// A nil template returns p unchanged.
func (t *SandboxTemplate) Apply(p tsbx.SandboxPayload) tsbx.SandboxPayload {
	if t == nil {
		return p
	}
	if t.Description != nil {
		p = p.WithDescription(*t.Description)
	}
	if t.Instructions != nil {
		p = p.WithInstructions(*t.Instructions)
	}
	if t.Setup != nil {
		p = p.WithSetup(*t.Setup)
	}
	if t.StartupTask != nil {
		p = p.WithStartupTask(*t.StartupTask)
	}
	if t.IdleTimeoutSeconds != nil {
		p = p.WithIdleTimeout(*t.IdleTimeoutSeconds)
	}
	if t.InferenceModel != nil {
		p = p.WithInferenceModel(*t.InferenceModel)
	}
	for _, tag := range t.Tags {
		if tag != "" {
			p = p.WithTag(tag)
		}
	}
	for key, value := range t.Env {
		if _, ok := p.Env[key]; !ok {
			p = p.WithEnvVar(key, value)
		}
	}
	return p
}

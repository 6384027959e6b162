package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/askrepo/askrepo/internal/config"
	"github.com/askrepo/askrepo/internal/tsbx"
)

// CreateOptions describes a single sandbox to create. Nil fields were not
// given on the command line and are left to the template, if any.
type CreateOptions struct {
	Metadata       string
	Tags           []string
	Env            []string
	Template       string
	Description    *string
	Instructions   *string
	Setup          *string
	StartupTask    *string
	IdleTimeout    *int32
	InferenceModel *string
}

type createResult struct {
	ID   string   `json:"id"`
	Tags []string `json:"tags,omitempty"`
}

// Create submits one sandbox without checking for an existing one.
func Create(ctx context.Context, opts *GlobalOptions, out io.Writer, create *CreateOptions) error {
	payload, err := buildCreatePayload(create)
	if err != nil {
		return err
	}

	s, err := newSession(opts, nil)
	if err != nil {
		return err
	}

	record, err := s.client.Create(ctx, payload)
	if err != nil {
		return err
	}

	r := &createResult{ID: record.ID, Tags: payload.Tags}
	return newPrinter(out, opts.JSON).emit(r, func() string { return renderCreate(r) })
}

// buildCreatePayload applies the template first so explicit flags win.
func buildCreatePayload(o *CreateOptions) (tsbx.SandboxPayload, error) {
	if strings.TrimSpace(o.Metadata) == "" {
		return tsbx.SandboxPayload{}, errors.New("--metadata is required")
	}
	if !json.Valid([]byte(o.Metadata)) {
		return tsbx.SandboxPayload{}, errors.New("--metadata must be valid JSON")
	}

	env, err := parseEnvPairs(o.Env)
	if err != nil {
		return tsbx.SandboxPayload{}, err
	}

	p := tsbx.NewSandboxPayload(json.RawMessage(o.Metadata)).
		WithTags(o.Tags).
		WithEnv(env)

	if o.Template != "" {
		tmpl, err := config.LoadTemplate(o.Template)
		if err != nil {
			return tsbx.SandboxPayload{}, err
		}
		p = tmpl.Apply(p)
	}

	if o.Description != nil {
		p = p.WithDescription(*o.Description)
	}
	if o.Instructions != nil {
		p = p.WithInstructions(*o.Instructions)
	}
	if o.Setup != nil {
		p = p.WithSetup(*o.Setup)
	}
	if o.StartupTask != nil {
		p = p.WithStartupTask(*o.StartupTask)
	}
	if o.IdleTimeout != nil {
		p = p.WithIdleTimeout(*o.IdleTimeout)
	}
	if o.InferenceModel != nil {
		p = p.WithInferenceModel(*o.InferenceModel)
	}
	return p, nil
}

// parseEnvPairs parses KEY=VALUE pairs. Later pairs override earlier ones.
func parseEnvPairs(pairs []string) (map[string]string, error) {
	env := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --env %q: expected KEY=VALUE", pair)
		}
		env[key] = value
	}
	return env, nil
}

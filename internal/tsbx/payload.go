package tsbx

import (
	"maps"
	"slices"

	"github.com/samber/lo"
)

// SandboxPayload is the desired state of a sandbox to create.
//
// Unset optional fields are omitted from the JSON body entirely, as are empty
// Tags and Env. The With* setters have value receivers and return an updated
// copy, so a payload can be used as a template without aliasing.
type SandboxPayload struct {
	Metadata           any               `json:"metadata"`
	Description        *string           `json:"description,omitempty"`
	Tags               []string          `json:"tags,omitempty"`
	Instructions       *string           `json:"instructions,omitempty"`
	Setup              *string           `json:"setup,omitempty"`
	StartupTask        *string           `json:"startup_task,omitempty"`
	Env                map[string]string `json:"env,omitempty"`
	IdleTimeoutSeconds *int32            `json:"idle_timeout_seconds,omitempty"`
	InferenceModel     *string           `json:"inference_model,omitempty"`
}

// NewSandboxPayload returns a payload carrying only metadata.
// Metadata must marshal to JSON; its shape is up to the caller.
func NewSandboxPayload(metadata any) SandboxPayload {
	return SandboxPayload{Metadata: metadata}
}

// WithDescription sets the description.
func (p SandboxPayload) WithDescription(description string) SandboxPayload {
	p.Description = lo.ToPtr(description)
	return p
}

// WithTags replaces the tag list.
func (p SandboxPayload) WithTags(tags []string) SandboxPayload {
	p.Tags = slices.Clone(tags)
	return p
}

// WithTag appends tag unless it is already present.
func (p SandboxPayload) WithTag(tag string) SandboxPayload {
	tags := slices.Clone(p.Tags)
	if !lo.Contains(tags, tag) {
		tags = append(tags, tag)
	}
	p.Tags = tags
	return p
}

// HasTag reports whether tag is in the tag list.
func (p SandboxPayload) HasTag(tag string) bool {
	return lo.Contains(p.Tags, tag)
}

// WithInstructions sets the agent instructions.
func (p SandboxPayload) WithInstructions(instructions string) SandboxPayload {
	p.Instructions = lo.ToPtr(instructions)
	return p
}

// WithSetup sets the setup script reference.
func (p SandboxPayload) WithSetup(setup string) SandboxPayload {
	p.Setup = lo.ToPtr(setup)
	return p
}

// WithStartupTask sets the task run when the sandbox starts.
func (p SandboxPayload) WithStartupTask(task string) SandboxPayload {
	p.StartupTask = lo.ToPtr(task)
	return p
}

// WithEnv replaces the environment.
func (p SandboxPayload) WithEnv(env map[string]string) SandboxPayload {
	p.Env = maps.Clone(env)
	return p
}

// WithEnvVar sets a single environment variable.
func (p SandboxPayload) WithEnvVar(key, value string) SandboxPayload {
	env := make(map[string]string, len(p.Env)+1)
	maps.Copy(env, p.Env)
	env[key] = value
	p.Env = env
	return p
}

// WithIdleTimeout sets the idle timeout in seconds. The value is not validated.
func (p SandboxPayload) WithIdleTimeout(seconds int32) SandboxPayload {
	p.IdleTimeoutSeconds = lo.ToPtr(seconds)
	return p
}

// WithInferenceModel sets the inference model identifier.
func (p SandboxPayload) WithInferenceModel(model string) SandboxPayload {
	p.InferenceModel = lo.ToPtr(model)
	return p
}

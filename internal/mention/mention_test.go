package mention

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askrepo/askrepo/internal/config"
)

func TestTag(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "mention-12345", Tag("12345"))
}

func TestMetadata_OmitsEmptyFields(t *testing.T) {
	t.Parallel()
	meta := Metadata(Event{ID: "12345", AuthorUsername: "octocat"})

	assert.Equal(t, map[string]string{
		"source":          "twitter",
		"mention_id":      "12345",
		"author_username": "octocat",
	}, meta)
}

func TestMetadata_CreatedAtIsUTC(t *testing.T) {
	t.Parallel()
	created := time.Date(2026, 3, 1, 14, 30, 0, 0, time.FixedZone("CET", 3600))
	meta := Metadata(Event{ID: "1", CreatedAt: &created})

	assert.Equal(t, "2026-03-01T13:30:00Z", meta["created_at"])
}

func TestPayload_NoTemplate(t *testing.T) {
	t.Parallel()
	p := Payload(Event{ID: "12345", Text: "@askrepo how do I build this?"}, nil, nil)

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"metadata": {
			"source": "twitter",
			"mention_id": "12345",
			"text": "@askrepo how do I build this?"
		},
		"tags": ["mention-12345", "managed-by:askrepo", "source:twitter"]
	}`, string(data))
}

func TestPayload_WithTemplateAndCredentials(t *testing.T) {
	t.Parallel()
	tmpl, err := config.ParseTemplate(strings.NewReader(`
startup_task: reply
idle_timeout_seconds: 600
tags: ["source:twitter", "team:devrel"]
env:
  TWITTER_API_KEY: placeholder
  LOG_LEVEL: debug
`))
	require.NoError(t, err)

	env := map[string]string{"TWITTER_API_KEY": "real-key"}
	p := Payload(Event{ID: "42"}, tmpl, env)

	assert.Equal(t, []string{"mention-42", "managed-by:askrepo", "source:twitter", "team:devrel"}, p.Tags)
	assert.Equal(t, map[string]string{"TWITTER_API_KEY": "real-key", "LOG_LEVEL": "debug"}, p.Env)
	require.NotNil(t, p.StartupTask)
	assert.Equal(t, "reply", *p.StartupTask)
	require.NotNil(t, p.IdleTimeoutSeconds)
	assert.Equal(t, int32(600), *p.IdleTimeoutSeconds)
	assert.Nil(t, p.Description)
	assert.Equal(t, map[string]string{"TWITTER_API_KEY": "real-key"}, env)
}

func TestPayload_EmptyEnvIsOmitted(t *testing.T) {
	t.Parallel()
	data, err := json.Marshal(Payload(Event{ID: "1"}, nil, map[string]string{}))
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"env"`)
}

func TestEventValidate(t *testing.T) {
	t.Parallel()
	assert.NoError(t, Event{ID: "1"}.Validate())
	assert.EqualError(t, Event{}.Validate(), "mention id is required")
	assert.Error(t, Event{ID: "12 34"}.Validate())
}

func TestParseEvents(t *testing.T) {
	t.Parallel()
	events, err := ParseEvents(strings.NewReader(`[
		{"id": "1", "author_username": "a", "created_at": "2026-03-01T10:00:00Z"},
		{"id": "2", "text": "hello"},
		{"id": "1", "text": "duplicate"}
	]`))
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, "1", events[0].ID)
	assert.Equal(t, "a", events[0].AuthorUsername)
	require.NotNil(t, events[0].CreatedAt)
	assert.Equal(t, 2026, events[0].CreatedAt.Year())
	assert.Equal(t, "hello", events[1].Text)
}

func TestParseEvents_Errors(t *testing.T) {
	t.Parallel()
	_, err := ParseEvents(strings.NewReader(`{"id":"1"}`))
	assert.ErrorContains(t, err, "failed to decode events")

	_, err = ParseEvents(strings.NewReader(`[{"id":"1"},{"text":"no id"}]`))
	assert.ErrorContains(t, err, "event 1: mention id is required")
}

func TestLoadEvents(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "events.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"7"}]`), 0o600))

	events, err := LoadEvents(path)
	require.NoError(t, err)
	assert.Equal(t, []Event{{ID: "7"}}, events)

	_, err = LoadEvents(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to read events file")
}

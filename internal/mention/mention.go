// Package mention turns social media mentions into sandbox provisioning
// requests. Each mention gets its own sandbox, identified by the tag
// returned from [Tag].
package mention

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/askrepo/askrepo/internal/config"
	"github.com/askrepo/askrepo/internal/tsbx"
	"github.com/askrepo/askrepo/internal/util/tags"
)

// Source is the event source recorded in metadata and tags.
const Source = "twitter"

const tagPrefix = "mention-"

// Event is a mention of the service account.
type Event struct {
	ID             string     `json:"id"`
	AuthorID       string     `json:"author_id,omitempty"`
	AuthorUsername string     `json:"author_username,omitempty"`
	ConversationID string     `json:"conversation_id,omitempty"`
	Text           string     `json:"text,omitempty"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
}

// Validate checks that the event can be turned into a sandbox.
func (e Event) Validate() error {
	if e.ID == "" {
		return errors.New("mention id is required")
	}
	if strings.ContainsFunc(e.ID, isSpace) {
		return fmt.Errorf("mention id %q must not contain whitespace", e.ID)
	}
	return nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// Tag returns the identity tag of the sandbox handling mention id.
func Tag(id string) string {
	return tagPrefix + id
}

// Metadata returns the structured parameters sent with the sandbox.
// Empty fields are left out.
func Metadata(e Event) map[string]string {
	meta := map[string]string{
		"source":          Source,
		"mention_id":      e.ID,
		"author_id":       e.AuthorID,
		"author_username": e.AuthorUsername,
		"conversation_id": e.ConversationID,
		"text":            e.Text,
	}
	if e.CreatedAt != nil {
		meta["created_at"] = e.CreatedAt.UTC().Format(time.RFC3339)
	}
	return lo.OmitByValues(meta, []string{""})
}

// Payload builds the provisioning request for e. The tags are the identity
// tag, the managed-by and source tags, then any template tags. env is
// injected as is and takes precedence over template env of the same name.
func Payload(e Event, tmpl *config.SandboxTemplate, env map[string]string) tsbx.SandboxPayload {
	tagList := tags.New(Tag(e.ID)).WithSource(Source).Build()

	p := tsbx.NewSandboxPayload(Metadata(e)).
		WithTags(tagList).
		WithEnv(env)
	return tmpl.Apply(p)
}

// LoadEvents reads a JSON array of events from path.
func LoadEvents(path string) ([]Event, error) {
	// #nosec G304
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read events file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseEvents(f)
}

// ParseEvents decodes a JSON array of events, validates each one and drops
// repeated mention ids, keeping the first occurrence.
func ParseEvents(r io.Reader) ([]Event, error) {
	var events []Event
	if err := json.NewDecoder(r).Decode(&events); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}

	for i, e := range events {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
	}

	return lo.UniqBy(events, func(e Event) string { return e.ID }), nil
}

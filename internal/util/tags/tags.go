package tags

import (
	"strings"

	"github.com/samber/lo"
)

// Standard tag values attached to every sandbox created by askrepo.
const (
	// ManagedBy marks sandboxes created by this service.
	ManagedBy = "managed-by:askrepo"

	// sourcePrefix namespaces the event source (e.g. "source:twitter").
	sourcePrefix = "source:"
)

// Source returns the tag recording which event source triggered a sandbox.
func Source(name string) string {
	return sourcePrefix + name
}

// Builder provides a fluent interface for building sandbox tag lists.
type Builder struct {
	tags []string
}

// New creates a builder whose first tag is the identity tag.
// The managed-by tag is always included.
func New(identity string) *Builder {
	b := &Builder{}
	return b.With(identity, ManagedBy)
}

// With appends tags, skipping blanks and duplicates.
func (b *Builder) With(tags ...string) *Builder {
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || lo.Contains(b.tags, t) {
			continue
		}
		b.tags = append(b.tags, t)
	}
	return b
}

// WithSource adds the event source tag.
func (b *Builder) WithSource(name string) *Builder {
	if name == "" {
		return b
	}
	return b.With(Source(name))
}

// Build returns a copy of the tag list.
func (b *Builder) Build() []string {
	out := make([]string, len(b.tags))
	copy(out, b.tags)
	return out
}

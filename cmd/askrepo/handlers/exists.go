package handlers

import (
	"context"
	"io"
)

type existsResult struct {
	Tag    string `json:"tag"`
	Exists bool   `json:"exists"`
}

// Exists reports whether a sandbox carries tag.
func Exists(ctx context.Context, opts *GlobalOptions, out io.Writer, tag string) error {
	s, err := newSession(opts, nil)
	if err != nil {
		return err
	}

	exists, err := s.client.ExistsWithTag(ctx, tag)
	if err != nil {
		return err
	}

	r := &existsResult{Tag: tag, Exists: exists}
	return newPrinter(out, opts.JSON).emit(r, func() string { return renderExists(r) })
}
